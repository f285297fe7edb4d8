// Package naming turns titles and file names into portable names.
package naming

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining accents so "café" becomes "cafe".
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func keep(s string, ok func(r rune) bool) string {
	return strings.Map(func(r rune) rune {
		if ok(r) {
			return r
		}
		return -1
	}, s)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Sanitise replaces spaces with underscores and drops every character
// outside [a-zA-Z0-9_.-]. Accented letters keep their base letter.
func Sanitise(name string) string {
	name = strings.ReplaceAll(stripMarks(name), " ", "_")
	return keep(name, func(r rune) bool {
		return isASCIIAlnum(r) || r == '_' || r == '.' || r == '-'
	})
}

// Slug lowercases title, turns spaces into hyphens and drops everything
// outside [a-z0-9-]. An empty result becomes "untitled".
func Slug(title string) string {
	s := strings.ReplaceAll(strings.ToLower(stripMarks(strings.TrimSpace(title))), " ", "-")
	s = keep(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
	})
	if s == "" {
		return "untitled"
	}
	return s
}

// Rename records one file rename. Skipped is set when the sanitised name
// was empty or already taken, in which case the file was left alone.
type Rename struct {
	From, To string
	Skipped  string
}

// SanitiseTree renames files under root to their Sanitise form. A file
// root is renamed on its own; a directory is processed one level deep
// unless recursive is set. Directory names are not changed.
func SanitiseTree(root string, recursive bool) ([]Rename, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		r, err := sanitiseFile(root)
		if err != nil || r == nil {
			return nil, err
		}
		return []Rename{*r}, nil
	}

	var renames []Rename
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		r, err := sanitiseFile(path)
		if err != nil {
			return err
		}
		if r != nil {
			renames = append(renames, *r)
		}
		return nil
	})
	return renames, err
}

// sanitiseFile returns nil when the name is already clean.
func sanitiseFile(path string) (*Rename, error) {
	dir, name := filepath.Split(path)
	clean := Sanitise(name)
	if clean == name {
		return nil, nil
	}
	to := filepath.Join(dir, clean)
	r := &Rename{From: path, To: to}

	switch {
	case clean == "" || strings.Trim(clean, ".") == "":
		r.Skipped = "name has no portable characters"
		return r, nil
	case exists(to):
		r.Skipped = "target exists"
		return r, nil
	}
	if err := os.Rename(path, to); err != nil {
		return nil, fmt.Errorf("rename %s: %w", path, err)
	}
	return r, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
