package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// OutputPath maps input to a file under outputDir with extension ext. The
// input's path relative to inputDir is preserved; inputs outside inputDir
// keep only their base name.
func OutputPath(input, inputDir, outputDir, ext string) string {
	rel := filepath.Base(input)
	if inputDir != "" {
		if r, err := filepath.Rel(inputDir, input); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			rel = r
		}
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
	return filepath.Join(outputDir, rel)
}

// CollectPaths expands args into a sorted list of files, walking
// directories. With no args it walks defaultDir. Hidden files and
// directories are skipped. Missing paths are reported in the returned
// error while the remaining files are still returned.
func CollectPaths(args []string, defaultDir string) ([]string, error) {
	if len(args) == 0 {
		args = []string{defaultDir}
	}

	seen := make(map[string]bool)
	var paths []string
	var errs []error
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("path %s: %w", arg, err))
			continue
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p != arg && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				add(p)
			}
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("walk %s: %w", arg, err))
		}
	}

	slices.Sort(paths)
	return paths, errors.Join(errs...)
}

// WriteFile writes data to path through a temporary file in the same
// directory, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".mdsumm-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// originalLink returns a Markdown link target from the directory of output
// to input.
func originalLink(output, input string) string {
	target := input
	absOut, err1 := filepath.Abs(filepath.Dir(output))
	absIn, err2 := filepath.Abs(input)
	if err1 == nil && err2 == nil {
		if rel, err := filepath.Rel(absOut, absIn); err == nil {
			target = rel
		}
	}
	return strings.ReplaceAll(filepath.ToSlash(target), " ", "%20")
}
