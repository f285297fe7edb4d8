package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgallion1/mdsumm/internal/mdfile"
	"github.com/dgallion1/mdsumm/internal/naming"
	"github.com/dgallion1/mdsumm/internal/pipeline"
)

// fetched is a downloaded document ready to be saved.
type fetched struct {
	Title    string
	Meta     mdfile.Meta
	Markdown string
}

type fetchFunc func(ctx context.Context, url string) (*fetched, error)

// saveAll fetches each url in turn and writes it to outDir as
// <slug of title>.md with YAML frontmatter. A failing url does not stop
// the others.
func saveAll(ctx context.Context, w io.Writer, urls []string, outDir string, force bool, fetch fetchFunc) error {
	var failed int
	for _, u := range urls {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "failed: %s: %v\n", u, ctx.Err())
			failed++
			continue
		}
		path, err := saveOne(ctx, u, outDir, force, fetch)
		switch {
		case err != nil:
			logger.Error("fetch failed", "url", u, "error", err)
			fmt.Fprintf(w, "failed: %s: %v\n", u, err)
			failed++
		case path == "":
			fmt.Fprintf(w, "skipped: %s (output exists)\n", u)
		default:
			fmt.Fprintf(w, "saved: %s -> %s\n", u, path)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d url(s) failed", failed, len(urls))
	}
	return nil
}

// saveOne returns "" when the output exists and force is not set.
func saveOne(ctx context.Context, url, outDir string, force bool, fetch fetchFunc) (string, error) {
	doc, err := fetch(ctx, url)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, naming.Slug(doc.Title)+".md")
	if _, err := os.Stat(path); err == nil && !force {
		return "", nil
	}

	out, err := mdfile.Render(doc.Meta, doc.Markdown)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := pipeline.WriteFile(path, []byte(out)); err != nil {
		return "", err
	}
	return path, nil
}
