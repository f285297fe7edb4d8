package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/tabula/epubdoc"
	"github.com/tsawler/tabula/odt"
	"github.com/tsawler/tabula/pptx"
	"github.com/tsawler/tabula/xlsx"
)

type markdownDoc interface {
	Markdown() (string, error)
	Close() error
}

type openFunc func(path string) (markdownDoc, error)

// TabulaConverter converts archive based office formats (pptx, xlsx, odt,
// epub) with tabula's Markdown renderers.
type TabulaConverter struct {
	ext  string
	open openFunc
}

var tabulaOpeners = map[string]openFunc{
	".pptx": func(p string) (markdownDoc, error) { return pptx.Open(p) },
	".xlsx": func(p string) (markdownDoc, error) { return xlsx.Open(p) },
	".odt":  func(p string) (markdownDoc, error) { return odt.Open(p) },
	".epub": func(p string) (markdownDoc, error) { return epubdoc.Open(p) },
}

// NewTabulaConverter returns the converter for ext, or nil when tabula does
// not handle it.
func NewTabulaConverter(ext string) *TabulaConverter {
	open, ok := tabulaOpeners[strings.ToLower(ext)]
	if !ok {
		return nil
	}
	return &TabulaConverter{ext: strings.ToLower(ext), open: open}
}

func (c *TabulaConverter) Convert(r io.Reader, filename string) (string, error) {
	// The readers work on zip files by path.
	tmp, err := os.CreateTemp("", "mdsumm-*"+c.ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	doc, err := c.open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filepath.Base(filename), err)
	}
	defer doc.Close()

	md, err := doc.Markdown()
	if err != nil {
		return "", fmt.Errorf("render %s: %w", filepath.Base(filename), err)
	}
	return WithTitle(baseTitle(filename), md), nil
}
