package convert

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdsumm/internal/doctree"
)

// ErrUnsupported is returned for file types no converter handles.
var ErrUnsupported = errors.New("unsupported file type")

// Converter turns a source document into Markdown.
type Converter interface {
	Convert(r io.Reader, filename string) (string, error)
}

// TreeParser builds a DocTree from a structured document.
type TreeParser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// Options tunes individual converters.
type Options struct {
	PDFFallbackPdftotext bool   // Shell out to pdftotext when the Go reader fails.
	OCRLanguage          string // Tesseract language(s), e.g. "eng+fra".
}

// SupportedExtensions lists file extensions that can be converted.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".pptx":     true,
	".xlsx":     true,
	".odt":      true,
	".epub":     true,
	".png":      true,
	".jpg":      true,
	".jpeg":     true,
	".tif":      true,
	".tiff":     true,
}

// ForFile returns the converter for a filename.
func ForFile(filename string, opts Options) (Converter, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownConverter{}, nil
	case ".txt":
		return &TextConverter{}, nil
	case ".csv":
		return Tree(&CSVParser{}), nil
	case ".html", ".htm":
		return &HTMLConverter{}, nil
	case ".pdf":
		return Tree(&PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}), nil
	case ".docx":
		return Tree(&DOCXParser{}), nil
	case ".pptx", ".xlsx", ".odt", ".epub":
		return NewTabulaConverter(ext), nil
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return &ImageConverter{Language: opts.OCRLanguage}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupported checks if a file extension can be converted.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Tree adapts a TreeParser into a Converter that renders the tree as Markdown.
func Tree(p TreeParser) Converter {
	return treeConverter{p: p}
}

type treeConverter struct {
	p TreeParser
}

func (c treeConverter) Convert(r io.Reader, filename string) (string, error) {
	tree, err := c.p.Parse(r, filename)
	if err != nil {
		return "", err
	}
	return tree.Markdown(), nil
}

// baseTitle derives a document title from a path: the base name without extension.
func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
