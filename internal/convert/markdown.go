package convert

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownConverter copies Markdown through, rewriting setext headings
// ("Title" underlined with === or ---) as ATX headings so that heading-based
// splitting sees them.
type MarkdownConverter struct{}

func (c *MarkdownConverter) Convert(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	return string(NormalizeHeadings(src)), nil
}

type edit struct {
	start, end int
	repl       string
}

// NormalizeHeadings rewrites top-level setext headings as ATX headings.
// Everything else, including a leading YAML frontmatter block, is left byte
// for byte.
func NormalizeHeadings(src []byte) []byte {
	offset := frontmatterEnd(src)
	body := src[offset:]
	doc := goldmark.New().Parser().Parse(text.NewReader(body))

	var edits []edit
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		first := h.Lines().At(0)
		last := h.Lines().At(h.Lines().Len() - 1)

		lineStart := bytes.LastIndexByte(body[:first.Start], '\n') + 1
		if bytes.ContainsRune(body[lineStart:first.Start], '#') {
			continue // already ATX
		}

		// The underline is the line after the last text line.
		textEnd := indexFrom(body, last.Start, '\n')
		if textEnd == len(body) {
			continue
		}
		underlineEnd := indexFrom(body, textEnd+1, '\n')

		edits = append(edits, edit{
			start: offset + lineStart,
			end:   offset + underlineEnd,
			repl:  strings.Repeat("#", h.Level) + " " + headingText(h, body),
		})
	}
	if len(edits) == 0 {
		return src
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := append([]byte(nil), src...)
	for _, e := range edits {
		out = append(out[:e.start], append([]byte(e.repl), out[e.end:]...)...)
	}
	return out
}

// MarkdownTitle returns the text of the first heading, preferring a level 1
// heading, or "" when the document has none.
func MarkdownTitle(src []byte) string {
	src = src[frontmatterEnd(src):]
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var first string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		t := headingText(h, src)
		if h.Level == 1 && t != "" {
			return t
		}
		if first == "" {
			first = t
		}
	}
	return first
}

func headingText(h *ast.Heading, src []byte) string {
	lines := h.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if p := strings.TrimSpace(string(seg.Value(src))); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// frontmatterEnd returns the offset just past a leading "---" delimited
// block, or 0 when src does not start with one.
func frontmatterEnd(src []byte) int {
	if !bytes.HasPrefix(src, []byte("---\n")) {
		return 0
	}
	i := bytes.Index(src[4:], []byte("\n---\n"))
	if i < 0 {
		return 0
	}
	return 4 + i + len("\n---\n")
}

func indexFrom(b []byte, from int, c byte) int {
	if from >= len(b) {
		return len(b)
	}
	if i := bytes.IndexByte(b[from:], c); i >= 0 {
		return from + i
	}
	return len(b)
}
