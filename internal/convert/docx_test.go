package convert

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"
)

func TestDOCXParser(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("Preface text.")
	w.AddParagraph().Style("Heading1").AddText("Overview")
	w.AddParagraph().AddText("Overview body.")
	w.AddParagraph().Style("Heading2").AddText("Details")
	w.AddParagraph().Style("ListParagraph").AddText("first point")
	w.AddParagraph().Style("Heading1").AddText("Appendix")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	p := &DOCXParser{}
	tree, err := p.Parse(bytes.NewReader(buf.Bytes()), "report.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "# report\n\nPreface text.\n\n## Overview\n\nOverview body.\n\n### Details\n\n- first point\n\n## Appendix\n"
	if got := tree.Markdown(); got != want {
		t.Errorf("expected\n%q\ngot\n%q", want, got)
	}
}

func TestDOCXHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"heading 3", 3},
		{"Title", 1},
		{"Heading7", 0},
		{"Normal", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			para := &docx.Paragraph{}
			if tt.style != "" {
				para.Style(tt.style)
			}
			if got := docxHeadingLevel(para); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
