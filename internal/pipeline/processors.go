package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdsumm/internal/chunker"
	"github.com/dgallion1/mdsumm/internal/convert"
	"github.com/dgallion1/mdsumm/internal/mdfile"
)

// SummaryProcessor writes one summary per Markdown or text file.
type SummaryProcessor struct {
	Summarizer *Summarizer
	InputDir   string
	OutputDir  string
	Keywords   bool
	Log        *slog.Logger
}

func (p *SummaryProcessor) Accepts(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".txt":
		return true
	}
	return false
}

func (p *SummaryProcessor) Output(path string) string {
	return OutputPath(path, p.InputDir, p.OutputDir, ".md")
}

func (p *SummaryProcessor) Process(ctx context.Context, input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	meta, body, err := mdfile.Split(string(data))
	if err != nil {
		p.Log.Warn("ignoring unreadable frontmatter", "input", input, "error", err)
	}

	summary, err := p.Summarizer.Summarize(ctx, body)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if p.Keywords {
		kws, err := p.Summarizer.Keywords(ctx, p.Summarizer.KeywordSource(body, summary))
		if err != nil {
			// A summary without keywords is still worth writing.
			p.Log.Warn("keyword generation failed", "input", input, "error", err)
		} else {
			summary = AppendKeywords(summary, kws)
		}
	}

	summary += "\n\n[Original](" + originalLink(output, input) + ")\n"
	if err := WriteFile(output, []byte(summary)); err != nil {
		return err
	}
	p.Log.Debug("wrote summary", "output", output, "title", meta.Title, "chars", len(summary))
	return nil
}

// ConvertProcessor converts supported documents to Markdown.
type ConvertProcessor struct {
	InputDir  string
	OutputDir string
	Options   convert.Options
}

func (p *ConvertProcessor) Accepts(path string) bool {
	return convert.IsSupported(path)
}

func (p *ConvertProcessor) Output(path string) string {
	return OutputPath(path, p.InputDir, p.OutputDir, ".md")
}

func (p *ConvertProcessor) Process(ctx context.Context, input, output string) error {
	conv, err := convert.ForFile(input, p.Options)
	if err != nil {
		return err
	}
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	md, err := conv.Convert(f, input)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if !hasBody(md) {
		return fmt.Errorf("convert: %w", ErrEmptyDocument)
	}
	return WriteFile(output, []byte(md))
}

// hasBody reports whether md has any line besides headings and blank lines.
func hasBody(md string) bool {
	for line := range strings.Lines(md) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" && !chunker.ClassifyLine(line, false).IsHeading() {
			return true
		}
	}
	return false
}
