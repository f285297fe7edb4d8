package convert

import (
	"fmt"
	"io"
	"strings"
)

// TextConverter renders plain text as Markdown. Runs of blank lines collapse
// to a single paragraph break and the file name becomes the title unless the
// text already opens with a heading.
type TextConverter struct{}

func (c *TextConverter) Convert(r io.Reader, filename string) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}

	var b strings.Builder
	gap := false
	for line := range strings.Lines(string(raw)) {
		line = strings.TrimRight(line, " \t\r\n")
		if strings.TrimSpace(line) == "" {
			gap = b.Len() > 0
			continue
		}
		switch {
		case gap:
			b.WriteString("\n\n")
		case b.Len() > 0:
			b.WriteByte('\n')
		}
		gap = false
		b.WriteString(line)
	}
	return WithTitle(baseTitle(filename), b.String()), nil
}
