// Package mdfile reads and writes Markdown files with a YAML frontmatter block.
package mdfile

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const delim = "---"

// Meta is the frontmatter written above fetched or converted documents.
type Meta struct {
	Title    string    `yaml:"title,omitempty"`
	Source   string    `yaml:"source,omitempty"`
	Author   string    `yaml:"author,omitempty"`
	Site     string    `yaml:"site,omitempty"`
	VideoID  string    `yaml:"video_id,omitempty"`
	Fetched  time.Time `yaml:"fetched,omitempty"`
	Keywords []string  `yaml:"keywords,omitempty"`
}

func (m Meta) IsZero() bool {
	return m.Title == "" && m.Source == "" && m.Author == "" && m.Site == "" &&
		m.VideoID == "" && m.Fetched.IsZero() && len(m.Keywords) == 0
}

// Render returns body preceded by meta as frontmatter. A zero Meta renders
// body unchanged.
func Render(meta Meta, body string) (string, error) {
	if meta.IsZero() {
		return body, nil
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(delim + "\n")
	sb.Write(data)
	sb.WriteString(delim + "\n\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// Split separates frontmatter from body. Documents without frontmatter yield
// the zero Meta and the full text. Unknown frontmatter keys are ignored.
func Split(doc string) (Meta, string, error) {
	var meta Meta
	if !strings.HasPrefix(doc, delim+"\n") {
		return meta, doc, nil
	}
	rest := doc[len(delim)+1:]

	var header, body string
	if strings.HasPrefix(rest, delim+"\n") || rest == delim {
		header, body = "", strings.TrimPrefix(strings.TrimPrefix(rest, delim), "\n")
	} else if i := strings.Index(rest, "\n"+delim+"\n"); i >= 0 {
		header, body = rest[:i], rest[i+len(delim)+2:]
	} else if strings.HasSuffix(rest, "\n"+delim) {
		header, body = strings.TrimSuffix(rest, "\n"+delim), ""
	} else {
		return meta, doc, nil
	}

	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return Meta{}, doc, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, strings.TrimPrefix(body, "\n"), nil
}
