package doctree

import (
	"strings"
)

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Markdown body of this node (may be empty for container nodes)
	Page     int        // Source page/slide (0 if N/A)
	Children []*DocNode // Subsections
}

// Markdown renders the tree as ATX Markdown. The document title becomes a
// level 1 heading and top-level sections start at level 2. Levels deeper than
// six are clamped.
func (t *DocTree) Markdown() string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(t.Title)
		sb.WriteString("\n\n")
	}
	for _, n := range t.Children {
		writeNode(&sb, n, 2)
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeNode(sb *strings.Builder, n *DocNode, level int) {
	if n.Title != "" {
		sb.WriteString(strings.Repeat("#", min(level, 6)))
		sb.WriteString(" ")
		sb.WriteString(n.Title)
		sb.WriteString("\n\n")
	}
	if text := strings.TrimSpace(n.Text); text != "" {
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	for _, c := range n.Children {
		writeNode(sb, c, level+1)
	}
}

// Text flattens all node text, mainly for emptiness checks.
func (t *DocTree) Text() string {
	var sb strings.Builder
	var walk func(nodes []*DocNode)
	walk = func(nodes []*DocNode) {
		for _, n := range nodes {
			if n.Text != "" {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(n.Text)
			}
			walk(n.Children)
		}
	}
	walk(t.Children)
	return sb.String()
}
