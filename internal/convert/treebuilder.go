package convert

import (
	"strings"

	"github.com/dgallion1/mdsumm/internal/doctree"
)

// treeBuilder assembles a DocTree from a flat stream of headings and
// paragraphs, nesting each heading under the nearest shallower one.
type treeBuilder struct {
	tree    *doctree.DocTree
	root    *doctree.DocNode
	stack   []stackEntry
	pending strings.Builder
}

type stackEntry struct {
	node  *doctree.DocNode
	level int
}

func newTreeBuilder(title string) *treeBuilder {
	root := &doctree.DocNode{Title: title}
	return &treeBuilder{
		tree:  &doctree.DocTree{Title: title},
		root:  root,
		stack: []stackEntry{{node: root, level: 0}},
	}
}

func (b *treeBuilder) heading(level int, title string) {
	b.flushText()
	node := &doctree.DocNode{Title: title}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, stackEntry{node: node, level: level})
}

func (b *treeBuilder) text(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if b.pending.Len() > 0 {
		b.pending.WriteString("\n\n")
	}
	b.pending.WriteString(s)
}

func (b *treeBuilder) flushText() {
	t := b.pending.String()
	b.pending.Reset()
	if t == "" {
		return
	}
	top := b.stack[len(b.stack)-1].node
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
}

func (b *treeBuilder) finish() *doctree.DocTree {
	b.flushText()
	// Text before the first heading becomes an untitled leading section.
	if b.root.Text != "" {
		b.tree.Children = append(b.tree.Children, &doctree.DocNode{Text: b.root.Text})
	}
	b.tree.Children = append(b.tree.Children, b.root.Children...)
	return b.tree
}
