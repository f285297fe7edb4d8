package doctree

import "testing"

func TestDocTree_Markdown(t *testing.T) {
	tree := &DocTree{
		Title: "Report",
		Children: []*DocNode{
			{Text: "Preamble."},
			{
				Title: "Results",
				Text:  "Revenue grew.",
				Children: []*DocNode{
					{Title: "Q4", Text: "Strong quarter.\n\n"},
				},
			},
		},
	}

	want := "# Report\n\nPreamble.\n\n## Results\n\nRevenue grew.\n\n### Q4\n\nStrong quarter.\n"
	if got := tree.Markdown(); got != want {
		t.Errorf("expected\n%q\ngot\n%q", want, got)
	}
}

func TestDocTree_MarkdownClampsLevels(t *testing.T) {
	node := &DocNode{Title: "L6"}
	for _, title := range []string{"L5", "L4", "L3", "L2"} {
		node = &DocNode{Title: title, Children: []*DocNode{node}}
	}
	tree := &DocTree{Children: []*DocNode{{Title: "L1", Children: []*DocNode{node}}}}

	want := "## L1\n\n### L2\n\n#### L3\n\n##### L4\n\n###### L5\n\n###### L6\n"
	if got := tree.Markdown(); got != want {
		t.Errorf("expected\n%q\ngot\n%q", want, got)
	}
}

func TestDocTree_Text(t *testing.T) {
	tree := &DocTree{Children: []*DocNode{
		{Text: "a", Children: []*DocNode{{Text: "b"}}},
		{Title: "empty"},
		{Text: "c"},
	}}
	if got := tree.Text(); got != "a\nb\nc" {
		t.Errorf("expected %q, got %q", "a\nb\nc", got)
	}
}
