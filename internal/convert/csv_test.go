package convert

import (
	"fmt"
	"strings"
	"testing"
)

func TestCSVParser_Table(t *testing.T) {
	input := "name,role\nAda,engineer\nGrace,admiral|rear\n"
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(input), "people.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "people" {
		t.Errorf("expected title %q, got %q", "people", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 section, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "Rows 2-3" {
		t.Errorf("expected section title %q, got %q", "Rows 2-3", tree.Children[0].Title)
	}

	want := "| name | role |\n| --- | --- |\n| Ada | engineer |\n| Grace | admiral\\|rear |\n"
	if tree.Children[0].Text != want {
		t.Errorf("expected\n%q\ngot\n%q", want, tree.Children[0].Text)
	}
}

func TestCSVParser_Batches(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id,value\n")
	for i := 0; i < 45; i++ {
		fmt.Fprintf(&sb, "%d,v%d\n", i, i)
	}

	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(sb.String()), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantTitles := []string{"Rows 2-21", "Rows 22-41", "Rows 42-46"}
	if len(tree.Children) != len(wantTitles) {
		t.Fatalf("expected %d sections, got %d", len(wantTitles), len(tree.Children))
	}
	for i, w := range wantTitles {
		if tree.Children[i].Title != w {
			t.Errorf("section %d: expected %q, got %q", i, w, tree.Children[i].Title)
		}
	}
}

func TestCSVParser_RaggedRows(t *testing.T) {
	input := "a,b\n1\n2,3,4\n"
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(input), "ragged.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "| a | b |\n| --- | --- |\n| 1 |  |\n| 2 | 3, 4 |\n"
	if tree.Children[0].Text != want {
		t.Errorf("expected\n%q\ngot\n%q", want, tree.Children[0].Text)
	}
}

func TestCSVParser_HeaderOnlyAndEmpty(t *testing.T) {
	p := &CSVParser{}

	tree, err := p.Parse(strings.NewReader("a,b\n"), "header.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 || !strings.HasPrefix(tree.Children[0].Text, "| a | b |") {
		t.Errorf("expected a header-only table, got %+v", tree.Children)
	}

	tree, err = p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected no sections, got %d", len(tree.Children))
	}
}
