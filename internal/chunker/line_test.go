package chunker

import "testing"

func TestClassifyLine_Headings(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		level int
		title string
	}{
		{"level one", "# Title", 1, "Title"},
		{"level six", "###### Deep", 6, "Deep"},
		{"seven hashes", "####### Title", 0, ""},
		{"no space", "#Title", 0, ""},
		{"hashes only", "#", 1, ""},
		{"hashes and whitespace", "#   ", 1, ""},
		{"tab separator", "##\tTabbed", 2, "Tabbed"},
		{"three leading spaces", "   ## Indented", 2, "Indented"},
		{"four leading spaces", "    ## Code", 0, ""},
		{"closing hashes", "## Title ##", 2, "Title"},
		{"closing hashes with trailing space", "## Title ##  ", 2, "Title"},
		{"hash inside title", "# C# language", 1, "C# language"},
		{"plain text", "just text", 0, ""},
		{"empty line", "", 0, ""},
		{"leading tab", "\t# Not heading", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ClassifyLine(tt.line, false)
			if l.Level != tt.level {
				t.Fatalf("level: expected %d, got %d", tt.level, l.Level)
			}
			if l.Title != tt.title {
				t.Errorf("title: expected %q, got %q", tt.title, l.Title)
			}
			if l.Text != tt.line {
				t.Errorf("text: expected %q, got %q", tt.line, l.Text)
			}
		})
	}
}

func TestClassifyLine_WithinFence(t *testing.T) {
	l := ClassifyLine("# inside fence", true)
	if l.IsHeading() {
		t.Errorf("expected no heading inside a fence, got level %d", l.Level)
	}
}

func TestClassifyLine_Fences(t *testing.T) {
	tests := []struct {
		line  string
		fence bool
	}{
		{"```", true},
		{"```go", true},
		{"~~~", true},
		{"~~~ text", true},
		{" ```", false},
		{"``", false},
		{"text ```", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := ClassifyLine(tt.line, false).Fence; got != tt.fence {
				t.Errorf("expected fence=%v, got %v", tt.fence, got)
			}
			if got := ClassifyLine(tt.line, true).Fence; got != tt.fence {
				t.Errorf("within fence: expected fence=%v, got %v", tt.fence, got)
			}
		})
	}
}
