package mdfile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAndSplit(t *testing.T) {
	meta := Meta{
		Title:    "Go: a retrospective",
		Source:   "https://example.com/go",
		Author:   "Jane Doe",
		Fetched:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Keywords: []string{"go", "history"},
	}
	body := "# Go\n\nText.\n"

	doc, err := Render(meta, body)
	require.NoError(t, err)
	assert.Contains(t, doc, "---\ntitle: ")
	assert.Contains(t, doc, "---\n\n# Go\n")
	assert.NotContains(t, doc, "video_id")

	gotMeta, gotBody, err := Split(doc)
	require.NoError(t, err)
	assert.Equal(t, body, gotBody)
	assert.Equal(t, meta.Title, gotMeta.Title)
	assert.Equal(t, meta.Keywords, gotMeta.Keywords)
	assert.True(t, meta.Fetched.Equal(gotMeta.Fetched))
}

func TestRenderZeroMeta(t *testing.T) {
	doc, err := Render(Meta{}, "body\n")
	require.NoError(t, err)
	assert.Equal(t, "body\n", doc)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantTitle string
		wantBody  string
		wantErr   bool
	}{
		{"no frontmatter", "# Title\n\ntext\n", "", "# Title\n\ntext\n", false},
		{"unknown keys ignored", "---\ntitle: A\ntags: [x]\n---\nbody\n", "A", "body\n", false},
		{"empty block", "---\n---\nbody\n", "", "body\n", false},
		{"frontmatter only", "---\ntitle: A\n---", "A", "", false},
		{"unterminated is body", "---\ntitle: A\nbody\n", "", "---\ntitle: A\nbody\n", false},
		{"thematic break first", "---\n\nText\n", "", "---\n\nText\n", false},
		{"bad yaml", "---\ntitle: [unclosed\n---\nbody\n", "", "---\ntitle: [unclosed\n---\nbody\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := Split(tt.doc)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantTitle, meta.Title)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
