package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryPrompt(t *testing.T) {
	assert.Equal(t, "<Summarise>\n# A\n\ntext\n", SummaryPrompt("# A\n\ntext\n"))
}

func TestRecursivePrompt(t *testing.T) {
	assert.Equal(t, SummaryPrompt("chunk"), RecursivePrompt(nil, "chunk"))

	got := RecursivePrompt([]string{"- one", "- two"}, "chunk")
	want := "## Previous summaries:\n\n- one\n\n- two\n\n## Text to summarize next:\n\nchunk"
	assert.Equal(t, want, got)
}

func TestBuildSystemPrompt(t *testing.T) {
	assert.Equal(t, SystemPrompt, BuildSystemPrompt("  "))

	got := BuildSystemPrompt("Answer in French.")
	assert.True(t, strings.HasPrefix(got, SystemPrompt))
	assert.True(t, strings.HasSuffix(got, "## Additional instructions\n\nAnswer in French."))
}

func TestKeywordsPrompt(t *testing.T) {
	got := KeywordsPrompt("body")
	assert.True(t, strings.HasPrefix(got, KeywordPrompt))
	assert.True(t, strings.HasSuffix(got, "\n\nbody"))
}
