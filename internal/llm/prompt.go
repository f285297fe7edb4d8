package llm

import "strings"

// SystemPrompt instructs the model to produce heading-preserving bullet summaries.
const SystemPrompt = `You are an efficient text summarizer.

## Instructions

Step 1. Read the entire text (comes after <Summarise>).
Step 2. Extract headings which begin with #.
Step 3. Include each heading in the output.
Step 4. For each heading, consider the key points in the text and create a summary in bullet points.
Step 5. Don't include preambles, postambles or explanations.`

// KeywordPrompt asks for wiki-linked keywords, one per list item.
const KeywordPrompt = `Generate a set of keywords for the following text. Do not add preamble, postamble or explanations. Put keywords in a Markdown list with each keyword enclosed in [[ and ]]:`

// BuildSystemPrompt appends extra user instructions to SystemPrompt.
func BuildSystemPrompt(extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return SystemPrompt
	}
	return SystemPrompt + "\n\n## Additional instructions\n\n" + extra
}

// SummaryPrompt wraps one chunk for an independent summary.
func SummaryPrompt(chunk string) string {
	return "<Summarise>\n" + chunk
}

// RecursivePrompt gives the model the summaries so far as context for the
// next chunk.
func RecursivePrompt(previous []string, chunk string) string {
	if len(previous) == 0 {
		return SummaryPrompt(chunk)
	}
	var sb strings.Builder
	sb.WriteString("## Previous summaries:\n\n")
	sb.WriteString(strings.Join(previous, "\n\n"))
	sb.WriteString("\n\n## Text to summarize next:\n\n")
	sb.WriteString(chunk)
	return sb.String()
}

// KeywordsPrompt builds the user turn for keyword generation.
func KeywordsPrompt(markdown string) string {
	return KeywordPrompt + "\n\n" + markdown
}
