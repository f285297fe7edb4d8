package llm

import (
	"regexp"
	"strings"
)

// DefaultMaxKeywords bounds ParseKeywords output when limit <= 0.
const DefaultMaxKeywords = 20

var (
	codeBlockRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	bulletRe    = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+`)
	wikiLinkRe  = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

	injectionPattern = regexp.MustCompile(
		`(?i)(ignore\s+(previous|all|above)|system\s*prompt|you\s+are\s+now|` +
			`act\s+as\s+|pretend\s+|forget\s+(everything|all)|override|` +
			`new\s+instructions)`,
	)
)

// ParseKeywords extracts keywords from a model reply. It accepts Markdown
// lists, [[wiki links]] and comma separated lines, drops duplicates
// (case-insensitive), overlong entries and anything that reads like a prompt
// injection, and keeps at most limit entries in reply order.
func ParseKeywords(reply string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxKeywords
	}
	reply = stripCodeBlock(reply)

	seen := make(map[string]bool)
	var out []string
	add := func(kw string) bool {
		kw = cleanKeyword(kw)
		if kw == "" || len(kw) > 80 || injectionPattern.MatchString(kw) {
			return len(out) < limit
		}
		key := strings.ToLower(kw)
		if seen[key] {
			return len(out) < limit
		}
		seen[key] = true
		out = append(out, kw)
		return len(out) < limit
	}

	for line := range strings.Lines(reply) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if links := wikiLinkRe.FindAllStringSubmatch(line, -1); len(links) > 0 {
			for _, m := range links {
				if !add(m[1]) {
					return out
				}
			}
			continue
		}
		isBullet := bulletRe.MatchString(line)
		line = bulletRe.ReplaceAllString(line, "")
		if !isBullet && strings.Contains(line, ",") {
			for part := range strings.SplitSeq(line, ",") {
				if !add(part) {
					return out
				}
			}
			continue
		}
		if !isBullet && len(strings.Fields(line)) > 6 {
			continue // prose, not a keyword
		}
		if !add(line) {
			return out
		}
	}
	return out
}

func cleanKeyword(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_`\"'.;:")
	s = strings.TrimPrefix(s, "#")
	return strings.TrimSpace(s)
}

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}
