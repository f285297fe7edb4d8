package chunker

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxHeadingLevel is the deepest ATX heading level.
const MaxHeadingLevel = 6

var fences = []string{"```", "~~~"}

var headingRe = regexp.MustCompile(`^[ ]{0,3}(#+)(.*)$`)

// Line is one classified input line.
type Line struct {
	Text  string // Verbatim line text, without terminator.
	Level int    // Heading level 1-6, or 0 when the line is not a heading.
	Title string // Heading title; only meaningful when Level > 0.
	Fence bool   // Line opens or closes a fenced code block.
}

// IsHeading reports whether the line is an ATX heading.
func (l Line) IsHeading() bool {
	return l.Level > 0
}

// IsFence reports whether line starts with a code fence marker.
// Leading whitespace is not trimmed.
func IsFence(line string) bool {
	for _, f := range fences {
		if strings.HasPrefix(line, f) {
			return true
		}
	}
	return false
}

// ClassifyLine reports whether line is a fence delimiter and, when not within
// a fence, whether it is an ATX heading.
//
// Headings follow the CommonMark rules that matter for splitting: up to three
// leading spaces, one to six '#', and either nothing else or a space or tab
// before the title. Closing hashes and surrounding whitespace are stripped from
// the title. An empty title is valid.
func ClassifyLine(line string, withinFence bool) Line {
	l := Line{Text: line, Fence: IsFence(line)}
	if withinFence {
		return l
	}

	m := headingRe.FindStringSubmatch(line)
	if m == nil || len(m[1]) > MaxHeadingLevel {
		return l
	}
	rest := m[2]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return l
	}

	l.Level = len(m[1])
	title := strings.TrimSpace(rest)
	title = strings.TrimRight(title, "#")
	l.Title = strings.TrimRightFunc(title, unicode.IsSpace)
	return l
}
