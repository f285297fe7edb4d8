package chunker

import (
	"iter"
	"slices"
	"strings"
)

// Chapter is a contiguous run of lines introduced by at most one heading.
type Chapter struct {
	Parents []string // Enclosing heading titles, outermost first.
	Heading *Line    // Nil for the preamble before the first heading.
	Lines   []string // Raw lines; the heading line comes first when present.
}

// Text renders the chapter as newline-terminated lines.
func (c Chapter) Text() string {
	if len(c.Lines) == 0 {
		return ""
	}
	return strings.Join(c.Lines, "\n") + "\n"
}

// Title returns the heading title, or "" for the preamble.
func (c Chapter) Title() string {
	if c.Heading == nil {
		return ""
	}
	return c.Heading.Title
}

// SplitLines splits text on "\n". A trailing newline does not produce an
// extra empty line, so rendering the lines back with a newline after each one
// reproduces text.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// SegmentIntoChapters lazily yields the chapters of lines. A new chapter
// starts at every heading of level <= maxLevel that is outside a fenced code
// block. Deeper headings stay in the body of the current chapter.
//
// Concatenating the Lines of every yielded chapter gives back lines. The final
// chapter is always yielded, so input without any line yields one empty
// chapter.
func SegmentIntoChapters(lines []string, maxLevel int) iter.Seq[Chapter] {
	if maxLevel <= 0 {
		maxLevel = DefaultMaxLevel
	}
	return func(yield func(Chapter) bool) {
		var titles [MaxHeadingLevel]string
		var seen [MaxHeadingLevel]bool

		var cur Chapter
		withinFence := false
		for _, text := range lines {
			line := ClassifyLine(text, withinFence)
			if line.Fence {
				withinFence = !withinFence
			}

			if line.IsHeading() && line.Level <= maxLevel {
				if len(cur.Lines) > 0 && !yield(cur) {
					return
				}

				var parents []string
				for i := 0; i < line.Level-1; i++ {
					if seen[i] {
						parents = append(parents, titles[i])
					}
				}
				titles[line.Level-1] = line.Title
				seen[line.Level-1] = true
				for i := line.Level; i < MaxHeadingLevel; i++ {
					titles[i] = ""
					seen[i] = false
				}

				cur = Chapter{Parents: parents, Heading: &line}
			}
			cur.Lines = append(cur.Lines, text)
		}
		yield(cur)
	}
}

// Segment collects SegmentIntoChapters into a slice.
func Segment(lines []string, maxLevel int) []Chapter {
	return slices.Collect(SegmentIntoChapters(lines, maxLevel))
}
