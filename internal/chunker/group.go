package chunker

import "strings"

// GroupChaptersIntoBlocks packs rendered chapter texts into blocks of at most
// blockSize bytes.
//
// Chapters are appended to the current block until the next one would
// overflow it. The current block is then flushed if it holds at least
// minBlockSize bytes; shorter blocks keep growing. A block that still exceeds
// blockSize is cut at the last newline within the limit, so lines are never
// split. A run without any newline before the limit is kept whole.
//
// A short trailing block is merged into the previous one when the result
// stays within blockSize. Concatenating the returned blocks reproduces the
// concatenation of chapterTexts.
func GroupChaptersIntoBlocks(chapterTexts []string, blockSize, minBlockSize int) []string {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if minBlockSize < 0 {
		minBlockSize = 0
	}
	if minBlockSize > blockSize {
		minBlockSize = blockSize
	}

	var blocks []string
	var cur strings.Builder

	for _, s := range chapterTexts {
		if cur.Len()+len(s) <= blockSize {
			cur.WriteString(s)
			continue
		}

		if cur.Len() > 0 && cur.Len() >= minBlockSize {
			blocks = append(blocks, cur.String())
			cur.Reset()
		}
		cur.WriteString(s)

		if cur.Len() > blockSize {
			parts, rest := splitBlock(cur.String(), blockSize)
			blocks = append(blocks, parts...)
			cur.Reset()
			cur.WriteString(rest)
		}
	}

	if cur.Len() == 0 {
		return blocks
	}
	tail := cur.String()
	if n := len(blocks); n > 0 && len(tail) < minBlockSize && len(blocks[n-1])+len(tail) <= blockSize {
		blocks[n-1] += tail
		return blocks
	}
	return append(blocks, tail)
}

// splitBlock cuts block at line boundaries into prefixes of at most limit
// bytes. Each prefix keeps its trailing newline. The returned rest is the
// remainder that either fits the limit or has no newline to cut at.
func splitBlock(block string, limit int) (parts []string, rest string) {
	rest = block
	for len(rest) > limit {
		idx := strings.LastIndexByte(rest[:limit], '\n')
		if idx < 0 {
			break
		}
		parts = append(parts, rest[:idx+1])
		rest = rest[idx+1:]
	}
	return parts, rest
}
