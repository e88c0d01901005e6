package blocks

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Segment trims document, splits it on every whitespace run that contains
// at least two newlines and normalizes each resulting block: lines are
// trimmed, runs of spaces and tabs collapse to one space, empty lines are
// dropped. Empty blocks are omitted from the result.
func Segment(document string) []string {
	document = strings.TrimSpace(document)
	if document == "" {
		return nil
	}

	var out []string
	for _, raw := range splitOnBlankLines(document) {
		if block := normalizeBlock(raw); block != "" {
			out = append(out, block)
		}
	}
	return out
}

// splitOnBlankLines cuts s at each maximal whitespace run holding two or
// more newlines. Whitespace is unicode.IsSpace, the same set TrimSpace uses
// when blocks are normalized.
func splitOnBlankLines(s string) []string {
	var (
		parts []string
		start int
	)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			i += size
			continue
		}
		j := i
		newlines := 0
		for j < len(s) {
			r, size := utf8.DecodeRuneInString(s[j:])
			if !unicode.IsSpace(r) {
				break
			}
			if r == '\n' {
				newlines++
			}
			j += size
		}
		if newlines >= 2 {
			parts = append(parts, s[start:i])
			start = j
		}
		i = j
	}
	return append(parts, s[start:])
}

func normalizeBlock(block string) string {
	lines := splitLines(block)
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, collapseHorizontalSpace(line))
	}
	return strings.Join(kept, "\n")
}

// splitLines breaks on \n, \r\n and lone \r.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func collapseHorizontalSpace(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	inRun := false
	for _, r := range line {
		if r == ' ' || r == '\t' {
			if !inRun {
				b.WriteByte(' ')
			}
			inRun = true
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
