package blocks

import (
	"strconv"
	"strings"
)

const fence = "```"

// Classify determines the block type. Rules are checked in priority order
// and the first match wins; anything unrecognised is a Paragraph.
func Classify(block string) Kind {
	if strings.TrimSpace(block) == "" {
		return Kind{Type: Paragraph}
	}
	if level := headingLevel(block); level > 0 {
		return Kind{Type: Heading, Level: level}
	}
	if strings.HasPrefix(block, fence) && strings.HasSuffix(block, fence) {
		return Kind{Type: CodeBlock}
	}

	lines := strings.Split(block, "\n")
	if everyLine(lines, isQuoteLine) {
		return Kind{Type: QuoteBlock}
	}
	if everyLine(lines, isUnorderedItem) {
		return Kind{Type: UnorderedList}
	}
	if everyLine(lines, func(line string) bool { return orderedNumber(line) >= 0 }) && consecutiveFromOne(lines) {
		return Kind{Type: OrderedList}
	}
	return Kind{Type: Paragraph}
}

// headingLevel returns the number of leading '#' when the block opens with
// one to six of them followed by a space, or zero.
func headingLevel(block string) int {
	level := 0
	for level < len(block) && block[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(block) || block[level] != ' ' {
		return 0
	}
	return level
}

func everyLine(lines []string, match func(string) bool) bool {
	for _, line := range lines {
		if !match(line) {
			return false
		}
	}
	return true
}

func isQuoteLine(line string) bool {
	return strings.HasPrefix(line, "> ")
}

func isUnorderedItem(line string) bool {
	return strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ")
}

// orderedNumber parses the "N. " marker of an ordered list line, returning
// -1 when the line has none.
func orderedNumber(line string) int {
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits == 0 || !strings.HasPrefix(line[digits:], ". ") {
		return -1
	}
	n, err := strconv.Atoi(line[:digits])
	if err != nil {
		return -1
	}
	return n
}

func consecutiveFromOne(lines []string) bool {
	for i, line := range lines {
		if orderedNumber(line) != i+1 {
			return false
		}
	}
	return true
}

// HeadingText strips the level markers and the following space from a
// heading block and trims the remainder.
func HeadingText(block string, level int) string {
	if level+1 > len(block) {
		return ""
	}
	return strings.TrimSpace(block[level+1:])
}

// CodeText removes the surrounding fences from a code block and trims the
// enclosed text.
func CodeText(block string) string {
	return strings.TrimSpace(strings.Trim(block, "`"))
}

// QuoteLines strips the "> " marker from every line of a quote block.
func QuoteLines(block string) []string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "> ")
	}
	return lines
}

// ListItems returns the text of each list line with its marker removed:
// the two character "* " or "- " for unordered lists, "N. " for ordered ones.
func ListItems(block string, ordered bool) []string {
	lines := strings.Split(block, "\n")
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		if ordered {
			if _, rest, ok := strings.Cut(line, ". "); ok {
				items = append(items, rest)
				continue
			}
			items = append(items, line)
			continue
		}
		if len(line) >= 2 {
			items = append(items, line[2:])
			continue
		}
		items = append(items, "")
	}
	return items
}
