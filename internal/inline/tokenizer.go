package inline

import "strings"

// Delimiters scanned after link and image syntax, longest first so that
// "**" is never read as two "*".
var delimiterPasses = []struct {
	marker string
	kind   Kind
}{
	{marker: "**", kind: Bold},
	{marker: "*", kind: Italic},
	{marker: "`", kind: Code},
}

// Tokenize splits text into spans. Images are matched before links, then
// bold, italic and code delimiters. Later passes only rescan Plain spans.
// Unterminated syntax stays literal. An empty input yields a single empty
// Plain span.
func Tokenize(text string) []Span {
	if text == "" {
		return []Span{PlainSpan("")}
	}

	spans := []Span{PlainSpan(text)}
	spans = splitPlain(spans, func(s string) []Span { return splitReferences(s, true) })
	spans = splitPlain(spans, func(s string) []Span { return splitReferences(s, false) })
	for _, pass := range delimiterPasses {
		marker, kind := pass.marker, pass.kind
		spans = splitPlain(spans, func(s string) []Span { return splitDelimiter(s, marker, kind) })
	}
	return spans
}

// splitPlain applies split to every non-empty Plain span and passes every
// other span through unchanged.
func splitPlain(spans []Span, split func(string) []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain || span.Content == "" {
			out = append(out, span)
			continue
		}
		out = append(out, split(span.Content)...)
	}
	return out
}

// splitReferences extracts `[text](url)` links, or `![alt](url)` images
// when image is set. Gaps between matches become Plain spans; empty gaps are
// dropped.
func splitReferences(s string, image bool) []Span {
	var (
		out    []Span
		cursor int
	)
	for cursor < len(s) {
		start, end, text, target, ok := findReference(s, cursor, image)
		if !ok {
			break
		}
		if start > cursor {
			out = append(out, PlainSpan(s[cursor:start]))
		}
		if image {
			out = append(out, ImageSpan(text, target))
		} else {
			out = append(out, LinkSpan(text, target))
		}
		cursor = end
	}
	if cursor < len(s) {
		out = append(out, PlainSpan(s[cursor:]))
	}
	return out
}

// findReference locates the leftmost reference at or after from. Both the
// bracketed text and the parenthesised target must be non-empty.
func findReference(s string, from int, image bool) (start, end int, text, target string, ok bool) {
	opener := "["
	if image {
		opener = "!["
	}
	for i := from; i < len(s); i++ {
		k := strings.Index(s[i:], opener)
		if k < 0 {
			return 0, 0, "", "", false
		}
		i += k
		pos := i + len(opener)

		closeText := strings.IndexByte(s[pos:], ']')
		if closeText <= 0 {
			continue
		}
		text = s[pos : pos+closeText]
		pos += closeText + 1

		if pos >= len(s) || s[pos] != '(' {
			continue
		}
		pos++
		closeTarget := strings.IndexByte(s[pos:], ')')
		if closeTarget <= 0 {
			continue
		}
		target = s[pos : pos+closeTarget]
		return i, pos + closeTarget + 1, text, target, true
	}
	return 0, 0, "", "", false
}

// splitDelimiter pairs occurrences of marker left to right. The text between
// a pair becomes a span of kind; pairs never span a line break.
func splitDelimiter(s, marker string, kind Kind) []Span {
	var (
		out    []Span
		cursor int
	)
	for cursor < len(s) {
		openAt, closeAt, ok := findPair(s, marker, cursor)
		if !ok {
			break
		}
		if openAt > cursor {
			out = append(out, PlainSpan(s[cursor:openAt]))
		}
		out = append(out, Span{Kind: kind, Content: s[openAt+len(marker) : closeAt]})
		cursor = closeAt + len(marker)
	}
	if cursor < len(s) {
		out = append(out, PlainSpan(s[cursor:]))
	}
	return out
}

// findPair returns the offsets of the leftmost opening marker at or after
// from and of its nearest closing marker on the same line.
func findPair(s, marker string, from int) (openAt, closeAt int, ok bool) {
	for i := from; i+len(marker) <= len(s); i++ {
		k := strings.Index(s[i:], marker)
		if k < 0 {
			return 0, 0, false
		}
		i += k
		rest := s[i+len(marker):]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[:nl]
		}
		if j := strings.Index(rest, marker); j >= 0 {
			return i, i + len(marker) + j, true
		}
	}
	return 0, 0, false
}
