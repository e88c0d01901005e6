// Package inline tokenizes the text of a single Markdown block into typed
// spans (plain, bold, italic, code, link, image) and renders those spans as
// an HTML fragment.
package inline

// Kind identifies the formatting applied to a span.
type Kind uint8

const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

// String returns the lowercase label for the kind.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// Span is one typed fragment of inline text. Target is only set for Link
// and Image spans.
type Span struct {
	Kind    Kind
	Content string
	Target  string
}

// PlainSpan returns an unformatted span.
func PlainSpan(text string) Span { return Span{Kind: Plain, Content: text} }

// BoldSpan returns a bold span.
func BoldSpan(text string) Span { return Span{Kind: Bold, Content: text} }

// ItalicSpan returns an italic span.
func ItalicSpan(text string) Span { return Span{Kind: Italic, Content: text} }

// CodeSpan returns an inline code span.
func CodeSpan(text string) Span { return Span{Kind: Code, Content: text} }

// LinkSpan returns a link span pointing at url.
func LinkSpan(text, url string) Span { return Span{Kind: Link, Content: text, Target: url} }

// ImageSpan returns an image span with alt text and source url.
func ImageSpan(alt, url string) Span { return Span{Kind: Image, Content: alt, Target: url} }

// HasTarget reports whether spans of this kind carry a URL.
func (k Kind) HasTarget() bool {
	return k == Link || k == Image
}
