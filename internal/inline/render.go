package inline

import "strings"

// Options tunes fragment rendering.
type Options struct {
	// Images renders image spans as <img> elements. When false an image is
	// rendered as "!" followed by a link to its source.
	Images bool
}

// Render maps each span to inline HTML and concatenates the results.
// Content is emitted verbatim.
func Render(spans []Span, opts Options) string {
	var b strings.Builder
	for _, span := range spans {
		switch span.Kind {
		case Bold:
			b.WriteString("<b>" + span.Content + "</b>")
		case Italic:
			b.WriteString("<i>" + span.Content + "</i>")
		case Code:
			b.WriteString("<code>" + span.Content + "</code>")
		case Link:
			b.WriteString(`<a href="` + span.Target + `">` + span.Content + "</a>")
		case Image:
			if opts.Images {
				b.WriteString(`<img src="` + span.Target + `" alt="` + span.Content + `">`)
				continue
			}
			b.WriteString(`!<a href="` + span.Target + `">` + span.Content + "</a>")
		default:
			b.WriteString(span.Content)
		}
	}
	return b.String()
}

// RenderText tokenizes text and renders the resulting spans.
func RenderText(text string, opts Options) string {
	return Render(Tokenize(text), opts)
}
