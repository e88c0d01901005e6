package markdown

import (
	"fmt"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// NativeParser implements interfaces.MarkdownParser with the block and
// inline pipeline of this module. Unlike goldmark it does not escape text
// and supports only headings, paragraphs, fenced code, quotes and lists.
type NativeParser struct {
	defaultOptions interfaces.ParseOptions
}

var _ interfaces.MarkdownParser = (*NativeParser)(nil)

// NewNativeParser constructs a parser using defaults for every call to Parse.
func NewNativeParser(defaults interfaces.ParseOptions) *NativeParser {
	return &NativeParser{defaultOptions: defaults}
}

// Parse converts Markdown using the parser defaults.
func (p *NativeParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaultOptions)
}

// ParseWithOptions converts Markdown, honouring RenderImages. Goldmark
// specific options are ignored.
func (p *NativeParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	html, err := ToHTML(string(markdown), Options{RenderImages: opts.RenderImages})
	if err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return []byte(html), nil
}

// NewParser returns the parser for the engine named in opts. An empty
// engine selects the native parser.
func NewParser(opts interfaces.ParseOptions) (interfaces.MarkdownParser, error) {
	switch opts.Engine {
	case "", interfaces.EngineNative:
		return NewNativeParser(opts), nil
	case interfaces.EngineGoldmark:
		return NewGoldmarkParser(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, opts.Engine)
	}
}
