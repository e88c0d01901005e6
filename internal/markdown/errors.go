package markdown

import "errors"

var (
	// ErrUnknownEngine reports a ParseOptions.Engine value with no parser.
	ErrUnknownEngine = errors.New("markdown: unknown engine")
	// ErrNilDocument is returned when a nil document is rendered.
	ErrNilDocument = errors.New("markdown: document is nil")
)
