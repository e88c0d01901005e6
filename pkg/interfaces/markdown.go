package interfaces

import (
	"context"
	"time"
)

// Conversion engines understood by ParseOptions.Engine.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// MarkdownParser converts raw Markdown into an HTML fragment.
type MarkdownParser interface {
	// Parse converts Markdown using the parser's default options.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions tunes a conversion. Engine selects the converter; the
// remaining toggles apply to the engine that understands them.
type ParseOptions struct {
	Engine string
	// RenderImages emits <img> elements for inline images (native engine).
	RenderImages bool
	// Extensions, HardWraps and SafeMode configure the goldmark engine.
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService loads Markdown documents from disk and renders them.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	// Discover lists the slash separated paths LoadDirectory would load.
	Discover(ctx context.Context, dir string, opts LoadOptions) ([]string, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document is a Markdown source file with its metadata and rendered body.
type Document struct {
	// FilePath is relative to the content root and slash separated.
	FilePath    string
	FrontMatter FrontMatter
	// Title is the first top-level heading, falling back to the front
	// matter title. Empty when neither exists.
	Title        string
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum is the SHA-256 digest of the original file content.
	Checksum []byte
}

// FrontMatter holds the optional metadata header of a document.
type FrontMatter struct {
	Title    string         `yaml:"title" toml:"title" json:"title"`
	Summary  string         `yaml:"summary" toml:"summary" json:"summary"`
	Template string         `yaml:"template" toml:"template" json:"template"`
	Tags     []string       `yaml:"tags" toml:"tags" json:"tags"`
	Author   string         `yaml:"author" toml:"author" json:"author"`
	Date     time.Time      `yaml:"date" toml:"date" json:"date"`
	Draft    bool           `yaml:"draft" toml:"draft" json:"draft"`
	Custom   map[string]any `yaml:",inline" json:"custom"`
	Raw      map[string]any `yaml:"-" toml:"-" json:"raw"`
}

// LoadOptions narrows discovery for a single call.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}
