package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// goldmarkExtensions maps the names accepted in markdown.parser.extensions.
var goldmarkExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

var defaultGoldmarkExtensions = []string{"gfm", "linkify", "tasklist"}

// GoldmarkParser renders CommonMark through goldmark. Engines are built once
// per distinct option set and shared by every worker of a build.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions

	mu      sync.Mutex
	engines map[string]goldmark.Markdown
}

// NewGoldmarkParser constructs a parser. Without extensions it enables GFM,
// linkify and task lists. Raw HTML passes through unless SafeMode is set.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaults: defaults,
		engines:  map[string]goldmark.Markdown{},
	}
}

// Parse renders with the parser defaults.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaults)
}

// ParseWithOptions renders with opts. Images are always emitted as <img>, so
// RenderImages has no effect on this engine.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.engineFor(opts).Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown: goldmark convert: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *GoldmarkParser) engineFor(opts interfaces.ParseOptions) goldmark.Markdown {
	names := extensionNames(opts.Extensions)
	key := fmt.Sprintf("%s|%t|%t", strings.Join(names, ","), opts.HardWraps, opts.SafeMode)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.engines == nil {
		p.engines = map[string]goldmark.Markdown{}
	}
	if engine, ok := p.engines[key]; ok {
		return engine
	}
	engine := buildGoldmark(names, opts)
	p.engines[key] = engine
	return engine
}

func buildGoldmark(names []string, opts interfaces.ParseOptions) goldmark.Markdown {
	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	exts := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		exts = append(exts, goldmarkExtensions[name])
	}

	return goldmark.New(
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
		goldmark.WithExtensions(exts...),
	)
}

// extensionNames returns the known, lower-cased, de-duplicated names in a
// stable order. Unknown names are dropped.
func extensionNames(requested []string) []string {
	if len(requested) == 0 {
		return defaultGoldmarkExtensions
	}
	var names []string
	for _, name := range requested {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := goldmarkExtensions[key]; !ok || slices.Contains(names, key) {
			continue
		}
		names = append(names, key)
	}
	return names
}
