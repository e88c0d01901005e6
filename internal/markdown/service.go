package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

const renderFailedCode = "MARKDOWN_RENDER_FAILED"

// Config controls how the Markdown service discovers and parses files.
type Config struct {
	BasePath    string
	Pattern     string
	Recursive   bool
	FrontMatter bool
	Parser      interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed documents.
type Service struct {
	cfg     Config
	parsers map[string]interfaces.MarkdownParser
	loader  *Loader
	logger  interfaces.Logger
}

var _ interfaces.MarkdownService = (*Service)(nil)

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for load and render events.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser registers parser for engine, replacing the built-in one.
func WithParser(engine string, parser interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parsers[engine] = parser
		}
	}
}

// NewService constructs a Markdown service rooted at cfg.BasePath. Both the
// native and goldmark engines are registered; cfg.Parser.Engine picks the
// default.
func NewService(cfg Config, opts ...ServiceOption) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	if _, err := NewParser(cfg.Parser); err != nil {
		return nil, err
	}

	svc := &Service{
		cfg: cfg,
		parsers: map[string]interfaces.MarkdownParser{
			interfaces.EngineNative:   NewNativeParser(cfg.Parser),
			interfaces.EngineGoldmark: NewGoldmarkParser(cfg.Parser),
		},
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:    cfg.BasePath,
			Pattern:     cfg.Pattern,
			Recursive:   cfg.Recursive,
			FrontMatter: cfg.FrontMatter,
		}),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Loader exposes the underlying file loader.
func (s *Service) Loader() *Loader {
	return s.loader
}

// Load reads a single Markdown document relative to the configured base path
// and renders its body.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	if _, err := s.RenderDocument(ctx, result.Document, opts.Parser); err != nil {
		return nil, err
	}
	s.logger.WithContext(ctx).Debug("markdown.document.loaded", "path", result.Document.FilePath, "title", result.Document.Title)
	return result.Document, nil
}

// LoadDirectory reads and renders every Markdown document within dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if _, err := s.RenderDocument(ctx, result.Document, opts.Parser); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}
	s.logger.Debug("markdown.directory.loaded", "dir", dir, "documents", len(docs))
	return docs, nil
}

// Discover lists the documents under dir without reading them.
func (s *Service) Discover(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]string, error) {
	return s.loader.Discover(ctx, s.normalisePath(dir), LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
}

// Render converts Markdown bytes into HTML. Failures are categorised as
// validation errors since they stem from the document content.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := mergeParseOptions(s.cfg.Parser, opts)
	parser, err := s.parserFor(merged.Engine)
	if err != nil {
		return nil, err
	}

	html, err := parser.ParseWithOptions(markdown, merged)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "markdown render failed").
			WithTextCode(renderFailedCode)
	}
	return html, nil
}

// RenderDocument converts the document body into HTML and stores it on doc.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		logging.WithPageContext(s.logger, doc.FilePath, "").Warn("markdown.render.failed", "error", err)
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

func (s *Service) parserFor(engine string) (interfaces.MarkdownParser, error) {
	if engine == "" {
		engine = interfaces.EngineNative
	}
	parser, ok := s.parsers[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
	return parser, nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if base, err := filepath.Abs(s.cfg.BasePath); err == nil {
			if rel, err := filepath.Rel(base, clean); err == nil {
				return filepath.ToSlash(rel)
			}
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.RenderImages {
		result.RenderImages = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
