package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var ErrContentDirRequired = errors.New("mdsite config: markdown content directory is required")
var ErrOutputDirRequired = errors.New("mdsite config: generator output directory is required")
var ErrTemplateRequired = errors.New("mdsite config: generator template path is required")
var ErrOutputOverlapsSource = errors.New("mdsite config: output directory must differ from content and static directories")
var ErrWorkersInvalid = errors.New("mdsite config: generator workers must be zero or positive")
var ErrIncrementalRequiresNoClean = errors.New("mdsite config: incremental builds cannot clean the output directory")
var ErrMarkdownEngineUnknown = errors.New("mdsite config: markdown engine is invalid")
var ErrLoggingProviderRequired = errors.New("mdsite config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("mdsite config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mdsite config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mdsite config: logging format is invalid")
var ErrWatchDebounceInvalid = errors.New("mdsite config: watch debounce must be zero or positive")

// Config aggregates every setting of a site build.
type Config struct {
	Markdown  MarkdownConfig  `toml:"markdown"`
	Generator GeneratorConfig `toml:"generator"`
	Logging   LoggingConfig   `toml:"logging"`
	Watch     WatchConfig     `toml:"watch"`
}

// MarkdownConfig captures discovery and conversion of content files.
type MarkdownConfig struct {
	ContentDir  string               `toml:"content_dir"`
	Pattern     string               `toml:"pattern"`
	Recursive   bool                 `toml:"recursive"`
	FrontMatter bool                 `toml:"front_matter"`
	Parser      MarkdownParserConfig `toml:"parser"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Engine       string   `toml:"engine"`
	RenderImages bool     `toml:"render_images"`
	Extensions   []string `toml:"extensions"`
	HardWraps    bool     `toml:"hard_wraps"`
	SafeMode     bool     `toml:"safe_mode"`
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	StaticDir    string `toml:"static_dir"`
	TemplatePath string `toml:"template"`
	OutputDir    string `toml:"output_dir"`
	// DefaultTitle replaces a missing top-level heading unless RequireTitle is set.
	DefaultTitle string `toml:"default_title"`
	RequireTitle bool   `toml:"require_title"`
	// CleanBuild clears the output directory before static files are copied.
	CleanBuild    bool     `toml:"clean_build"`
	CopyStatic    bool     `toml:"copy_static"`
	Incremental   bool     `toml:"incremental"`
	IncludeDrafts bool     `toml:"include_drafts"`
	SlugifyPaths  bool     `toml:"slugify_paths"`
	Workers       int      `toml:"workers"`
	RenderTimeout Duration `toml:"render_timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `toml:"provider"`
	Level     string   `toml:"level"`
	Format    string   `toml:"format"`
	AddSource bool     `toml:"add_source"`
	Focus     []string `toml:"focus"`
	// Color is "auto", "always" or "never" for the console provider.
	Color string `toml:"color"`
}

// WatchConfig controls rebuild-on-change.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration that reads and writes as "250ms" style text.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText renders the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the layout of a conventional site: Markdown under
// content/, assets and template.html under static/, output in public/.
func DefaultConfig() Config {
	return Config{
		Markdown: MarkdownConfig{
			ContentDir:  "content",
			Pattern:     "*.md",
			Recursive:   true,
			FrontMatter: true,
			Parser: MarkdownParserConfig{
				Engine: "native",
			},
		},
		Generator: GeneratorConfig{
			StaticDir:    "static",
			TemplatePath: filepath.Join("static", "template.html"),
			OutputDir:    "public",
			DefaultTitle: "Untitled",
			CleanBuild:   true,
			CopyStatic:   true,
			Workers:      0,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Color:    "auto",
		},
		Watch: WatchConfig{
			Debounce: Duration{200 * time.Millisecond},
		},
	}
}

// Load reads a TOML file over DefaultConfig and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("mdsite config: read %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("mdsite config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode applies TOML data on top of cfg.
func Decode(data []byte, cfg *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(cfg)
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if strings.TrimSpace(cfg.Generator.TemplatePath) == "" {
		return ErrTemplateRequired
	}
	output := filepath.Clean(cfg.Generator.OutputDir)
	if output == filepath.Clean(cfg.Markdown.ContentDir) {
		return fmt.Errorf("%w: %s", ErrOutputOverlapsSource, output)
	}
	if cfg.Generator.CopyStatic && strings.TrimSpace(cfg.Generator.StaticDir) != "" && output == filepath.Clean(cfg.Generator.StaticDir) {
		return fmt.Errorf("%w: %s", ErrOutputOverlapsSource, output)
	}
	if cfg.Generator.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkersInvalid, cfg.Generator.Workers)
	}
	if cfg.Generator.Incremental && cfg.Generator.CleanBuild {
		return ErrIncrementalRequiresNoClean
	}
	if engine := strings.TrimSpace(cfg.Markdown.Parser.Engine); engine != "" && !isSupportedEngine(engine) {
		return fmt.Errorf("%w: %s", ErrMarkdownEngineUnknown, engine)
	}
	if cfg.Watch.Debounce.Duration < 0 {
		return ErrWatchDebounceInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedEngine(engine string) bool {
	switch strings.ToLower(engine) {
	case "native", "goldmark":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
