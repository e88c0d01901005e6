package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-mdsite/internal/commands"
	staticcmd "github.com/goliatone/go-mdsite/internal/commands/static"
	"github.com/goliatone/go-mdsite/internal/generator"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/internal/logging/console"
	"github.com/goliatone/go-mdsite/internal/logging/gologger"
	"github.com/goliatone/go-mdsite/internal/markdown"
	"github.com/goliatone/go-mdsite/internal/runtimeconfig"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// DefaultConfigFile is loaded when no config path is given and the file exists.
const DefaultConfigFile = "mdsite.toml"

// Options captures CLI level overrides applied on top of the config file.
type Options struct {
	ConfigPath string
	// Verbose lowers the log level to debug.
	Verbose bool
	// Color forces coloured console logs on or off; nil detects a terminal.
	Color *bool
	// Workers overrides generator.workers when positive.
	Workers int
	// LogWriter receives console log output (defaults to stderr).
	LogWriter io.Writer
}

// Module bundles the services and command handlers used by the mdsite CLI.
type Module struct {
	Config    runtimeconfig.Config
	Provider  interfaces.LoggerProvider
	Logger    interfaces.Logger
	Markdown  *markdown.Service
	Generator generator.Service

	Build  *staticcmd.BuildSiteHandler
	Render *staticcmd.RenderFileHandler
	Diff   *staticcmd.DiffSiteHandler
	Clean  *staticcmd.CleanSiteHandler
}

// LoadConfig reads path, or DefaultConfigFile when path is empty and the file
// exists, falling back to runtimeconfig.DefaultConfig.
func LoadConfig(path string) (runtimeconfig.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				cfg := runtimeconfig.DefaultConfig()
				return cfg, cfg.Validate()
			}
			return runtimeconfig.Config{}, fmt.Errorf("stat %s: %w", DefaultConfigFile, err)
		}
		path = DefaultConfigFile
	}
	return runtimeconfig.Load(path)
}

// BuildModule loads configuration and wires the markdown, generator and
// command layers together.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}
	if opts.Workers > 0 {
		cfg.Generator.Workers = opts.Workers
	}
	return NewModule(cfg, opts)
}

// NewModule wires a Module from an already loaded configuration.
func NewModule(cfg runtimeconfig.Config, opts Options) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := NewLoggerProvider(cfg.Logging, opts.LogWriter, opts.Color)
	if err != nil {
		return nil, err
	}

	genCfg := generator.ConfigFromRuntime(cfg)
	mdService, err := markdown.NewService(markdown.Config{
		BasePath:    cfg.Markdown.ContentDir,
		Pattern:     cfg.Markdown.Pattern,
		Recursive:   cfg.Markdown.Recursive,
		FrontMatter: cfg.Markdown.FrontMatter,
		Parser:      genCfg.Parse,
	}, markdown.WithLogger(logging.MarkdownLogger(provider)))
	if err != nil {
		return nil, fmt.Errorf("initialise markdown service: %w", err)
	}

	genService := generator.NewService(genCfg, generator.Dependencies{
		Markdown: mdService,
		Logger:   logging.GeneratorLogger(provider),
	})

	gates := staticcmd.FeatureGates{GeneratorEnabled: staticcmd.AlwaysEnabled}
	module := &Module{
		Config:    cfg,
		Provider:  provider,
		Logger:    logging.ModuleLogger(provider, "mdsite"),
		Markdown:  mdService,
		Generator: genService,
		Build: staticcmd.NewBuildSiteHandler(genService, commands.CommandLogger(provider, "build"), gates,
			commands.WithTimeout[staticcmd.BuildSiteCommand](0)),
		Render: staticcmd.NewRenderFileHandler(genService, commands.CommandLogger(provider, "render"), gates),
		Diff: staticcmd.NewDiffSiteHandler(genService, commands.CommandLogger(provider, "diff"), gates,
			commands.WithTimeout[staticcmd.DiffSiteCommand](0)),
		Clean: staticcmd.NewCleanSiteHandler(genService, commands.CommandLogger(provider, "clean"), gates),
	}
	return module, nil
}

// NewLoggerProvider selects the console or go-logger provider named by cfg.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig, out io.Writer, color *bool) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "", "console":
		level, err := console.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = os.Stderr
		}
		if color == nil {
			color = parseColorMode(cfg.Color)
		}
		return console.NewProvider(console.Options{
			Writer:   out,
			MinLevel: &level,
			Color:    color,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func parseColorMode(mode string) *bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		on := true
		return &on
	case "never":
		off := false
		return &off
	default:
		return nil
	}
}
