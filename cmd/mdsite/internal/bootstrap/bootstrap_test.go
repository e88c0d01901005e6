package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	staticcmd "github.com/goliatone/go-mdsite/internal/commands/static"
	"github.com/goliatone/go-mdsite/internal/runtimeconfig"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func siteConfig(t *testing.T) runtimeconfig.Config {
	t.Helper()
	root := t.TempDir()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ContentDir = filepath.Join(root, "content")
	cfg.Generator.StaticDir = filepath.Join(root, "static")
	cfg.Generator.TemplatePath = filepath.Join(root, "template.html")
	cfg.Generator.OutputDir = filepath.Join(root, "public")

	writeFile(t, filepath.Join(cfg.Markdown.ContentDir, "index.md"), "# Hello\n\nWorld")
	writeFile(t, filepath.Join(cfg.Generator.StaticDir, "site.css"), "p{}")
	writeFile(t, cfg.Generator.TemplatePath, "<title>{{ Title }}</title>{{ Content }}")
	return cfg
}

func TestNewModuleBuildsSite(t *testing.T) {
	cfg := siteConfig(t)
	var logs bytes.Buffer

	module, err := NewModule(cfg, Options{LogWriter: &logs})
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	var built int
	err = module.Build.Execute(context.Background(), staticcmd.BuildSiteCommand{
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			if env.Result != nil {
				built = env.Result.PagesBuilt
			}
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if built != 1 {
		t.Fatalf("expected 1 page, got %d", built)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Generator.OutputDir, "index.html"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "<title>Hello</title><h1>Hello</h1><p>World</p>" {
		t.Fatalf("unexpected output %q", string(data))
	}
	if !strings.Contains(logs.String(), "generator.build.completed") {
		t.Fatalf("expected build log entry, got %q", logs.String())
	}
}

func TestNewModuleRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.OutputDir = ""
	if _, err := NewModule(cfg, Options{}); !errors.Is(err, runtimeconfig.ErrOutputDirRequired) {
		t.Fatalf("expected ErrOutputDirRequired, got %v", err)
	}
}

func TestBuildModuleAppliesOverrides(t *testing.T) {
	cfg := siteConfig(t)
	data, err := runtimeconfig.Encode(cfg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "mdsite.toml")
	writeFile(t, path, string(data))

	module, err := BuildModule(Options{ConfigPath: path, Verbose: true, Workers: 3, LogWriter: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Config.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", module.Config.Logging.Level)
	}
	if module.Config.Generator.Workers != 3 {
		t.Fatalf("expected 3 workers, got %d", module.Config.Generator.Workers)
	}
}

func TestNewLoggerProvider(t *testing.T) {
	if _, err := NewLoggerProvider(runtimeconfig.LoggingConfig{Provider: "gologger", Level: "info", Format: "json"}, nil, nil); err != nil {
		t.Fatalf("gologger provider: %v", err)
	}
	if _, err := NewLoggerProvider(runtimeconfig.LoggingConfig{Provider: "console", Level: "loud"}, nil, nil); err == nil {
		t.Fatal("expected invalid console level to fail")
	}
	if _, err := NewLoggerProvider(runtimeconfig.LoggingConfig{Provider: "syslog"}, nil, nil); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func TestParseColorMode(t *testing.T) {
	if got := parseColorMode("always"); got == nil || !*got {
		t.Fatalf("expected forced colour")
	}
	if got := parseColorMode("never"); got == nil || *got {
		t.Fatalf("expected disabled colour")
	}
	if got := parseColorMode("auto"); got != nil {
		t.Fatalf("expected terminal detection for auto")
	}
}
