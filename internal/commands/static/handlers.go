package staticcmd

import (
	"context"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdsite/internal/commands"
	"github.com/goliatone/go-mdsite/internal/generator"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// BuildSiteHandler orchestrates generator builds using the shared command handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided generator service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}

		if msg.StaticOnly {
			copied, err := service.CopyStatic(ctx)
			if err != nil {
				return err
			}
			invokeCallback(msg.ResultCallback, ResultEnvelope{
				Result: &generator.BuildResult{AssetsCopied: copied},
				Metadata: map[string]any{
					"operation": "copy_static",
				},
			})
			return nil
		}

		result, err := service.Build(ctx, generator.BuildOptions{
			Paths:      normalizePaths(msg.Paths),
			Force:      msg.Force,
			DryRun:     msg.DryRun,
			SkipStatic: msg.SkipStatic,
		})
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "build",
			},
		})
		return err
	}

	fields := func(msg BuildSiteCommand) map[string]any {
		fields := map[string]any{}
		if len(msg.Paths) > 0 {
			fields["paths"] = len(msg.Paths)
		}
		for key, on := range map[string]bool{"force": msg.Force, "dry_run": msg.DryRun, "static_only": msg.StaticOnly, "skip_static": msg.SkipStatic} {
			if on {
				fields[key] = true
			}
		}
		return fields
	}
	return &BuildSiteHandler{inner: newHandler(exec, baseLogger, "static.build", fields, opts)}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RenderFileHandler renders one Markdown file through the page template.
type RenderFileHandler struct {
	inner *commands.Handler[RenderFileCommand]
}

// NewRenderFileHandler constructs a handler that builds a single page.
func NewRenderFileHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[RenderFileCommand]) *RenderFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RenderFileCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}
		source := strings.TrimSpace(msg.Path)
		page, err := service.BuildPage(ctx, source)
		if err != nil {
			return err
		}
		logging.WithPageContext(baseLogger, page.Source, page.Output).Debug("static.render.page_written")
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Page: page,
			Metadata: map[string]any{
				"operation": "render",
				"source":    source,
			},
		})
		return nil
	}

	fields := func(msg RenderFileCommand) map[string]any {
		return map[string]any{"source_path": strings.TrimSpace(msg.Path)}
	}
	return &RenderFileHandler{inner: newHandler(exec, baseLogger, "static.render", fields, opts)}
}

// Execute satisfies command.Commander[RenderFileCommand].
func (h *RenderFileHandler) Execute(ctx context.Context, msg RenderFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DiffSiteHandler reports pending output changes without writing artifacts.
type DiffSiteHandler struct {
	inner *commands.Handler[DiffSiteCommand]
}

// NewDiffSiteHandler constructs a handler that executes generator dry-runs.
func NewDiffSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[DiffSiteCommand]) *DiffSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DiffSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}
		diffs, err := service.Diff(ctx)
		invokeCallback(msg.ResultCallback, ResultEnvelope{
			Diffs: diffs,
			Metadata: map[string]any{
				"operation": "diff",
				"changed":   len(diffs),
			},
		})
		return err
	}

	return &DiffSiteHandler{inner: newHandler(exec, baseLogger, "static.diff", nil, opts)}
}

// Execute satisfies command.Commander[DiffSiteCommand].
func (h *DiffSiteHandler) Execute(ctx context.Context, msg DiffSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler clears generator artifacts.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

// NewCleanSiteHandler constructs a handler that cleans generator output.
func NewCleanSiteHandler(service generator.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CleanSiteCommand) error {
		if service == nil || !gates.generatorEnabled() {
			return generator.ErrServiceDisabled
		}
		return service.Clean(ctx)
	}

	return &CleanSiteHandler{inner: newHandler(exec, baseLogger, "static.clean", nil, opts)}
}

// Execute satisfies command.Commander[CleanSiteCommand].
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// newHandler applies the shared logger, operation name and telemetry before
// caller options, so callers can override any of them.
func newHandler[T command.Message](exec func(context.Context, T) error, logger interfaces.Logger, operation string, fields func(T) map[string]any, extra []commands.HandlerOption[T]) *commands.Handler[T] {
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithTelemetry(commands.DefaultTelemetry[T](logger)),
	}
	if fields != nil {
		opts = append(opts, commands.WithMessageFields(fields))
	}
	return commands.NewHandler(exec, append(opts, extra...)...)
}

func normalizePaths(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func invokeCallback(cb ResultCallback, envelope ResultEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
