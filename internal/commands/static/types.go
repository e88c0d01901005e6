package staticcmd

import (
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdsite/internal/generator"
)

const (
	buildSiteMessageType  = "mdsite.static.build"
	renderFileMessageType = "mdsite.static.render"
	diffSiteMessageType   = "mdsite.static.diff"
	cleanSiteMessageType  = "mdsite.static.clean"
)

// ResultCallback receives the outcome of a generator operation. The callback is optional
// and is invoked synchronously from the handler once the generator returns.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures what a static command produced. Only the field
// matching the operation is set.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Page     *generator.RenderedPage
	Diffs    []generator.PageDiff
	Metadata map[string]any
}

// BuildSiteCommand executes a generator build.
type BuildSiteCommand struct {
	// Paths limits the build to content-relative source files.
	Paths          []string       `json:"paths,omitempty"`
	Force          bool           `json:"force,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	StaticOnly     bool           `json:"static_only,omitempty"`
	SkipStatic     bool           `json:"skip_static,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures every path is a non-empty location inside the content directory.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, p := range m.Paths {
		if !validSourcePath(p) {
			errs["paths"] = validation.NewError("mdsite.static.build.path_invalid", "paths must be non-empty and stay inside the content directory")
			break
		}
	}
	if m.StaticOnly && len(m.Paths) > 0 {
		errs["static_only"] = validation.NewError("mdsite.static.build.static_only_paths", "static_only cannot be combined with paths")
	}
	if m.StaticOnly && m.SkipStatic {
		errs["skip_static"] = validation.NewError("mdsite.static.build.static_conflict", "static_only cannot be combined with skip_static")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RenderFileCommand renders a single Markdown file into the output directory.
type RenderFileCommand struct {
	Path           string         `json:"path"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (RenderFileCommand) Type() string { return renderFileMessageType }

// Validate ensures a path is present.
func (m RenderFileCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Path, validation.Required, validation.By(func(value any) error {
			if p, _ := value.(string); strings.TrimSpace(p) == "" {
				return validation.NewError("mdsite.static.render.path_blank", "path must not be blank")
			}
			return nil
		})),
	)
}

// DiffSiteCommand renders the site without writing and reports pending output changes.
type DiffSiteCommand struct {
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (DiffSiteCommand) Type() string { return diffSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (DiffSiteCommand) Validate() error { return nil }

// CleanSiteCommand removes the generated output directory.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return false
	}
	return g.GeneratorEnabled()
}

// AlwaysEnabled is a gate for callers without a feature switch.
func AlwaysEnabled() bool { return true }

func validSourcePath(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	clean := path.Clean(strings.ReplaceAll(trimmed, "\\", "/"))
	return clean != ".." && !strings.HasPrefix(clean, "../")
}
