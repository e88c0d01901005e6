package generator

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	titlePlaceholder   = "{{ Title }}"
	contentPlaceholder = "{{ Content }}"
)

var errTemplateRequired = errors.New("generator: template path is required")

// Template is an HTML page shell with {{ Title }} and {{ Content }}
// placeholders.
type Template struct {
	Path     string
	Source   string
	Checksum string
}

// NewTemplate wraps source as a Template.
func NewTemplate(source string) *Template {
	return &Template{
		Source:   source,
		Checksum: computeHashFromString(source),
	}
}

// LoadTemplate reads the template file at path.
func LoadTemplate(path string) (*Template, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errTemplateRequired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("generator: read template %s: %w", path, err)
	}
	tmpl := NewTemplate(string(data))
	tmpl.Path = path
	return tmpl, nil
}

// Apply substitutes every title placeholder, then every content
// placeholder. Values are inserted verbatim.
func (t *Template) Apply(title, content string) string {
	out := strings.ReplaceAll(t.Source, titlePlaceholder, title)
	return strings.ReplaceAll(out, contentPlaceholder, content)
}

// RenderedPage captures the rendered HTML output for a page.
type RenderedPage struct {
	Source string
	// Route is the slash separated output path relative to the output directory.
	Route    string
	Output   string
	Title    string
	HTML     string
	Draft    bool
	Duration time.Duration
	// Hash identifies the source and template revision the page was built from.
	Hash     string
	Checksum string
}

// RenderDiagnostic records rendering timing and errors for individual pages.
type RenderDiagnostic struct {
	Source   string
	Route    string
	Duration time.Duration
	Skipped  bool
	Draft    bool
	Err      error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}
