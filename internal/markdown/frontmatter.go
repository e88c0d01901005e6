package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// ParseFrontMatter splits a leading YAML (---) or TOML (+++) block from the
// Markdown body. Without one, the FrontMatter is empty and body is source.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta interfaces.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("markdown: front matter: %w", err)
	}

	meta.Tags = slices.Clone(meta.Tags)
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	meta.Raw = rawFrontMatter(meta)
	return meta, body, nil
}

// rawFrontMatter flattens the known keys and the custom ones into one map.
// draft is always present so templates can branch on it.
func rawFrontMatter(meta interfaces.FrontMatter) map[string]any {
	raw := maps.Clone(meta.Custom)
	if raw == nil {
		raw = map[string]any{}
	}
	set := func(key string, value any, present bool) {
		if present {
			raw[key] = value
		}
	}
	set("title", meta.Title, meta.Title != "")
	set("summary", meta.Summary, meta.Summary != "")
	set("template", meta.Template, meta.Template != "")
	set("tags", slices.Clone(meta.Tags), len(meta.Tags) > 0)
	set("author", meta.Author, meta.Author != "")
	set("date", meta.Date, !meta.Date.IsZero())
	raw["draft"] = meta.Draft
	return raw
}

// BuildDocument turns a source file into a Document. With parseMeta unset the
// source is the body verbatim. The title is the first "# " heading of the
// body when it has text, else the front matter title. BodyHTML is left for the caller.
func BuildDocument(path string, source []byte, modified time.Time, parseMeta bool) (*interfaces.Document, error) {
	doc := &interfaces.Document{
		FilePath:     path,
		Body:         source,
		LastModified: modified,
	}
	if parseMeta {
		meta, body, err := ParseFrontMatter(source)
		if err != nil {
			return nil, err
		}
		doc.FrontMatter, doc.Body = meta, body
	}

	doc.Title = doc.FrontMatter.Title
	if title, err := ExtractTitle(string(doc.Body)); err == nil && title != "" {
		doc.Title = title
	}
	return doc, nil
}
