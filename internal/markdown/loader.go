package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// ErrOutsideContent reports a path that resolves outside the content root.
var ErrOutsideContent = errors.New("markdown: path is outside the content directory")

const defaultPattern = "*.md"

// LoaderConfig describes the content tree a Loader reads.
type LoaderConfig struct {
	// BasePath is the content root on disk. Absolute paths are resolved
	// against it.
	BasePath string
	// Pattern is the file glob, "*.md" when empty. A pattern without a slash
	// matches file names only.
	Pattern     string
	Recursive   bool
	FrontMatter bool
}

// LoadParams overrides the loader pattern and recursion for one call.
type LoadParams struct {
	Pattern   string
	Recursive *bool
}

// DocumentResult is a loaded document plus its raw bytes.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}

// Loader reads Markdown documents from an fs.FS rooted at the content
// directory. Every path it returns is slash separated and relative to that
// root.
type Loader struct {
	fsys fs.FS
	cfg  LoaderConfig
}

func NewLoader(fsys fs.FS, cfg LoaderConfig) *Loader {
	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = defaultPattern
	}
	cfg.BasePath = filepath.Clean(cfg.BasePath)
	return &Loader{fsys: fsys, cfg: cfg}
}

// LoadFile reads one document and records its sha256 checksum.
func (l *Loader) LoadFile(ctx context.Context, name string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown: stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime(), l.cfg.FrontMatter)
	if err != nil {
		return nil, fmt.Errorf("markdown: %s: %w", rel, err)
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]
	return &DocumentResult{Document: doc, Source: data}, nil
}

// LoadDirectory loads every document Discover finds under dir, in path order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*DocumentResult, error) {
	paths, err := l.Discover(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	results := make([]*DocumentResult, 0, len(paths))
	for _, p := range paths {
		result, err := l.LoadFile(ctx, p)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// Discover lists, sorted, the documents under dir that match the pattern.
func (l *Loader) Discover(ctx context.Context, dir string, opts LoadParams) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := l.resolve(dir)
	if err != nil {
		return nil, err
	}

	recursive := l.cfg.Recursive
	if opts.Recursive != nil {
		recursive = *opts.Recursive
	}
	pattern := l.cfg.Pattern
	if strings.TrimSpace(opts.Pattern) != "" {
		pattern = opts.Pattern
	}

	var paths []string
	err = fs.WalkDir(l.fsys, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if current != root && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if matchPattern(pattern, current) {
			paths = append(paths, current)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

// matchPattern applies a slash-separated glob. "**/" prefixes are dropped, so
// "**/*.md" behaves like "*.md".
func matchPattern(pattern, name string) bool {
	pattern = strings.ReplaceAll(filepath.ToSlash(pattern), "**/", "")
	target := name
	if !strings.Contains(pattern, "/") {
		target = path.Base(name)
	}
	ok, err := path.Match(pattern, target)
	return err == nil && ok
}

// resolve maps name to a clean fs.FS path inside the content root.
func (l *Loader) resolve(name string) (string, error) {
	clean := filepath.Clean(name)
	if filepath.IsAbs(clean) {
		if l.cfg.BasePath == "" || l.cfg.BasePath == "." {
			return "", fmt.Errorf("markdown: absolute path %s needs a base path", name)
		}
		base, err := filepath.Abs(l.cfg.BasePath)
		if err != nil {
			return "", fmt.Errorf("markdown: resolve base path: %w", err)
		}
		if clean, err = filepath.Rel(base, clean); err != nil {
			return "", fmt.Errorf("markdown: %s: %w", name, err)
		}
	}
	rel := path.Clean(filepath.ToSlash(clean))
	if rel == ".." || strings.HasPrefix(rel, "../") || !fs.ValidPath(rel) {
		return "", fmt.Errorf("%w: %s", ErrOutsideContent, name)
	}
	return rel, nil
}
