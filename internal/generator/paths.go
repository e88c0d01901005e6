package generator

import (
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-slug"
)

// outputPathFor maps a content-relative source path to its page path, with
// the extension replaced by .html. Directory and file names are normalised
// to slugs when slugify is set; names that normalise to nothing are kept.
func outputPathFor(source string, slugify bool) (string, error) {
	clean := strings.Trim(path.Clean(strings.ReplaceAll(source, "\\", "/")), "/")
	if clean == "" || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return "", fmt.Errorf("generator: invalid source path %q", source)
	}

	stem := strings.TrimSuffix(clean, path.Ext(clean))
	if slugify {
		segments := strings.Split(stem, "/")
		for i, segment := range segments {
			if normalized, err := slug.Normalize(segment); err == nil && normalized != "" {
				segments[i] = normalized
			}
		}
		stem = path.Join(segments...)
	}
	return stem + ".html", nil
}
