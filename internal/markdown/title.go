package markdown

import (
	"errors"
	"strings"
)

// ErrNoTitle is returned by ExtractTitle when the document has no
// top-level heading line.
var ErrNoTitle = errors.New("markdown: no top-level heading found")

// ExtractTitle returns the text of the first line that starts with "# ",
// trimmed. Lines are inspected as written, so an indented heading or a
// deeper heading level does not count.
func ExtractTitle(document string) (string, error) {
	for _, line := range strings.Split(document, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", ErrNoTitle
}
