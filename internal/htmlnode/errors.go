package htmlnode

import (
	"errors"
	"fmt"
)

// ErrRender is matched by every RenderError through errors.Is.
var ErrRender = errors.New("htmlnode: render failed")

// RenderError reports a node that cannot be serialised: a leaf without a
// value, a parent without children, or a non-root parent without a tag.
type RenderError struct {
	Tag    string
	Reason string
}

func (e *RenderError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("htmlnode: %s", e.Reason)
	}
	return fmt.Sprintf("htmlnode: <%s>: %s", e.Tag, e.Reason)
}

// Is lets errors.Is(err, ErrRender) match any RenderError.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

const (
	reasonEmptyValue = "leaf node requires a value"
	reasonNoChildren = "parent node requires children"
	reasonMissingTag = "parent node requires a tag"
)
