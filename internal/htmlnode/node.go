package htmlnode

import "strings"

// Node is implemented by every renderable element of the tree.
type Node interface {
	Render() (string, error)
}

// Raw is a literal string child. It renders verbatim and never fails.
type Raw string

// Render returns the string unchanged.
func (r Raw) Render() (string, error) {
	return string(r), nil
}

// Leaf is a node without children. An empty Tag renders the value as raw text.
type Leaf struct {
	Tag   string
	Value string
	Attrs *Attributes
}

// NewLeaf constructs a leaf node with optional attributes.
func NewLeaf(tag, value string, attrs *Attributes) *Leaf {
	return &Leaf{Tag: tag, Value: value, Attrs: attrs}
}

// Render serialises the leaf as `<tag attrs>value</tag>`, or the bare value
// when no tag is set.
func (l *Leaf) Render() (string, error) {
	if l.Value == "" {
		return "", &RenderError{Tag: l.Tag, Reason: reasonEmptyValue}
	}
	if l.Tag == "" {
		return l.Value, nil
	}
	return "<" + l.Tag + l.Attrs.String() + ">" + l.Value + "</" + l.Tag + ">", nil
}

// Parent owns an ordered list of children. When Root is set the parent
// renders only its children, regardless of Tag.
type Parent struct {
	Tag      string
	Children []Node
	Attrs    *Attributes
	Root     bool
}

// NewParent constructs a tagged, non-root parent node.
func NewParent(tag string, children []Node, attrs *Attributes) *Parent {
	return &Parent{Tag: tag, Children: children, Attrs: attrs}
}

// Render concatenates the rendered children, wrapping them in the parent's
// tag unless this is the document root.
func (p *Parent) Render() (string, error) {
	if len(p.Children) == 0 {
		return "", &RenderError{Tag: p.Tag, Reason: reasonNoChildren}
	}
	if !p.Root && p.Tag == "" {
		return "", &RenderError{Reason: reasonMissingTag}
	}

	var b strings.Builder
	if !p.Root {
		b.WriteString("<" + p.Tag + p.Attrs.String() + ">")
	}
	for _, child := range p.Children {
		if child == nil {
			continue
		}
		out, err := child.Render()
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	if !p.Root {
		b.WriteString("</" + p.Tag + ">")
	}
	return b.String(), nil
}

// RootBuilder accumulates the top-level nodes of a document and finalises
// them into a root parent exactly once.
type RootBuilder struct {
	children []Node
	built    bool
}

// NewRoot returns an empty builder for a document root.
func NewRoot() *RootBuilder {
	return &RootBuilder{}
}

// Append adds a child in document order. Calls after Build are ignored.
func (b *RootBuilder) Append(node Node) *RootBuilder {
	if b.built || node == nil {
		return b
	}
	b.children = append(b.children, node)
	return b
}

// Len reports how many children have been appended.
func (b *RootBuilder) Len() int {
	return len(b.children)
}

// Build returns the root node. The builder hands over its children and
// cannot be reused.
func (b *RootBuilder) Build() *Parent {
	b.built = true
	children := b.children
	b.children = nil
	return &Parent{Children: children, Root: true}
}
