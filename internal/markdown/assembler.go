package markdown

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-mdsite/internal/blocks"
	"github.com/goliatone/go-mdsite/internal/htmlnode"
	"github.com/goliatone/go-mdsite/internal/inline"
)

// Options controls the native conversion.
type Options struct {
	// RenderImages emits <img src alt> for inline images instead of the
	// legacy "!" followed by an anchor.
	RenderImages bool
}

// Assemble converts a Markdown document into an untagged root node holding
// one child per block, in document order. Assembly never fails; invalid
// nodes surface as a RenderError once the root is rendered.
func Assemble(document string, opts Options) *htmlnode.Parent {
	inlineOpts := inline.Options{Images: opts.RenderImages}

	root := htmlnode.NewRoot()
	for _, block := range blocks.Parse(document) {
		root.Append(blockNode(block, inlineOpts))
	}
	return root.Build()
}

// ToHTML assembles the document and renders it in one step.
func ToHTML(document string, opts Options) (string, error) {
	return Assemble(document, opts).Render()
}

func blockNode(block blocks.Block, opts inline.Options) htmlnode.Node {
	switch block.Kind.Type {
	case blocks.Heading:
		text := blocks.HeadingText(block.Text, block.Kind.Level)
		return htmlnode.NewLeaf("h"+strconv.Itoa(block.Kind.Level), inline.RenderText(text, opts), nil)
	case blocks.CodeBlock:
		return htmlnode.NewLeaf("pre", blocks.CodeText(block.Text), nil)
	case blocks.QuoteBlock:
		return htmlnode.NewLeaf("blockquote", strings.Join(blocks.QuoteLines(block.Text), "\n"), nil)
	case blocks.UnorderedList:
		return listNode("ul", blocks.ListItems(block.Text, false), opts)
	case blocks.OrderedList:
		return listNode("ol", blocks.ListItems(block.Text, true), opts)
	default:
		return htmlnode.NewLeaf("p", inline.RenderText(block.Text, opts), nil)
	}
}

func listNode(tag string, items []string, opts inline.Options) htmlnode.Node {
	children := make([]htmlnode.Node, 0, len(items))
	for _, item := range items {
		children = append(children, htmlnode.NewLeaf("li", inline.RenderText(item, opts), nil))
	}
	return htmlnode.NewParent(tag, children, nil)
}
