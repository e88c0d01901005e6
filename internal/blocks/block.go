// Package blocks splits a Markdown document into blank-line separated blocks
// and classifies each block by its syntactic shape.
package blocks

// Type is the syntactic shape of a block.
type Type uint8

const (
	Paragraph Type = iota
	Heading
	CodeBlock
	QuoteBlock
	UnorderedList
	OrderedList
)

// String returns the human readable label used in logs and diagnostics.
func (t Type) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case CodeBlock:
		return "code block"
	case QuoteBlock:
		return "quote block"
	case UnorderedList:
		return "unordered list"
	case OrderedList:
		return "ordered list"
	default:
		return "unknown"
	}
}

// Kind is the classification result. Level is 1-6 for headings and zero
// for every other type.
type Kind struct {
	Type  Type
	Level int
}

// Block is a normalized block of text together with its classification.
type Block struct {
	Text string
	Kind Kind
}

// Parse segments document and classifies every block, preserving order.
func Parse(document string) []Block {
	segments := Segment(document)
	out := make([]Block, 0, len(segments))
	for _, text := range segments {
		out = append(out, Block{Text: text, Kind: Classify(text)})
	}
	return out
}
