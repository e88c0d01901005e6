// Package htmlnode models the tree of renderable HTML nodes produced by the
// Markdown assembler. Leaf nodes hold text, parent nodes own their children,
// and the designated root renders the concatenation of its children without
// any wrapping element. Values are emitted verbatim; nothing is escaped.
package htmlnode
