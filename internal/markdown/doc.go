// Package markdown turns Markdown documents into HTML. The native engine
// assembles an htmlnode tree from the blocks and inline packages; the
// goldmark engine is available for documents that need the full CommonMark
// grammar. The package also loads documents from disk, parses their front
// matter and extracts page titles.
package markdown
