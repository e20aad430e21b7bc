// Package markdown is the event layer over goldmark used for link and heading
// analysis. One Parse per document exposes inline links with byte offsets,
// heading text, unresolved link references and offset-to-line mapping.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Document is a parsed Markdown source.
type Document struct {
	source []byte
	root   ast.Node
	refs   map[string]string // normalized reference label -> destination
}

// Parse parses source into a Document. goldmark accepts arbitrary input, so
// parsing itself never fails.
func Parse(source []byte) *Document {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	// Reference definitions live in the parse context, not the AST.
	refs := make(map[string]string)
	for _, ref := range ctx.References() {
		refs[normalizeLabel(string(ref.Label()))] = string(ref.Destination())
	}

	return &Document{source: source, root: root, refs: refs}
}

// LineAt converts a byte offset into a 1-based line number by counting the
// newlines preceding it.
func (d *Document) LineAt(offset int) int {
	if offset > len(d.source) {
		offset = len(d.source)
	}
	if offset < 0 {
		offset = 0
	}
	return bytes.Count(d.source[:offset], []byte{'\n'}) + 1
}

// Reference labels match case-insensitively per CommonMark.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
