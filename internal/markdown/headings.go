package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Heading is a document heading with its accumulated plain text.
type Heading struct {
	Text   string
	Offset int // byte offset of the heading content in the source
}

// Headings returns the document's headings in order. Text accumulates from
// text-bearing nodes (plain text, inline code, raw HTML) between the
// heading's start and end; structural nodes contribute nothing. The
// accumulator is a two-state machine keyed on entering and leaving the
// heading node, so no ordering is assumed beyond start-before-end.
func (d *Document) Headings() []Heading {
	var headings []Heading
	var buf strings.Builder
	inHeading := false
	offset := 0

	_ = ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok {
			if entering {
				inHeading = true
				buf.Reset()
				offset = 0
				if lines := h.Lines(); lines.Len() > 0 {
					offset = lines.At(0).Start
				}
			} else {
				inHeading = false
				headings = append(headings, Heading{Text: buf.String(), Offset: offset})
			}
			return ast.WalkContinue, nil
		}
		if !entering || !inHeading {
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(d.source))
		case *ast.String:
			buf.Write(t.Value)
		case *ast.RawHTML:
			for i := 0; i < t.Segments.Len(); i++ {
				seg := t.Segments.At(i)
				buf.Write(seg.Value(d.source))
			}
		}
		return ast.WalkContinue, nil
	})

	return headings
}
