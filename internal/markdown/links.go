package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
)

// InlineLink is a link written with its destination directly in the source,
// as opposed to reference-style links and autolinks.
type InlineLink struct {
	Destination string
	Offset      int // byte offset of the link text in the source
}

// InlineLinks returns the document's inline links in document order.
//
// goldmark resolves reference-style links into the same node kind as inline
// links, so the source byte following the closing bracket of the link text
// decides the kind: an opening parenthesis means inline.
func (d *Document) InlineLinks() []InlineLink {
	var links []InlineLink

	// Links with empty text have no segments of their own; their position is
	// recovered from the surrounding source, bounded by the enclosing block.
	blockStart := 0

	_ = ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock {
			if lines := n.Lines(); lines != nil && lines.Len() > 0 {
				blockStart = lines.At(0).Start
			}
		}

		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !d.isInline(link) {
			return ast.WalkContinue, nil
		}

		offset := firstSegmentStart(link)
		if offset < 0 {
			offset = d.bracketOffset(link, blockStart)
		}
		links = append(links, InlineLink{
			Destination: string(link.Destination),
			Offset:      offset,
		})
		return ast.WalkContinue, nil
	})

	return links
}

// isInline reports whether the link was written inline. It looks past the
// closing bracket of the link text for an opening parenthesis.
func (d *Document) isInline(link *ast.Link) bool {
	stop := lastSegmentStop(link)
	if stop < 0 {
		// A link with empty text can only be written inline.
		return true
	}
	i := stop
	for i < len(d.source) && d.source[i] != ']' {
		i++
	}
	i++
	return i < len(d.source) && d.source[i] == '('
}

// bracketOffset approximates the position of a link that carries no segments
// itself: the next opening bracket after the nearest preceding sibling with
// source segments, so the link is placed on its own line rather than the
// block's first.
func (d *Document) bracketOffset(link *ast.Link, blockStart int) int {
	from := blockStart
	for p := link.PreviousSibling(); p != nil; p = p.PreviousSibling() {
		if stop := lastSegmentStop(p); stop >= 0 {
			from = stop
			break
		}
	}
	if idx := bytes.IndexByte(d.source[from:], '['); idx >= 0 {
		return from + idx
	}
	return blockStart
}

// firstSegmentStart returns the byte offset of the first text segment at or
// under n, or -1 when n carries no text.
func firstSegmentStart(n ast.Node) int {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off := firstSegmentStart(c); off >= 0 {
			return off
		}
	}
	return -1
}

// lastSegmentStop returns the byte offset just past the last text segment at
// or under n, or -1 when n carries no text.
func lastSegmentStop(n ast.Node) int {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Stop
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if off := lastSegmentStop(c); off >= 0 {
			return off
		}
	}
	return -1
}
