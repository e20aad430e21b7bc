package markdown

import (
	"regexp"
	"strings"
)

// ReferenceResolver decides the fate of a link reference that has no
// definition in the document. Returning ok substitutes a destination for the
// label and suppresses the broken-reference report for that occurrence.
type ReferenceResolver interface {
	ResolveReference(label string) (destination string, ok bool)
}

// ResolverFunc adapts a function to the ReferenceResolver interface.
type ResolverFunc func(label string) (string, bool)

func (f ResolverFunc) ResolveReference(label string) (string, bool) { return f(label) }

// Reference is a link reference whose label had no definition.
type Reference struct {
	Label  string
	Offset int
}

var (
	inlineCodePattern = regexp.MustCompile("`[^`]*`")
	taskMarkerPattern = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+\[[ xX]\]\s`)
)

// UnresolvedReferences finds reference-style links (shortcut, collapsed and
// full form) whose labels have no definition, consulting resolver once per
// occurrence. goldmark leaves such references in the output as literal text
// rather than surfacing them, so candidates come from a source scan that
// skips fenced blocks, indented code and inline code spans.
func (d *Document) UnresolvedReferences(resolver ReferenceResolver) []Reference {
	var refs []Reference

	offset := 0
	inCodeBlock := false
	fence := ""
	for _, line := range strings.SplitAfter(string(d.source), "\n") {
		lineOffset := offset
		offset += len(line)

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock, fence = toggleFence(inCodeBlock, fence, "```")
			continue
		}
		if strings.HasPrefix(trimmed, "~~~") {
			inCodeBlock, fence = toggleFence(inCodeBlock, fence, "~~~")
			continue
		}
		if inCodeBlock || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}

		// Blank out inline code spans, preserving offsets.
		masked := inlineCodePattern.ReplaceAllStringFunc(line, func(m string) string {
			return strings.Repeat(" ", len(m))
		})
		// Task list checkboxes are structural markers, not references.
		if loc := taskMarkerPattern.FindStringIndex(masked); loc != nil {
			masked = strings.Repeat(" ", loc[1]) + masked[loc[1]:]
		}

		for _, cand := range scanReferenceCandidates(masked) {
			if _, defined := d.refs[normalizeLabel(cand.label)]; defined {
				continue
			}
			if resolver != nil {
				if _, ok := resolver.ResolveReference(cand.label); ok {
					continue
				}
			}
			refs = append(refs, Reference{Label: cand.label, Offset: lineOffset + cand.idx})
		}
	}

	return refs
}

func toggleFence(inCodeBlock bool, activeFence, fence string) (bool, string) {
	if !inCodeBlock {
		return true, fence
	}
	if activeFence == fence {
		return false, ""
	}
	return inCodeBlock, activeFence
}

type refCandidate struct {
	label string
	idx   int
}

// scanReferenceCandidates extracts reference labels from one line. Bracket
// groups followed by '(' (inline links) or ':' (definitions) are not
// references; a following bracket group is the full/collapsed form, where a
// non-empty second label wins. Footnote labels are not link references.
func scanReferenceCandidates(line string) []refCandidate {
	var cands []refCandidate

	for i := 0; i < len(line); i++ {
		if line[i] != '[' || (i > 0 && line[i-1] == '\\') {
			continue
		}
		start := i
		rel := strings.IndexByte(line[start+1:], ']')
		if rel < 0 {
			break
		}
		end := start + 1 + rel
		label := line[start+1 : end]
		next := byte(0)
		if end+1 < len(line) {
			next = line[end+1]
		}

		switch next {
		case '(', ':':
			// Inline link or reference definition.
			i = end
			continue
		case '[':
			// Full or collapsed form: [text][label] / [text][].
			rel2 := strings.IndexByte(line[end+2:], ']')
			if rel2 < 0 {
				i = end
				continue
			}
			if second := line[end+2 : end+2+rel2]; second != "" {
				label = second
			}
			i = end + 2 + rel2
		default:
			i = end
		}

		// A link label needs at least one non-whitespace character.
		if strings.TrimSpace(label) == "" || strings.HasPrefix(label, "^") {
			continue
		}
		cands = append(cands, refCandidate{label: label, idx: start})
	}

	return cands
}
