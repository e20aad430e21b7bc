package slugs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/mdlinkcheck/internal/markdown"
	"git.home.luguber.info/inful/mdlinkcheck/internal/pathutil"
)

// FromFile reads a Markdown file and returns the slugs of its headings in
// document order. A read failure is fatal to the caller; it is never folded
// into the broken-link report.
func FromFile(path string) ([]string, error) {
	display := pathutil.Simplify(path)
	slog.Debug("Generating slugs", "file", display)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file at '%s': %w", display, err)
	}
	slog.Debug("Read file", "file", display, "bytes", len(content))

	return FromContent(content, display), nil
}

// FromContent extracts heading slugs from Markdown content. display names the
// source in diagnostics. Duplicate slugs receive numeric suffixes in document
// order, so every returned entry is unique.
func FromContent(content []byte, display string) []string {
	doc := markdown.Parse(content)
	headings := doc.Headings()

	out := make([]string, 0, len(headings))
	seen := make(map[string]int)
	for _, h := range headings {
		if strings.TrimSpace(h.Text) == "" {
			slog.Warn("Heading has no title", "file", display, "line", doc.LineAt(h.Offset))
			continue
		}
		slug := Slugify(h.Text)
		if n := seen[slug]; n > 0 {
			out = append(out, fmt.Sprintf("%s-%d", slug, n))
		} else {
			out = append(out, slug)
		}
		seen[slug]++
		slog.Debug("Found header", "file", display, "slug", slug)
	}
	return out
}
