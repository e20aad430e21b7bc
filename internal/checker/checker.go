package checker

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"

	"git.home.luguber.info/inful/mdlinkcheck/internal/markdown"
	"git.home.luguber.info/inful/mdlinkcheck/internal/pathutil"
	"git.home.luguber.info/inful/mdlinkcheck/internal/slugs"
)

// Checker scans Markdown files for broken links. One Checker holds the slug
// cache shared by every file visited during a scan, so both entry points
// (single file and recursive directory) reuse slug extraction per target.
type Checker struct {
	opts         Options
	slugs        *slugs.Cache
	filesChecked int
}

// New creates a Checker with a fresh slug cache.
func New(opts Options) *Checker {
	return NewWithCache(opts, slugs.NewCache())
}

// NewWithCache creates a Checker over a caller-supplied slug cache. Tests use
// this to observe cache population.
func NewWithCache(opts Options, cache *slugs.Cache) *Checker {
	return &Checker{opts: opts, slugs: cache}
}

// FilesChecked reports how many Markdown files the checker has processed.
func (c *Checker) FilesChecked() int {
	return c.filesChecked
}

// CheckPath checks a single file, or the whole subtree when path is a
// directory.
func (c *Checker) CheckPath(path string) ([]BrokenLink, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect input at '%s': %w", pathutil.Simplify(path), err)
	}
	if info.IsDir() {
		return c.CheckDir(path)
	}
	return c.CheckFile(path)
}

// CheckFile checks one Markdown file and returns every broken link found in
// it. Only the file itself being unreadable (or a link target's slug
// extraction failing) is an error; invalid links are collected and returned.
func (c *Checker) CheckFile(path string) ([]BrokenLink, error) {
	display := pathutil.Simplify(path)
	slog.Info("Analyzing file", "file", display)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file at '%s': %w", display, err)
	}
	slog.Debug("Read file", "file", display, "bytes", len(content))
	c.filesChecked++

	doc := markdown.Parse(content)
	var broken []BrokenLink

	// References without a definition surface through the resolver hook. No
	// substitute is ever offered, so the reference stays broken on the parser
	// side and the occurrence lands in the report instead.
	for _, ref := range doc.UnresolvedReferences(markdown.ResolverFunc(func(string) (string, bool) {
		return "", false
	})) {
		broken = append(broken, BrokenLink{
			File:    display,
			Line:    doc.LineAt(ref.Offset),
			Message: fmt.Sprintf("missing target for link '%s'", ref.Label),
		})
	}

	for _, link := range doc.InlineLinks() {
		target, fragment, hasFragment, kind := classify(link.Destination)
		if kind != targetLocal {
			slog.Debug("Skipping external link", "file", display, "target", target)
			continue
		}

		resolved := resolveLocal(path, target)
		targetDisplay := pathutil.Simplify(resolved)
		line := doc.LineAt(link.Offset)

		canon, err := pathutil.Canonicalize(resolved)
		if err != nil {
			broken = append(broken, BrokenLink{File: display, Line: line,
				Message: fmt.Sprintf("path '%s' does not exist", targetDisplay)})
			continue
		}
		info, err := os.Stat(canon)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect link target at '%s': %w", targetDisplay, err)
		}

		if c.opts.DisallowDirLinks && info.IsDir() {
			broken = append(broken, BrokenLink{File: display, Line: line,
				Message: fmt.Sprintf("path '%s' is a directory but only file links are allowed", targetDisplay)})
			continue
		}
		if c.opts.IgnoreHeaderLinks || !hasFragment {
			slog.Debug("Valid link", "file", display, "target", targetDisplay)
			continue
		}

		// A fragment can only name a header inside a file.
		if !info.Mode().IsRegular() {
			broken = append(broken, BrokenLink{File: display, Line: line,
				Message: fmt.Sprintf("path '%s' exists but is not a file", targetDisplay)})
			continue
		}
		fileSlugs, err := c.slugs.Slugs(canon)
		if err != nil {
			return nil, fmt.Errorf("failed to generate slugs for file '%s': %w", targetDisplay, err)
		}
		if !slices.Contains(fileSlugs, fragment) {
			broken = append(broken, BrokenLink{File: display, Line: line,
				Message: fmt.Sprintf("header '%s' not found in '%s'", fragment, targetDisplay)})
		} else {
			slog.Debug("Valid header link", "file", display, "header", fragment)
		}
	}

	// Unresolved references and inline links are gathered in separate passes;
	// restore document order for the report.
	sort.SliceStable(broken, func(i, j int) bool { return broken[i].Line < broken[j].Line })

	return broken, nil
}
