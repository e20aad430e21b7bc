// Package checker resolves Markdown links against the filesystem and reports
// the broken ones. Validation failures are collected and returned together;
// I/O failures abort the affected traversal branch immediately.
package checker

import "fmt"

// Options controls scan behavior. Immutable for the duration of a scan.
type Options struct {
	// IgnoreHeaderLinks skips '#fragment' validation entirely.
	IgnoreHeaderLinks bool

	// DisallowDirLinks makes a fragment-free link to an existing directory an
	// error instead of a valid link.
	DisallowDirLinks bool
}

// BrokenLink reports one invalid link. Line is 1-based in File's content.
type BrokenLink struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s:%d: %s", b.File, b.Line, b.Message)
}
