// Package report renders scan results for the terminal or machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/mdlinkcheck/internal/checker"
)

// Result is the outcome of one scan.
type Result struct {
	Path         string
	FilesChecked int
	Links        []checker.BrokenLink
}

// HasErrors reports whether any broken links were found.
func (r *Result) HasErrors() bool {
	return len(r.Links) > 0
}

// Formatter renders a scan result.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// NewFormatter creates the appropriate formatter for the format string.
func NewFormatter(format string, useColor bool) Formatter {
	switch format {
	case "json":
		return &JSONFormatter{}
	default:
		return &TextFormatter{Color: useColor}
	}
}

const (
	ansiReset   = "\x1b[0m"
	ansiMagenta = "\x1b[95m"
	ansiCyan    = "\x1b[96m"
	ansiYellow  = "\x1b[93m"
)

// TextFormatter renders results as human-readable text, one line per broken
// link plus a summary.
type TextFormatter struct {
	Color bool
}

// Format outputs the result as text.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	for _, link := range result.Links {
		var line string
		if f.Color {
			line = fmt.Sprintf("* In %s%s%s:%s%d%s: %s%s%s",
				ansiMagenta, link.File, ansiReset,
				ansiCyan, link.Line, ansiReset,
				ansiYellow, link.Message, ansiReset)
		} else {
			line = fmt.Sprintf("* In %s:%d: %s", link.File, link.Line, link.Message)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(result.Links) > 0 {
		if _, err := fmt.Fprintf(w, "Found %d broken or invalid link%s in %d file%s\n",
			len(result.Links), pluralize(len(result.Links)),
			result.FilesChecked, pluralize(result.FilesChecked)); err != nil {
			return err
		}
		return nil
	}

	_, err := fmt.Fprintf(w, "No broken links in %d file%s\n",
		result.FilesChecked, pluralize(result.FilesChecked))
	return err
}

// JSONFormatter renders results as JSON.
type JSONFormatter struct{}

// JSONOutput is the JSON output structure.
type JSONOutput struct {
	Path         string               `json:"path"`
	FilesChecked int                  `json:"files_checked"`
	BrokenCount  int                  `json:"broken_count"`
	BrokenLinks  []checker.BrokenLink `json:"broken_links"`
}

// Format outputs the result as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	output := JSONOutput{
		Path:         result.Path,
		FilesChecked: result.FilesChecked,
		BrokenCount:  len(result.Links),
		BrokenLinks:  result.Links,
	}
	if output.BrokenLinks == nil {
		output.BrokenLinks = []checker.BrokenLink{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// ColorSupported checks if the terminal supports color output.
func ColorSupported() bool {
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		return false
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}

	return true
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
