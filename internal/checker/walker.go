package checker

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdlinkcheck/internal/pathutil"
)

// CheckDir recursively checks every Markdown file under dir and concatenates
// the results. A failure to list a directory or to read an entry's metadata
// aborts the whole call; broken links never do.
func (c *Checker) CheckDir(dir string) ([]BrokenLink, error) {
	display := pathutil.Simplify(dir)
	slog.Debug("Analyzing directory", "dir", display)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory at '%s': %w", display, err)
	}

	var broken []BrokenLink
	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to read file type of item at '%s': %w", pathutil.Simplify(entryPath), err)
		}

		switch {
		case info.IsDir():
			sub, err := c.CheckDir(entryPath)
			if err != nil {
				return nil, err
			}
			broken = append(broken, sub...)
		case info.Mode().IsRegular():
			if !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
				continue
			}
			sub, err := c.CheckFile(entryPath)
			if err != nil {
				return nil, err
			}
			broken = append(broken, sub...)
		default:
			slog.Warn("Item is neither a file nor a directory, ignoring", "path", pathutil.Simplify(entryPath))
		}
	}

	return broken, nil
}
