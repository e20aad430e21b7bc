// Package pathutil provides the two path forms the checker works with: a
// lexically simplified form used for display strings, and a fully resolved
// canonical form used as cache keys.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Simplify normalizes a path without touching the filesystem. "." components
// are dropped, and a ".." cancels an immediately preceding normal component.
// When cancellation is not possible the ".." is kept for relative paths (to
// preserve their relativity) and dropped after the root of absolute paths.
//
// Simplify("../a/b/../c") == "../a/c"
// Simplify("a/../b") == "b"
// Simplify("../..") == "../.."
func Simplify(path string) string {
	isAbs := filepath.IsAbs(path)

	var out []string
	for _, comp := range strings.Split(filepath.ToSlash(path), "/") {
		switch comp {
		case "", ".":
			// Separator runs and current-dir components carry no meaning.
		case "..":
			if len(out) > 0 && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
			} else if !isAbs {
				out = append(out, "..")
			}
		default:
			out = append(out, comp)
		}
	}

	joined := strings.Join(out, string(filepath.Separator))
	if isAbs {
		return string(filepath.Separator) + joined
	}
	return joined
}

// Canonicalize resolves a path to an absolute, symlink-free form suitable as
// a cache key. Unlike Simplify it requires the path to exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
