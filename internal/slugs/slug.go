// Package slugs turns heading text into anchor slugs and memoizes per-file
// slug lists across a scan.
package slugs

import "strings"

// Slugify converts heading text into its anchor form: lowercase, spaces become
// hyphens, ASCII letters, digits, '-' and '_' are kept, everything else is
// dropped. Punctuation is stripped outright, not converted to hyphens; this
// mirrors the anchor convention of the renderer the checker targets.
//
// Slugify("My super header") == "my-super-header"
// Slugify("I love headers!") == "i-love-headers"
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
