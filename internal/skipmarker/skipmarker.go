// Package skipmarker decides from a file's content whether it bypasses compilation.
package skipmarker

import (
	"strings"
	"unicode"
)

// Marker excludes a file when its first non-blank line starts with it.
const Marker = "@skip"

// ShouldSkip reports whether the first non-blank line of content begins with Marker.
// Lines are split on LF; a trailing CR, surrounding Unicode whitespace and
// byte order marks are ignored.
// Content without any non-blank line is never skipped.
func ShouldSkip(content string) bool {
	for line := range strings.SplitSeq(content, "\n") {
		trimmed := strings.TrimFunc(line, isBlank)
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, Marker)
	}
	return false
}

func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
