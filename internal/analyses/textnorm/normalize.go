// Package textnorm canonicalizes extracted resume text before analysis.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize collapses horizontal whitespace runs to one space and line-break
// runs to one newline, then trims. Line structure survives so bullet and
// line-based analyzers still see lines. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFC.String(raw)

	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	pendingBreak := false
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029' || r == '\v' || r == '\f':
			pendingBreak = true
			pendingSpace = false
		case unicode.IsSpace(r):
			if !pendingBreak {
				pendingSpace = true
			}
		default:
			if b.Len() > 0 {
				if pendingBreak {
					b.WriteByte('\n')
				} else if pendingSpace {
					b.WriteByte(' ')
				}
			}
			pendingSpace = false
			pendingBreak = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lines splits normalized text into its non-empty lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
