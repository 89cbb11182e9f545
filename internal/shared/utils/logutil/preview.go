package logutil

import "unicode/utf8"

// Preview shortens s to at most maxRunes runes for log lines and mail
// subjects, appending "..." when something was cut. It never splits a rune.
func Preview(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return "..."
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
