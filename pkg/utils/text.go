// Package utils provides small shared helpers for text, math, and logging.
package utils

import "strings"

// Truncate returns s shortened to maxLen characters, with "..." appended when
// anything was cut. A zero or negative maxLen returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// FirstSentence returns the text up to (and excluding) the first period.
// If there is no period, the whole trimmed string is returned.
func FirstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
