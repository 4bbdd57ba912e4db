// Package isbn normalizes raw ISBN strings into their canonical
// 10- or 13-character form.
package isbn

import "strings"

// Normalize upper-cases the input and strips every character that is not
// a digit or X. The result is returned only when it is exactly 10 or 13
// characters long; anything else degrades to the empty string. No
// checksum validation is performed.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= '0' && r <= '9') || r == 'X' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if len(cleaned) == 10 || len(cleaned) == 13 {
		return cleaned
	}
	return ""
}
