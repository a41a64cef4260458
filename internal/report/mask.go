package report

import "strings"

// MaskSecret hides the middle of a secret, keeping three characters on
// each end. Values of six characters or fewer are returned whole: the
// mask would reveal everything anyway.
func MaskSecret(s string) string {
	if len(s) <= 6 {
		return s
	}
	return s[:3] + strings.Repeat("*", len(s)-6) + s[len(s)-3:]
}
