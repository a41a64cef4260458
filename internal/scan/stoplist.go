package scan

import "strings"

// commonValues are literal values that are never worth reporting,
// no matter how suspicious the surrounding assignment looks.
var commonValues = map[string]bool{
	"true": true, "false": true, "none": true, "null": true,
	"undefined": true, "localhost": true, "password": true,
	"username": true, "user": true, "test": true, "example": true,
	"demo": true,
}

// suspiciousTerms mark variable names that suggest secret material.
var suspiciousTerms = []string{
	"token", "secret", "password", "pwd", "pass", "key", "auth",
	"credential", "api", "private", "cert", "ssh",
}

// skipValue reports whether a candidate value is a common non-secret:
// too short to be interesting, or a well-known placeholder.
func skipValue(value string) bool {
	if len(value) < 6 {
		return true
	}
	return commonValues[strings.ToLower(value)]
}

// suspiciousName reports whether a variable or environment variable
// name suggests it holds a secret.
func suspiciousName(name string) bool {
	name = strings.ToLower(name)
	for _, term := range suspiciousTerms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}
