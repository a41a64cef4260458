package scan

import "regexp"

// Rule is one entry of the pattern catalog. Rules are evaluated in
// order and the first accepted match wins for a given line.
type Rule struct {
	Re        *regexp.Regexp
	Label     string
	MinLength int
	// RequireEntropy gates the match on Shannon entropy >= Threshold.
	// Rules whose shape is specific enough leave it false.
	RequireEntropy bool
	Threshold      float64
	// CheckName requires the first capture group to be a suspicious
	// variable name (used for `export VAR=...` style matches).
	CheckName bool
}

// Thresholds holds the tunable entropy settings. Two profiles exist:
// the strict default and a lenient one kept for older repositories.
type Thresholds struct {
	Default           float64
	Password          float64
	PasswordMinLength int
}

// DefaultThresholds is the strict profile.
func DefaultThresholds() Thresholds {
	return Thresholds{Default: 4.0, Password: 4.0, PasswordMinLength: 8}
}

// LenientThresholds trades more noise for catching weaker passwords.
func LenientThresholds() Thresholds {
	return Thresholds{Default: 4.0, Password: 3.0, PasswordMinLength: 6}
}

// Catalog builds the ordered rule list for the given thresholds.
func Catalog(t Thresholds) []Rule {
	return []Rule{
		{Re: regexp.MustCompile(`(?i)aws[_\-.]*(access|secret|key)[_\-.]*\s*[=:]\s*[A-Za-z0-9/+=]{16,}`),
			Label: "AWS Credential", MinLength: 16, RequireEntropy: true, Threshold: 4.5},
		// A 20-char key ID over the base36 alphabet tops out just above
		// 4.2 bits, so the gate sits at 4.0 rather than 4.5.
		{Re: regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
			Label: "AWS Access Key ID", MinLength: 20, RequireEntropy: true, Threshold: 4.0},

		{Re: regexp.MustCompile(`(?i)-----BEGIN\s+(?:RSA|OPENSSH|DSA|EC|PGP)\s+PRIVATE\s+KEY-----[A-Za-z0-9/+=\s]+-----END`),
			Label: "Private Key"},
		{Re: regexp.MustCompile(`(?i)ssh-rsa\s+[A-Za-z0-9/+=]{32,}`),
			Label: "SSH Key"},

		{Re: regexp.MustCompile(`(?i)api[_\-.]?key[_\-.]*\s*[=:]\s*[A-Za-z0-9_\-]{8,}`),
			Label: "API Key", MinLength: 8, RequireEntropy: true, Threshold: 4.0},
		{Re: regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.=]{20,}`),
			Label: "Bearer Token", MinLength: 20, RequireEntropy: true, Threshold: 4.0},
		{Re: regexp.MustCompile(`ghp_[0-9a-zA-Z]{36}`),
			Label: "GitHub Personal Access Token"},
		{Re: regexp.MustCompile(`github_pat_[0-9a-zA-Z]{82}`),
			Label: "GitHub Fine-grained PAT"},
		{Re: regexp.MustCompile(`sk-[a-zA-Z0-9]{48}`),
			Label: "OpenAI API Key"},
		{Re: regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),
			Label: "Google API Key"},

		{Re: regexp.MustCompile(`eyJ[A-Za-z0-9-_]{10,}\.[A-Za-z0-9-_]{10,}\.[A-Za-z0-9-_]{10,}`),
			Label: "JWT Token"},

		{Re: regexp.MustCompile(`(?i)password[_\-.]?\s*[=:]\s*[^\s]{6,}`),
			Label: "Password Assignment", MinLength: t.PasswordMinLength, RequireEntropy: true, Threshold: t.Password},
		{Re: regexp.MustCompile(`(?i)pass[_\-.]?\s*[=:]\s*[^\s]{6,}`),
			Label: "Password Assignment", MinLength: t.PasswordMinLength, RequireEntropy: true, Threshold: t.Password},
		{Re: regexp.MustCompile(`(?i)pwd[_\-.]?\s*[=:]\s*[^\s]{6,}`),
			Label: "Password Assignment", MinLength: t.PasswordMinLength, RequireEntropy: true, Threshold: t.Password},

		{Re: regexp.MustCompile(`(?i)(secret|token|credential)[_\-.]?\s*[=:]\s*[^\s]{8,}`),
			Label: "Generic Secret", MinLength: 8, RequireEntropy: true, Threshold: 4.0},

		{Re: regexp.MustCompile(`(?i)(jdbc|mongodb|postgresql|mysql).*://[^/\s]+:[^/\s@]+@[^/\s]+`),
			Label: "Database Connection String"},

		{Re: regexp.MustCompile(`(?i)export\s+(\w+)\s*=\s*[^\s]{6,}`),
			Label: "Environment Variable", MinLength: 6, CheckName: true},
	}
}

// varAssignPatterns back the variable-name heuristic. Each has two
// capture groups: the variable name and the assigned value.
var varAssignPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:const|let|var|private|public|protected)?\s*(\w+)\s*[=:]\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)(\w+)\s*[=:]\s*["']([^"']+)["']`),
	regexp.MustCompile(`(?i)(\w+)\s*=\s*"""([^"]*)"""`),
	regexp.MustCompile("(?i)(\\w+)\\s*=\\s*`([^`]*)`"),
}
