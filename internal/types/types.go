package types

// Method says which detection path produced a finding.
type Method string

const (
	// MethodPattern is a match against the pattern catalog.
	MethodPattern Method = "pattern_match"
	// MethodVariable is a match from the variable-assignment heuristic.
	MethodVariable Method = "variable_scan"
)

// Finding describes a potential secret detected at a path and line.
// Entropy is nil for rules whose shape alone is conclusive.
type Finding struct {
	Path     string   `json:"path"`
	Line     int      `json:"line"`
	LineText string   `json:"line_text,omitempty"`
	Match    string   `json:"match"`
	Type     string   `json:"type"`
	Variable string   `json:"variable,omitempty"`
	Entropy  *float64 `json:"entropy,omitempty"`
	Method   Method   `json:"method"`
}

// DiffLine is one added line from a unified diff, numbered in the
// new version of the file.
type DiffLine struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Decision is the outcome of presenting a failed check to the user.
type Decision int

const (
	// DecisionBlock rejects the commit or push.
	DecisionBlock Decision = iota
	// DecisionOverride proceeds despite failures, with a justification.
	DecisionOverride
	// DecisionAbort cancels without recording anything.
	DecisionAbort
)

func (d Decision) String() string {
	switch d {
	case DecisionOverride:
		return "override"
	case DecisionAbort:
		return "abort"
	default:
		return "block"
	}
}
