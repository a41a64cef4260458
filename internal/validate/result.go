package validate

import "fmt"

// Result collects errors and warnings from one validation run. Every
// message is prefixed with the file it concerns, or "repository" for
// repo-level checks.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// AddError records a failed check against a location.
func (r *Result) AddError(msg, loc string) {
	if loc == "" {
		loc = "repository"
	}
	r.Errors = append(r.Errors, fmt.Sprintf("%s - %s", loc, msg))
}

// AddWarning records a non-blocking observation against a location.
func (r *Result) AddWarning(msg, loc string) {
	if loc == "" {
		loc = "repository"
	}
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s - %s", loc, msg))
}

// Merge appends another result's messages.
func (r *Result) Merge(other *Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Passed reports whether no errors were recorded.
func (r *Result) Passed() bool { return len(r.Errors) == 0 }
