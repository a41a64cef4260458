// Package core re-exports selected internal types as a stable public
// API surface, so other programs can embed the scanner and validator
// without importing internals directly.
package core

import (
	"github.com/apigenie/apigenie/internal/git"
	"github.com/apigenie/apigenie/internal/meta"
	"github.com/apigenie/apigenie/internal/scan"
	"github.com/apigenie/apigenie/internal/types"
	"github.com/apigenie/apigenie/internal/validate"
)

// These are type aliases so external consumers can depend on a stable
// path. They can become decoupled structs later without breaking callers.
type (
	Finding    = types.Finding
	Thresholds = scan.Thresholds
	Result     = validate.Result
	Descriptor = meta.Descriptor
)

// ScanRepository scans every tracked file of the repository at root
// with default thresholds and exclusions.
func ScanRepository(root string) ([]Finding, error) {
	runner, err := git.NewRunner(root)
	if err != nil {
		return nil, err
	}
	s := scan.New(runner.Root(), runner, scan.DefaultThresholds())
	return s.ScanRepository(), nil
}

// ValidateDescriptor runs the full compliance rule set over one parsed
// descriptor.
func ValidateDescriptor(d Descriptor, location string) *Result {
	return validate.Descriptor(d, location)
}

// ParseDescriptor sniffs and parses raw descriptor content.
func ParseDescriptor(content, path string) Descriptor {
	return meta.Parse(content, path)
}
