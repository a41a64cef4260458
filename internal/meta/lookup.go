package meta

import "strings"

// Nested walks a dot-separated path through nested mappings.
// It returns nil when any hop is missing or not a mapping.
func Nested(data Descriptor, path string) any {
	var current any = data
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// First returns the first non-nil, non-empty value among the given
// paths, plus the path it came from.
func First(data Descriptor, paths ...string) (any, string) {
	for _, p := range paths {
		v := Nested(data, p)
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return v, p
	}
	return nil, ""
}
