package meta

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Descriptor is a parsed api.meta document.
type Descriptor = map[string]any

// Parse turns raw descriptor bytes into a mapping. It sniffs the
// format from the path extension and the content shape, trying JSON,
// then YAML, then java-style properties. Nothing here returns an
// error: content that defeats every parser is wrapped whole under the
// raw_content key so validation can still report on the file.
func Parse(content, path string) Descriptor {
	if strings.HasSuffix(path, ".json") || looksLikeJSON(content) {
		var m Descriptor
		if err := json.Unmarshal([]byte(content), &m); err == nil && m != nil {
			return m
		}
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") || looksLikeYAML(content) {
		var m Descriptor
		if err := yaml.Unmarshal([]byte(content), &m); err == nil && m != nil {
			return m
		}
	}
	if m := parseProperties(content); len(m) > 0 {
		return m
	}
	return Descriptor{"raw_content": content}
}

func looksLikeJSON(content string) bool {
	s := strings.TrimSpace(content)
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// looksLikeYAML checks the first meaningful line for key: value shape.
func looksLikeYAML(content string) bool {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Contains(line, ":") && !strings.HasPrefix(line, "{")
	}
	return false
}

// parseProperties reads key-value lines separated by '=', ':' or
// whitespace, tried in that order. A line with no separator becomes a
// key with an empty value.
func parseProperties(content string) Descriptor {
	result := Descriptor{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		parsed := false
		for _, sep := range []string{"=", ":", " "} {
			k, v, ok := strings.Cut(line, sep)
			if !ok {
				continue
			}
			key := strings.TrimSpace(k)
			value := strings.TrimSpace(v)
			if len(value) >= 2 {
				if (value[0] == '"' && value[len(value)-1] == '"') ||
					(value[0] == '\'' && value[len(value)-1] == '\'') {
					value = value[1 : len(value)-1]
				}
			}
			result[key] = value
			parsed = true
			break
		}
		if !parsed {
			result[line] = ""
		}
	}
	return result
}
