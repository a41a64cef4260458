package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. All fields are
// pointers so absence is distinguishable from a zero value when
// resolving CLI > local > global precedence.
type FileConfig struct {
	// ChangedLinesOnly restricts pre-commit scanning to added lines.
	ChangedLinesOnly *bool `yaml:"changed_lines_only"`
	// Profile selects the entropy threshold profile: strict | lenient.
	Profile *string `yaml:"profile"`
	NoColor *bool   `yaml:"no_color"`
	NoCache *bool   `yaml:"no_cache"`

	Exclusions *ExclusionsConfig `yaml:"exclusions"`
	Thresholds *ThresholdsConfig `yaml:"thresholds"`
}

// ExclusionsConfig extends the built-in exclusion set.
type ExclusionsConfig struct {
	FileExtensions       []string `yaml:"file_extensions"`
	Directories          []string `yaml:"directories"`
	AdditionalExclusions []string `yaml:"additional_exclusions"`
}

// ThresholdsConfig overrides individual entropy settings.
type ThresholdsConfig struct {
	Default           *float64 `yaml:"default"`
	Password          *float64 `yaml:"password"`
	PasswordMinLength *int     `yaml:"password_min_length"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .apigenie.yml/.yaml and apigenie.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".apigenie.yml", ".apigenie.yaml", "apigenie.yml", "apigenie.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "apigenie", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Merge overlays higher-precedence config onto cfg, field by field.
func Merge(base, over FileConfig) FileConfig {
	out := base
	if over.ChangedLinesOnly != nil {
		out.ChangedLinesOnly = over.ChangedLinesOnly
	}
	if over.Profile != nil {
		out.Profile = over.Profile
	}
	if over.NoColor != nil {
		out.NoColor = over.NoColor
	}
	if over.NoCache != nil {
		out.NoCache = over.NoCache
	}
	if over.Exclusions != nil {
		out.Exclusions = over.Exclusions
	}
	if over.Thresholds != nil {
		out.Thresholds = over.Thresholds
	}
	return out
}
