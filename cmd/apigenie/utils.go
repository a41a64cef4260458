package apigenie

import (
	"path/filepath"

	"github.com/apigenie/apigenie/internal/config"
)

// loadConfig resolves configuration with CLI > local > global precedence.
func loadConfig(root string) config.FileConfig {
	abs, _ := filepath.Abs(root)
	var cfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		cfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		cfg = config.Merge(cfg, c)
	}
	if flagConfig != "" {
		if c, err := config.LoadFile(flagConfig); err == nil {
			cfg = config.Merge(cfg, c)
		}
	}
	return cfg
}
