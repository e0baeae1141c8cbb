package commands

import (
	"fmt"
	"path/filepath"

	"github.com/finprofile-dev/finprofile/internal/config"
)

// loadConfig reads and validates the project file. Relative paths inside it
// are resolved against the file's directory.
func loadConfig(path string) (*config.Config, string, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, filepath.Dir(path), nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
