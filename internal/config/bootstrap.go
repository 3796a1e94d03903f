package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
)

//go:embed default_config.yml
var defaultConfig []byte

// DefaultConfigYAML returns the bundled config template.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), defaultConfig...)
}

// DefaultDataDir is <user config dir>/assethunt.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "assethunt"), nil
}

// EnsureUserConfig returns <dataDir>/config.yml, writing the bundled template
// there first if the file does not exist yet.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(userPath, defaultConfig, 0o600); err != nil {
		return "", err
	}
	return userPath, nil
}
