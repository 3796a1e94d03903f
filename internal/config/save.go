package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"assethunt-engine/internal/pipeline"

	"gopkg.in/yaml.v3"
)

// Validate reports every validation error as one ErrConfiguration error.
func Validate(cfg Config) error {
	_, v := NormalizeAndValidate(cfg)
	if v.OK() {
		return nil
	}
	return fmt.Errorf("%w: %w", pipeline.ErrConfiguration,
		errors.New("config validation failed:\n- "+strings.Join(v.Errors, "\n- ")))
}

// SaveAtomic validates cfg and replaces path, keeping the previous file as .bak.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
