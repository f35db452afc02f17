// SPDX-License-Identifier: EPL-2.0

// Package config loads conversion presets from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audconv/converter"
	"github.com/pelletier/go-toml/v2"
)

// Logging holds the [logging] table.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// File is the whole preset file. Absent keys keep their defaults.
type File struct {
	Convert converter.Config `toml:"convert"`
	Logging Logging          `toml:"logging"`
}

// Default returns the preset used when no file is given.
func Default() File {
	return File{
		Convert: converter.DefaultConfig(),
		Logging: Logging{Level: "info"},
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	expanded, err := expandPath(path)
	if err != nil {
		return cfg, err
	}

	file, err := os.Open(expanded)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("parse config %s: %s", expanded, strict.String())
		}
		return cfg, fmt.Errorf("parse config %s: %w", expanded, err)
	}

	return cfg, nil
}

// Sample renders the defaults as a preset file.
func Sample() ([]byte, error) {
	cfg := Default()

	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}

func expandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
