// Package config loads duffydiff settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted for the config path.
const EnvVar = "DUFFYDIFF_CONFIG"

// Config is the full application configuration.
type Config struct {
	Compare CompareConfig `yaml:"compare"`
	History HistoryConfig `yaml:"history"`
	UI      UIConfig      `yaml:"ui"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

// CompareConfig controls when sides are realigned.
type CompareConfig struct {
	Auto       bool `yaml:"auto"`
	DebounceMS int  `yaml:"debounce_ms" validate:"min=10,max=10000"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	Limit int `yaml:"limit" validate:"min=1,max=10000"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	SyntaxHighlight bool   `yaml:"syntax_highlight"`
	Style           string `yaml:"style" validate:"required,chromastyle"`
}

// ExportConfig holds report defaults.
type ExportConfig struct {
	Format    string `yaml:"format" validate:"required,reportformat"`
	Directory string `yaml:"directory" validate:"omitempty,existingdir"`
}

// LogConfig defines configuration for logging. An empty File disables it.
type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level" validate:"omitempty,loglevel"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Compare: CompareConfig{Auto: true, DebounceMS: 500},
		History: HistoryConfig{Limit: 50},
		UI:      UIConfig{SyntaxHighlight: true, Style: "monokai"},
		Export:  ExportConfig{Format: "markdown"},
		Log:     LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3},
	}
}

// Path determines the configuration file path.
// Priority:
// 1. the -config flag
// 2. the DUFFYDIFF_CONFIG environment variable
// 3. duffydiff/config.yaml under os.UserConfigDir
// An explicitly named file is returned even if it does not exist, so that
// Load can report it. The default location is returned only if present.
func Path(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "duffydiff", "config.yaml")
	if fileExists(p) {
		return p
	}
	return ""
}

// Load reads and validates the file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
