package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the optional YAML settings file. Command-line flags take
// precedence over every value set here.
type Settings struct {
	Version int `yaml:"version"`
	Log     struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Render struct {
		Recursive *bool `yaml:"recursive"`
		Container struct {
			Width  float64 `yaml:"width"`
			Height float64 `yaml:"height"`
		} `yaml:"container"`
	} `yaml:"render"`
}

// LogLevel returns the configured log level, defaulting to "info" if not set.
func (s *Settings) LogLevel() string {
	if s.Log.Level == "" {
		return "info"
	}
	return s.Log.Level
}

// LogFormat returns the configured log format, defaulting to "json" if not set.
func (s *Settings) LogFormat() string {
	if s.Log.Format == "" {
		return "json"
	}
	return s.Log.Format
}

// Recursive returns the configured recursion mode, defaulting to false.
func (s *Settings) Recursive() bool {
	return s.Render.Recursive != nil && *s.Render.Recursive
}

func LoadSettings(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if s.Version != 1 {
		return nil, fmt.Errorf("unsupported settings version: %d", s.Version)
	}

	return &s, nil
}
