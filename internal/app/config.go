package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DocumentPath string // hcl file or directory

	// CompositionID may be empty when the document has a single composition.
	CompositionID string
	// Frame is nil to evaluate the composition's current frame.
	Frame     *int
	Recursive bool
	// Width and Height override the container size exposed to the top-level
	// composition. Zero keeps the composition's own size.
	Width  float64
	Height float64

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DocumentPath == "" {
		return nil, errors.New("DocumentPath is a required configuration field and cannot be empty")
	}
	if cfg.Frame != nil && *cfg.Frame < 0 {
		return nil, fmt.Errorf("frame must not be negative, got %d", *cfg.Frame)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("container size must not be negative, got %vx%v", cfg.Width, cfg.Height)
	}
	return &cfg, nil
}
