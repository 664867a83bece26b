package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SnapshotPath string // hcl files
	OutPath      string // "" or "-" means the app's output writer

	LogFormat string
	LogLevel  string
	ServePort int
	MaxDepth  int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SnapshotPath is a required configuration field and cannot be empty")
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("MaxDepth must be non-negative, got %d", cfg.MaxDepth)
	}

	return &cfg, nil
}
