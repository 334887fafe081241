// Package config handles exporter configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Configuration errors.
var (
	ErrMissingSource   = errors.New("no source directory provided")
	ErrInvalidPattern  = errors.New("invalid excluded mesh pattern")
	ErrNegativeSize    = errors.New("min_mesh_size must not be negative")
	ErrNegativeWorkers = errors.New("workers must not be negative")
)

// Config holds all exporter settings.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Extract ExtractConfig `yaml:"extract"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig says where scenes are read from.
type SourceConfig struct {
	Dir       string `yaml:"dir" env:"BABYLON_INCREMENTAL_SRC"`
	Recursive bool   `yaml:"recursive" env:"BABYLON_INCREMENTAL_RECURSIVE"`
}

// ExtractConfig controls which records are moved to sidecar files.
type ExtractConfig struct {
	ExcludedMeshes []string `yaml:"excluded_meshes" env:"BABYLON_INCREMENTAL_EXCLUDED_MESHES" envSeparator:","` // Regexps matched against mesh names
	MinMeshSize    int      `yaml:"min_mesh_size" env:"BABYLON_INCREMENTAL_MIN_MESH_SIZE"`                      // Bytes; 0 extracts everything
	Workers        int      `yaml:"workers" env:"BABYLON_INCREMENTAL_WORKERS"`                                  // Parallel sidecar writes per scene
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"BABYLON_INCREMENTAL_LOG_LEVEL"`
	LogFile string `yaml:"log_file" env:"BABYLON_INCREMENTAL_LOG_FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Dir:       "",
			Recursive: false,
		},
		Extract: ExtractConfig{
			ExcludedMeshes: nil,
			MinMeshSize:    0,
			Workers:        1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the config can drive a run.
func (c *Config) Validate() error {
	if c.Source.Dir == "" {
		return ErrMissingSource
	}
	if c.Extract.MinMeshSize < 0 {
		return ErrNegativeSize
	}
	if c.Extract.Workers < 0 {
		return ErrNegativeWorkers
	}
	_, err := c.ExcludePatterns()
	return err
}

// ExcludePatterns compiles the excluded mesh patterns. Blank entries are
// dropped so a trailing comma does not exclude every mesh.
func (c *Config) ExcludePatterns() ([]*regexp.Regexp, error) {
	var patterns []*regexp.Regexp
	for _, p := range c.Extract.ExcludedMeshes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, p, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// splitList splits a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
