package vite

import (
	"path/filepath"
	"strings"
)

// ConfigurationError is a fatal, developer-time misconfiguration raised while
// resolving the plugin configuration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// resolveConfig turns user input into the canonical, fully-defaulted
// configuration every other component consumes. Pure and idempotent:
// resolving an already-resolved configuration yields the same configuration.
func resolveConfig(cfg Config) (Config, error) {
	if len(cfg.Input) == 0 {
		return Config{}, &ConfigurationError{Reason: "missing required entry points (input)"}
	}

	if cfg.Name == "" {
		cfg.Name = "backend"
	}

	if cfg.PublicDirectory == "" {
		cfg.PublicDirectory = "public"
	} else {
		cfg.PublicDirectory = strings.Trim(strings.TrimSpace(cfg.PublicDirectory), "/")
		if cfg.PublicDirectory == "" {
			return Config{}, &ConfigurationError{Reason: "publicDirectory must be a subdirectory, e.g. public"}
		}
	}

	if cfg.BuildDirectory == "" {
		cfg.BuildDirectory = "build"
	} else {
		cfg.BuildDirectory = strings.Trim(strings.TrimSpace(cfg.BuildDirectory), "/")
		if cfg.BuildDirectory == "" {
			return Config{}, &ConfigurationError{Reason: "buildDirectory must be a subdirectory, e.g. build"}
		}
	}

	// Derived from the already-defaulted public directory, not the raw input.
	if cfg.HotFile == "" {
		cfg.HotFile = filepath.Join(cfg.PublicDirectory, "hot")
	}

	if cfg.TransformOnServe == nil {
		cfg.TransformOnServe = func(code, _ string) string { return code }
	}

	return cfg, nil
}
