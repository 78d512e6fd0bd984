package vite

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/mrrizkin/vite-plugin-backend/pkg"
)

// New builds a plugin from a full configuration object.
func New(cfg Config) (*Plugin, error) {
	resolved, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("plugin", resolved.Name).Logger()
	return &Plugin{
		Logger:    logger,
		Config:    resolved,
		lifecycle: newLifecycle(resolved.HotFile, logger),
		manifests: pkg.NewManager(),
	}, nil
}

// NewWithInput builds a plugin from one or more entry-point paths, with every
// other setting defaulted.
func NewWithInput(inputs ...string) (*Plugin, error) {
	return New(Config{Input: inputs})
}

// Lifecycle exposes the dev-server lifecycle for observation; the URL
// accessor fails until the listening transition has happened.
func (p *Plugin) Lifecycle() *Lifecycle {
	return p.lifecycle
}
