package raxlog

import (
	"io"
	"log/slog"
)

// discardLogger is the default diagnostics sink.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option configures an Extractor using the functional options pattern.
type Option func(*config)

// config holds internal configuration for an Extractor.
type config struct {
	logger *slog.Logger
}

// defaultConfig returns a config with sensible defaults.
func defaultConfig() *config {
	return &config{logger: discardLogger}
}

// applyOptions applies functional options to a config.
func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithLogger sets a logger for non-fatal diagnostics, such as the
// warning emitted when a log lacks the starting log-likelihood.
// If logger is nil, diagnostics are discarded (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
