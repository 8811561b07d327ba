package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option adjusts the logger configuration.
type Option func(*zap.Config)

// WithDebug lowers the level to debug, which surfaces per-build factory records.
func WithDebug(enabled bool) Option {
	return func(cfg *zap.Config) {
		if enabled {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
	}
}

// WithConsole switches to the human-readable console encoder.
func WithConsole() Option {
	return func(cfg *zap.Config) {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
}

// New creates a production-ready structured logger configured for JSON output
// on stderr, leaving stdout free for rendered configs.
func New(opts ...Option) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = false

	for _, opt := range opts {
		opt(&cfg)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
