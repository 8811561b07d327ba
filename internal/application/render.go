package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eugenenazirov/distribution/internal/config"
	"github.com/eugenenazirov/distribution/internal/options"
	"github.com/eugenenazirov/distribution/internal/render"
	"github.com/eugenenazirov/distribution/internal/watch"
	"github.com/eugenenazirov/distribution/internal/webpack"
)

// ErrNoOptionsFile is returned when rendering without an options file.
var ErrNoOptionsFile = errors.New("an options file is required")

// LoadOptions reads the options file named by cfg. A configured env replaces
// the one in the file.
func LoadOptions(cfg config.Config) (*options.Options, error) {
	if cfg.OptionsFile == "" {
		return nil, ErrNoOptionsFile
	}

	opts, err := options.Load(cfg.OptionsFile)
	if err != nil {
		return nil, err
	}
	return opts.WithEnv(cfg.Env), nil
}

// RenderConfig builds the webpack config described by cfg and renders it.
func RenderConfig(cfg config.Config, logger *zap.Logger) ([]byte, error) {
	opts, err := LoadOptions(cfg)
	if err != nil {
		return nil, err
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	factory := webpack.New(opts, webpack.WithRoot(cfg.Root), webpack.WithLogger(logger))
	return render.Render(factory.Build(nil), format, cfg.Minify)
}

// WriteConfig renders the config to cfg.Output, or to stdout when no output
// path is configured.
func WriteConfig(cfg config.Config, stdout io.Writer, logger *zap.Logger) error {
	out, err := RenderConfig(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		_, err := stdout.Write(out)
		return err
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("webpack config written",
		zap.String("path", cfg.Output),
		zap.String("format", cfg.Format),
		zap.Int("bytes", len(out)),
	)
	return nil
}

// WatchConfig writes the config once and again after every change to the
// options file, until ctx is done. Render failures during the watch are
// logged and the previous output is left in place.
func WatchConfig(ctx context.Context, cfg config.Config, stdout io.Writer, logger *zap.Logger) error {
	if err := WriteConfig(cfg, stdout, logger); err != nil {
		return err
	}

	w, err := watch.New(cfg.OptionsFile, watch.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching options", zap.String("path", w.Path()))
	err = w.Run(ctx, func() {
		if err := WriteConfig(cfg, stdout, logger); err != nil {
			logger.Warn("re-render failed", zap.Error(err))
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
