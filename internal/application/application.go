package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/distribution/internal/api"
	"github.com/eugenenazirov/distribution/internal/config"
	"github.com/eugenenazirov/distribution/internal/render"
	"github.com/eugenenazirov/distribution/internal/storage"
	"github.com/eugenenazirov/distribution/internal/watch"
)

// App encapsulates the config service dependencies and HTTP server.
type App struct {
	cfg     config.Config
	storage storage.Storage
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
	watcher *watch.Watcher
}

// New initializes the config service with all dependencies from the provided
// configuration. When an options file is configured it is loaded up front.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()
	if cfg.OptionsFile != "" {
		opts, err := LoadOptions(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load options: %w", err)
		}
		if err := store.SetOptions(opts); err != nil {
			return nil, fmt.Errorf("failed to store options: %w", err)
		}
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(store,
		api.WithRoot(cfg.Root),
		api.WithMinify(cfg.Minify && format == render.FormatJS),
		api.WithFactoryLogger(logger),
	)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	app := &App{
		cfg:     cfg,
		storage: store,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(cfg, router),
	}

	if cfg.Watch {
		w, err := watch.New(cfg.OptionsFile, watch.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to watch options: %w", err)
		}
		app.watcher = w
	}

	return app, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server, and the options watcher when enabled, in
// goroutines and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()

	if a.watcher != nil {
		ctx, cancel := context.WithCancel(context.Background())
		a.server.RegisterOnShutdown(func() {
			cancel()
			_ = a.watcher.Close()
		})
		go func() {
			a.logger.Info("watching options", zap.String("path", a.watcher.Path()))
			_ = a.watcher.Run(ctx, a.reloadOptions)
		}()
	}
	return nil
}

// reloadOptions re-reads the options file into storage. A broken file keeps
// the previous options in place.
func (a *App) reloadOptions() {
	opts, err := LoadOptions(a.cfg)
	if err != nil {
		a.logger.Warn("options reload failed, keeping previous options", zap.Error(err))
		return
	}
	if err := a.storage.SetOptions(opts); err != nil {
		a.logger.Warn("options reload failed", zap.Error(err))
		return
	}
	a.logger.Info("options reloaded", zap.String("path", a.cfg.OptionsFile))
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
