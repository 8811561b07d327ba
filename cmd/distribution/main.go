package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/distribution/internal/application"
	"github.com/eugenenazirov/distribution/internal/config"
	"github.com/eugenenazirov/distribution/internal/logging"
)

var signalNotify = signal.Notify

type cli struct {
	app    *kingpin.Application
	render *kingpin.CmdClause
	serve  *kingpin.CmdClause

	configFile     *string
	optionsFile    *string
	root           *string
	env            *string
	format         *string
	minify         *bool
	minifySet      bool
	watch          *bool
	watchSet       bool
	debug          *bool
	logFormat      *string
	output         *string
	port           *string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func newCLI() *cli {
	c := &cli{}
	c.app = kingpin.New("distribution", "Webpack config factory - renders webpack.config.js from a project options file")

	c.configFile = c.app.Flag("config", "Path to YAML configuration file").String()
	c.optionsFile = c.app.Flag("options", "Path to the webpack options file (.yml, .yaml, .json, .jsonc)").String()
	c.root = c.app.Flag("root", "Project root used to resolve input paths").String()
	c.env = c.app.Flag("env", "Environment override, prod selects production settings").String()
	c.format = c.app.Flag("format", "Output format: js or json").Enum("js", "json")
	c.minify = c.app.Flag("minify", "Minify the rendered webpack.config.js").IsSetByUser(&c.minifySet).Bool()
	c.watch = c.app.Flag("watch", "Re-render or reload when the options file changes").Short('w').IsSetByUser(&c.watchSet).Bool()
	c.debug = c.app.Flag("debug", "Enable debug logging").Bool()
	c.logFormat = c.app.Flag("log-format", "Log encoding on stderr: json or console").Default("json").Enum("json", "console")

	c.render = c.app.Command("render", "Render the webpack config").Default()
	c.output = c.render.Flag("output", "Write the config to this path instead of stdout").String()

	c.serve = c.app.Command("serve", "Serve the config factory over HTTP")
	c.port = c.serve.Flag("port", "HTTP port exposed by the service").String()
	c.rateLimitRPS = c.serve.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	c.rateLimitBurst = c.serve.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	return c
}

// parse resolves the selected command and the CLI overrides it carries.
func (c *cli) parse(args []string) (string, *config.CLIOverrides, error) {
	command, err := c.app.Parse(args)
	if err != nil {
		return "", nil, err
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *c.configFile,
	}

	if *c.optionsFile != "" {
		overrides.OptionsFile = c.optionsFile
	}
	if *c.root != "" {
		overrides.Root = c.root
	}
	if *c.env != "" {
		overrides.Env = c.env
	}
	if *c.format != "" {
		overrides.Format = c.format
	}
	if *c.output != "" {
		overrides.Output = c.output
	}
	if *c.port != "" {
		overrides.Port = c.port
	}
	if c.minifySet {
		overrides.Minify = c.minify
	}
	if c.watchSet {
		overrides.Watch = c.watch
	}
	if command == c.serve.FullCommand() {
		if *c.rateLimitRPS >= 0 {
			overrides.RateLimitRPS = c.rateLimitRPS
		}
		if *c.rateLimitBurst >= 0 {
			overrides.RateLimitBurst = c.rateLimitBurst
		}
	}

	return command, overrides, nil
}

// loggerOptions maps the logging flags onto logger options.
func (c *cli) loggerOptions() []logging.Option {
	opts := []logging.Option{logging.WithDebug(*c.debug)}
	if *c.logFormat == "console" {
		opts = append(opts, logging.WithConsole())
	}
	return opts
}

func main() {
	c := newCLI()
	command, overrides, err := c.parse(os.Args[1:])
	c.app.FatalIfError(err, "")

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(c.loggerOptions()...)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case c.serve.FullCommand():
		serve(cfg, logger)
	default:
		if err := render(cfg, os.Stdout, logger); err != nil {
			logger.Fatal("failed to render config", zap.Error(err))
		}
	}
}

func render(cfg config.Config, stdout io.Writer, logger *zap.Logger) error {
	if !cfg.Watch {
		return application.WriteConfig(cfg, stdout, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-quit:
			logger.Info("stopping watch")
			cancel()
		case <-ctx.Done():
		}
	}()

	return application.WatchConfig(ctx, cfg, stdout, logger)
}

func serve(cfg config.Config, logger *zap.Logger) {
	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
