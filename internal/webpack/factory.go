package webpack

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eugenenazirov/distribution/internal/options"
)

var resolveExtensions = []string{".js", ".json", ".jsx", ".css", ".scss", ".svg"}

// Factory builds webpack configs from project-fixed options merged with
// per-build overrides. It is immutable once created and safe for concurrent use.
type Factory struct {
	fixed   *options.Options
	root    string
	include string
	logger  *zap.Logger
}

// Option configures a Factory.
type Option func(*Factory)

// WithRoot sets the project root that input paths are resolved against.
// It defaults to the working directory.
func WithRoot(dir string) Option {
	return func(f *Factory) {
		f.root = dir
	}
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// New captures the project-fixed options and resolves the source include path.
func New(fixed *options.Options, opts ...Option) *Factory {
	f := &Factory{
		fixed:  fixed,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.root == "" {
		if wd, err := os.Getwd(); err == nil {
			f.root = wd
		} else {
			f.root = "."
		}
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	f.include = filepath.Join(f.root, basePath(fixed))

	return f
}

// Include is the resolved source directory scripts are transpiled from.
func (f *Factory) Include() string {
	return f.include
}

// Build returns the webpack config for override merged under the fixed
// options. A nil override builds from the fixed options alone.
func (f *Factory) Build(override *options.Options) Config {
	o := options.Merge(f.fixed, override)

	var (
		entry any
		alias map[string]string
		out   options.Output
	)
	if o != nil {
		entry = o.Entry
		alias = o.Alias
		if o.Output != nil {
			out = *o.Output
		}
	}

	publicPath := out.JSPublicPath
	if publicPath == nil {
		publicPath = out.JSPath
	}

	devtool := DevtoolSourceMap
	if options.IsProduction(o) {
		devtool = DevtoolNone
	}

	cfg := Config{
		Entry: entry,
		Output: Output{
			Path:       out.JSPath,
			PublicPath: publicPath,
			Filename:   JSFilename(o),
		},
		Module: Module{
			Rules: Rules(f.include, o),
		},
		Resolve: Resolve{
			Modules:    []string{f.include, "node_modules"},
			Extensions: append([]string(nil), resolveExtensions...),
			Alias:      alias,
		},
		Plugins: Plugins(o, f.root),
		Devtool: devtool,
	}

	f.logger.Debug("assembled webpack config",
		zap.Bool("production", options.IsProduction(o)),
		zap.Bool("override", override != nil),
		zap.Int("rules", len(cfg.Module.Rules)),
		zap.Int("plugins", len(cfg.Plugins)),
	)

	return cfg
}
