package webpack

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/distribution/internal/options"
)

func projectOptions() *options.Options {
	return &options.Options{
		Entry: map[string]any{"app": "./src/js/app.js"},
		Output: &options.Output{
			JSPath:                options.String("web/js"),
			JSFilename:            options.String("app.js"),
			JSFilenameProduction:  options.String("app.min.js"),
			CSSPath:               options.String("../css"),
			CSSFilename:           options.String("app.css"),
			CSSFilenameProduction: options.String("app.min.css"),
		},
		Input: &options.Input{
			Base: options.String("src/js"),
			SCSS: options.String("src/scss"),
		},
		Alias: map[string]string{"components": "src/js/components"},
	}
}

func TestFactoryInclude(t *testing.T) {
	t.Parallel()

	f := New(projectOptions(), WithRoot("/project"))
	if want := filepath.Join("/project", "src/js"); f.Include() != want {
		t.Fatalf("expected include %s, got %s", want, f.Include())
	}

	missing := New(&options.Options{}, WithRoot("/project"))
	if want := filepath.Join("/project", "undefined"); missing.Include() != want {
		t.Fatalf("expected include %s, got %s", want, missing.Include())
	}
}

func TestFactoryDefaultsRootToWorkingDirectory(t *testing.T) {
	t.Parallel()

	f := New(projectOptions())
	if !filepath.IsAbs(f.Include()) {
		t.Fatalf("expected absolute include path, got %s", f.Include())
	}
}

func TestFactoryBuildDevelopment(t *testing.T) {
	t.Parallel()

	f := New(projectOptions(), WithRoot("/project"), WithLogger(zaptest.NewLogger(t)))
	cfg := f.Build(nil)

	if diff := cmp.Diff(map[string]any{"app": "./src/js/app.js"}, cfg.Entry); diff != "" {
		t.Fatalf("unexpected entry (-want +got):\n%s", diff)
	}
	if options.Value(cfg.Output.Path) != "web/js" {
		t.Fatalf("unexpected output path %v", cfg.Output.Path)
	}
	if options.Value(cfg.Output.PublicPath) != "web/js" {
		t.Fatalf("expected public path to fall back to jsPath, got %v", cfg.Output.PublicPath)
	}
	if cfg.Output.Filename != "app.js" {
		t.Fatalf("unexpected filename %s", cfg.Output.Filename)
	}
	if cfg.Devtool != DevtoolSourceMap {
		t.Fatalf("expected source maps in development, got %q", cfg.Devtool)
	}
	if len(cfg.Plugins) != 3 || len(cfg.Module.Rules) != 3 {
		t.Fatalf("expected 3 plugins and 3 rules, got %d and %d", len(cfg.Plugins), len(cfg.Module.Rules))
	}

	wantResolve := Resolve{
		Modules:    []string{filepath.Join("/project", "src/js"), "node_modules"},
		Extensions: []string{".js", ".json", ".jsx", ".css", ".scss", ".svg"},
		Alias:      map[string]string{"components": "src/js/components"},
	}
	if diff := cmp.Diff(wantResolve, cfg.Resolve); diff != "" {
		t.Fatalf("unexpected resolve (-want +got):\n%s", diff)
	}
}

func TestFactoryBuildProduction(t *testing.T) {
	t.Parallel()

	fixed := projectOptions()
	fixed.Env = "prod"
	fixed.Output.JSPublicPath = options.String("/js/")

	cfg := New(fixed, WithRoot("/project")).Build(nil)

	if cfg.Output.Filename != "app.min.js" {
		t.Fatalf("unexpected filename %s", cfg.Output.Filename)
	}
	if options.Value(cfg.Output.PublicPath) != "/js/" {
		t.Fatalf("unexpected public path %v", cfg.Output.PublicPath)
	}
	if cfg.Devtool != DevtoolNone {
		t.Fatalf("expected devtool disabled, got %q", cfg.Devtool)
	}
	if got := cfg.Plugins[1].Args[0]; got != "../css/app.min.css" {
		t.Fatalf("unexpected css filename %v", got)
	}
	if len(cfg.Plugins) != 5 {
		t.Fatalf("expected 5 plugins, got %d", len(cfg.Plugins))
	}
}

func TestFactoryBuildMergesOverrides(t *testing.T) {
	t.Parallel()

	f := New(projectOptions(), WithRoot("/project"))

	override := &options.Options{
		Env:      "prod",
		Output:   &options.Output{JSPath: options.String("elsewhere")},
		Manifest: options.String("manifest.json"),
	}
	cfg := f.Build(override)

	if options.Value(cfg.Output.Path) != "web/js" {
		t.Fatalf("expected fixed output to win, got %v", cfg.Output.Path)
	}
	if cfg.Devtool != DevtoolNone || len(cfg.Plugins) != 6 {
		t.Fatalf("expected override env and manifest to apply, got devtool %q and %d plugins", cfg.Devtool, len(cfg.Plugins))
	}
	if override.Output.JSPath == nil || *override.Output.JSPath != "elsewhere" {
		t.Fatalf("expected override to be left untouched")
	}

	fixedEnv := projectOptions()
	fixedEnv.Env = "dev"
	cfg = New(fixedEnv, WithRoot("/project")).Build(&options.Options{Env: "prod"})
	if cfg.Devtool != DevtoolSourceMap {
		t.Fatalf("expected fixed env to win over override")
	}
}

func TestFactoryBuildIsIndependentPerCall(t *testing.T) {
	t.Parallel()

	f := New(projectOptions(), WithRoot("/project"))
	first := f.Build(nil)
	first.Resolve.Extensions[0] = ".ts"
	first.Module.Rules = first.Module.Rules[:1]

	second := f.Build(nil)
	if second.Resolve.Extensions[0] != ".js" || len(second.Module.Rules) != 3 {
		t.Fatalf("expected fresh config per build")
	}
}

func TestFactoryBuildConcurrent(t *testing.T) {
	t.Parallel()

	f := New(projectOptions(), WithRoot("/project"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(prod bool) {
			defer wg.Done()
			var override *options.Options
			if prod {
				override = &options.Options{Env: "prod"}
			}
			_ = f.Build(override)
		}(i%2 == 0)
	}
	wg.Wait()
}

func TestFactoryNilOptions(t *testing.T) {
	t.Parallel()

	cfg := New(nil, WithRoot("/project")).Build(nil)
	if cfg.Output.Filename != "undefined" {
		t.Fatalf("expected undefined filename, got %s", cfg.Output.Filename)
	}
	if cfg.Output.Path != nil || cfg.Output.PublicPath != nil {
		t.Fatalf("expected undefined output paths")
	}
	if len(cfg.Plugins) != 3 {
		t.Fatalf("expected development plugins, got %d", len(cfg.Plugins))
	}
}

func TestConfigMarshalJSON(t *testing.T) {
	t.Parallel()

	fixed := projectOptions()
	fixed.Env = "prod"
	cfg := New(fixed, WithRoot("/project")).Build(nil)

	raw, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(string(raw), `{"entry":`) {
		t.Fatalf("expected entry first, got %s", raw)
	}
	if !strings.HasSuffix(string(raw), `"devtool":false}`) {
		t.Fatalf("expected devtool false last, got %s", raw)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("expected valid JSON: %v", err)
	}
	if plugins, ok := decoded["plugins"].([]any); !ok || len(plugins) != 5 {
		t.Fatalf("unexpected plugins %v", decoded["plugins"])
	}
}
