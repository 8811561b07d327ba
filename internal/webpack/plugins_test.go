package webpack

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eugenenazirov/distribution/internal/js"
	"github.com/eugenenazirov/distribution/internal/options"
	"github.com/eugenenazirov/distribution/internal/plugins"
)

func pluginNames(list []js.New) []string {
	names := make([]string, len(list))
	for i, p := range list {
		names[i] = p.Name()
	}
	return names
}

func TestPluginsOrderAndLength(t *testing.T) {
	t.Parallel()

	manifest := options.String("manifest.json")

	tests := []struct {
		name string
		opts *options.Options
		want []string
	}{
		{
			name: "Development",
			opts: &options.Options{},
			want: []string{"WebpackSvgStore", "ExtractTextPlugin", "webpack.LoaderOptionsPlugin"},
		},
		{
			name: "DevelopmentWithManifest",
			opts: &options.Options{Manifest: manifest},
			want: []string{"WebpackSvgStore", "ExtractTextPlugin", "webpack.LoaderOptionsPlugin", "ManifestPlugin"},
		},
		{
			name: "Production",
			opts: &options.Options{Env: "prod"},
			want: []string{"WebpackSvgStore", "ExtractTextPlugin", "webpack.LoaderOptionsPlugin", "webpack.optimize.UglifyJsPlugin", "ModernizrWebpackPlugin"},
		},
		{
			name: "ProductionWithManifest",
			opts: &options.Options{Env: "prod", Manifest: manifest},
			want: []string{"WebpackSvgStore", "ExtractTextPlugin", "webpack.LoaderOptionsPlugin", "ManifestPlugin", "webpack.optimize.UglifyJsPlugin", "ModernizrWebpackPlugin"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pluginNames(Plugins(tc.opts, "/project"))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected plugins (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPluginsUsePerPluginOptions(t *testing.T) {
	t.Parallel()

	svg := map[string]any{"prefix": "icon-"}
	uglify := map[string]any{"sourceMap": true}
	opts := &options.Options{
		Env:      "prod",
		Manifest: options.String("rev-manifest.json"),
		Output:   &options.Output{CSSPath: options.String("web/css"), CSSFilename: options.String("app.css")},
		Plugins:  map[string]map[string]any{"svgStore": svg, "uglifyjs": uglify},
	}

	list := Plugins(opts, "/project")

	if diff := cmp.Diff([]any{svg}, list[0].Args); diff != "" {
		t.Fatalf("unexpected svgStore args (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"web/css/app.css"}, list[1].Args); diff != "" {
		t.Fatalf("unexpected extract args (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(plugins.Manifest("rev-manifest.json"), list[3]); diff != "" {
		t.Fatalf("unexpected manifest plugin (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{uglify}, list[4].Args); diff != "" {
		t.Fatalf("unexpected uglify args (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{plugins.DefaultModernizrOptions()}, list[5].Args); diff != "" {
		t.Fatalf("expected modernizr defaults (-want +got):\n%s", diff)
	}
}

func TestPluginsKeepExplicitNullOptions(t *testing.T) {
	t.Parallel()

	opts := &options.Options{
		Env:     "prod",
		Plugins: map[string]map[string]any{"svgStore": nil, "modernizr": nil},
	}

	list := Plugins(opts, "/project")

	if diff := cmp.Diff([]any{js.Null{}}, list[0].Args); diff != "" {
		t.Fatalf("expected svgStore null options (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{plugins.DefaultUglifyJsOptions()}, list[3].Args); diff != "" {
		t.Fatalf("expected uglify defaults for a missing entry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{js.Null{}}, list[4].Args); diff != "" {
		t.Fatalf("expected modernizr null options (-want +got):\n%s", diff)
	}
}

func TestLoaderOptionsESLint(t *testing.T) {
	t.Parallel()

	root := "/project"

	t.Run("DefaultsToProjectConfigFile", func(t *testing.T) {
		lo := loaderOptions(&options.Options{}, root)
		want := map[string]any{"configFile": filepath.Join(root, ".eslint.yml")}
		if diff := cmp.Diff(want, lo.ESLint); diff != "" {
			t.Fatalf("unexpected eslint options (-want +got):\n%s", diff)
		}
	})

	t.Run("ReadsPluginOptionsWhenSectionPresent", func(t *testing.T) {
		eslint := map[string]any{"configFile": "custom.yml"}
		lo := loaderOptions(&options.Options{
			ESLint:  map[string]any{},
			Plugins: map[string]map[string]any{"eslint": eslint},
		}, root)
		if diff := cmp.Diff(eslint, lo.ESLint); diff != "" {
			t.Fatalf("unexpected eslint options (-want +got):\n%s", diff)
		}
	})

	t.Run("ExplicitNullPluginOptions", func(t *testing.T) {
		lo := loaderOptions(&options.Options{
			ESLint:  map[string]any{},
			Plugins: map[string]map[string]any{"eslint": nil},
		}, root)
		if lo.ESLint != (js.Null{}) {
			t.Fatalf("expected null eslint options, got %v", lo.ESLint)
		}
	})

	t.Run("SectionWithoutPluginOptions", func(t *testing.T) {
		lo := loaderOptions(&options.Options{ESLint: map[string]any{"fix": true}}, root)
		if lo.ESLint != nil {
			t.Fatalf("expected no eslint options, got %v", lo.ESLint)
		}
	})
}

func TestLoaderOptionsPaths(t *testing.T) {
	t.Parallel()

	autoprefixer := map[string]any{"browsers": []any{"last 2 versions"}}
	lo := loaderOptions(&options.Options{
		Input:   &options.Input{SCSS: options.String("src/scss")},
		PostCSS: &options.PostCSS{Autoprefixer: autoprefixer},
	}, "/project")

	if diff := cmp.Diff([]string{filepath.Join("/project", "src/scss")}, lo.SassIncludePaths); diff != "" {
		t.Fatalf("unexpected include paths (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(autoprefixer, lo.Autoprefixer); diff != "" {
		t.Fatalf("unexpected autoprefixer options (-want +got):\n%s", diff)
	}

	missing := loaderOptions(&options.Options{}, "/project")
	if diff := cmp.Diff([]string{filepath.Join("/project", "undefined")}, missing.SassIncludePaths); diff != "" {
		t.Fatalf("unexpected include paths (-want +got):\n%s", diff)
	}
}
