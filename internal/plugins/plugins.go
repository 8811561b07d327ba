package plugins

import (
	"github.com/eugenenazirov/distribution/internal/js"
)

var (
	webpack           = js.Require("webpack", "webpack")
	extractTextPlugin = js.Require("ExtractTextPlugin", "extract-text-webpack-plugin")
	manifestPlugin    = js.Require("ManifestPlugin", "webpack-manifest-plugin")
	svgStorePlugin    = js.Require("WebpackSvgStore", "webpack-svgstore-plugin")
	modernizrPlugin   = js.Require("ModernizrWebpackPlugin", "modernizr-webpack-plugin")
	autoprefixer      = js.Require("autoprefixer", "autoprefixer")
	precss            = js.Require("precss", "precss")
)

// DefaultSvgStoreOptions returns the sprite sheet defaults: no id prefix and
// an svgo pass that drops titles and useless strokes and rounds numbers.
func DefaultSvgStoreOptions() map[string]any {
	return map[string]any{
		"prefix": "",
		"svgoOptions": map[string]any{
			"plugins": []any{
				map[string]any{"removeTitle": true},
				map[string]any{"removeUselessStrokeAndFill": true},
				map[string]any{"cleanupNumericValues": map[string]any{"floatPrecision": 2}},
			},
		},
	}
}

// DefaultUglifyJsOptions returns the minifier defaults.
func DefaultUglifyJsOptions() map[string]any {
	return map[string]any{
		"compress": map[string]any{
			"warnings": false,
		},
	}
}

// DefaultModernizrOptions returns the feature detection defaults.
func DefaultModernizrOptions() map[string]any {
	return map[string]any{
		"filename":          "modernizr",
		"htmlWebpackPlugin": false,
		"minify":            true,
		"options":           []any{"setClasses"},
		"feature-detects":   []any{"svg"},
	}
}

// SvgStore builds the SVG sprite sheet plugin. nil options select the defaults.
func SvgStore(options map[string]any) js.New {
	if options == nil {
		options = DefaultSvgStoreOptions()
	}
	return js.New{Ctor: svgStorePlugin, Args: []any{options}}
}

// UglifyJs builds the minification plugin. nil options select the defaults.
func UglifyJs(options map[string]any) js.New {
	if options == nil {
		options = DefaultUglifyJsOptions()
	}
	return js.New{Ctor: webpack, Member: "optimize.UglifyJsPlugin", Args: []any{options}}
}

// Modernizr builds the browser feature detection plugin. nil options select
// the defaults.
func Modernizr(options map[string]any) js.New {
	if options == nil {
		options = DefaultModernizrOptions()
	}
	return js.New{Ctor: modernizrPlugin, Args: []any{options}}
}

// ExtractText builds the stylesheet extraction plugin writing to filename.
func ExtractText(filename string) js.New {
	return js.New{Ctor: extractTextPlugin, Args: []any{filename}}
}

// ExtractTextLoader builds the loader chain that routes stylesheets through
// the extraction plugin.
func ExtractTextLoader(publicPath string, fallback string, loaders []string) js.Call {
	chain := make([]any, len(loaders))
	for i, l := range loaders {
		chain[i] = l
	}
	return js.Call{Fn: extractTextPlugin, Member: "extract", Args: []any{js.Object{
		{Key: "publicPath", Value: publicPath},
		{Key: "fallbackLoader", Value: fallback},
		{Key: "loader", Value: chain},
	}}}
}

// Manifest builds the asset manifest plugin writing to fileName.
func Manifest(fileName string) js.New {
	return js.New{Ctor: manifestPlugin, Args: []any{js.Object{{Key: "fileName", Value: fileName}}}}
}

// LoaderOptions configures the loaders that read their settings from the
// shared loader context.
type LoaderOptions struct {
	// Autoprefixer is passed to autoprefixer(); nil calls it without options.
	Autoprefixer map[string]any
	// SassIncludePaths are the directories sass-loader resolves imports from.
	SassIncludePaths []string
	// ESLint is handed to eslint-loader; nil leaves it undefined.
	ESLint any
}

// LoaderOptionsPlugin builds webpack.LoaderOptionsPlugin carrying the postcss
// chain, the sass include paths and the eslint settings.
func LoaderOptionsPlugin(o LoaderOptions) js.New {
	prefixer := js.Call{Fn: autoprefixer}
	if o.Autoprefixer != nil {
		prefixer.Args = []any{o.Autoprefixer}
	}

	includePaths := make([]any, len(o.SassIncludePaths))
	for i, p := range o.SassIncludePaths {
		includePaths[i] = p
	}

	return js.New{Ctor: webpack, Member: "LoaderOptionsPlugin", Args: []any{js.Object{
		{Key: "options", Value: js.Object{
			{Key: "postcss", Value: []any{prefixer, precss}},
			{Key: "sassLoader", Value: js.Object{{Key: "includePaths", Value: includePaths}}},
			{Key: "eslint", Value: o.ESLint},
		}},
	}}}
}
