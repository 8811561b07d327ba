package webpack

import (
	"path/filepath"

	"github.com/eugenenazirov/distribution/internal/js"
	"github.com/eugenenazirov/distribution/internal/options"
	"github.com/eugenenazirov/distribution/internal/plugins"
)

// eslintConfigFile is the linter config used when the caller supplies none,
// relative to the project root.
const eslintConfigFile = ".eslint.yml"

// Plugins returns the plugins to activate, in order: sprite sheet, stylesheet
// extraction and loader options always; the manifest when one is configured;
// minification and feature detection in production only.
func Plugins(o *options.Options, root string) []js.New {
	list := []js.New{
		configured("svgStore", o, plugins.SvgStore),
		plugins.ExtractText(CSSFilename(o)),
		plugins.LoaderOptionsPlugin(loaderOptions(o, root)),
	}

	if o != nil && o.Manifest != nil {
		list = append(list, plugins.Manifest(*o.Manifest))
	}

	if options.IsProduction(o) {
		list = append(list,
			configured("uglifyjs", o, plugins.UglifyJs),
			configured("modernizr", o, plugins.Modernizr),
		)
	}

	return list
}

// configured builds a plugin from its entry under plugins. A missing entry
// selects the plugin's defaults; an explicit null is passed on as null.
func configured(name string, o *options.Options, build func(map[string]any) js.New) js.New {
	opts, set := options.Lookup(name, o)
	plugin := build(opts)
	if set && opts == nil {
		plugin.Args = []any{js.Null{}}
	}
	return plugin
}

func loaderOptions(o *options.Options, root string) plugins.LoaderOptions {
	lo := plugins.LoaderOptions{
		SassIncludePaths: []string{filepath.Join(root, scssPath(o))},
	}

	if o != nil && o.PostCSS != nil {
		lo.Autoprefixer = o.PostCSS.Autoprefixer
	}

	// A bag without an eslint section gets the project linter config; one
	// with it reads the settings from plugins.eslint.
	if o == nil || o.ESLint == nil {
		lo.ESLint = map[string]any{"configFile": filepath.Join(root, eslintConfigFile)}
	} else if opts, set := options.Lookup("eslint", o); opts != nil {
		lo.ESLint = opts
	} else if set {
		lo.ESLint = js.Null{}
	}

	return lo
}

func scssPath(o *options.Options) string {
	if o == nil || o.Input == nil {
		return options.Undefined
	}
	return options.Value(o.Input.SCSS)
}

func basePath(o *options.Options) string {
	if o == nil || o.Input == nil {
		return options.Undefined
	}
	return options.Value(o.Input.Base)
}
