package webpack

import (
	"github.com/eugenenazirov/distribution/internal/js"
	"github.com/eugenenazirov/distribution/internal/options"
	"github.com/eugenenazirov/distribution/internal/plugins"
)

const defaultCSSPublicPath = "/"

var (
	scriptPattern     = js.MustRegexp(`\.jsx?$`)
	dependencyPattern = js.MustRegexp(`(node_modules|bower_components)`)
	jsonPattern       = js.MustRegexp(`\.json$`)
	stylePattern      = js.MustRegexp(`\.(s?css)$`)
)

// conditionKeys are the rule conditions that may hold a regular expression.
// They take a {regexp, flags} mapping; test also takes a "/pattern/flags"
// string, since it is always a pattern and never a path.
var conditionKeys = map[string]bool{"test": true, "include": true, "exclude": true}

// Rules returns the built-in script, JSON and stylesheet rules followed by the
// caller's extra rules from module.rules.
func Rules(include string, o *options.Options) []js.Object {
	rules := []js.Object{
		{
			{Key: "test", Value: scriptPattern},
			{Key: "include", Value: include},
			{Key: "exclude", Value: dependencyPattern},
			{Key: "use", Value: []any{
				js.Object{
					{Key: "loader", Value: "babel-loader"},
					{Key: "options", Value: js.Object{
						{Key: "presets", Value: []any{"react", "es2015", "stage-2"}},
						{Key: "compact", Value: false},
					}},
				},
				js.Object{
					{Key: "loader", Value: "eslint-loader"},
					{Key: "options", Value: js.Object{
						{Key: "enforce", Value: "pre"},
					}},
				},
			}},
		},
		{
			{Key: "test", Value: jsonPattern},
			{Key: "use", Value: "json-loader"},
		},
		{
			{Key: "test", Value: stylePattern},
			{Key: "loader", Value: plugins.ExtractTextLoader(
				cssPublicPath(o),
				"style-loader",
				[]string{"css-loader", "postcss-loader", "sass-loader"},
			)},
		},
	}

	if o != nil && o.Module != nil {
		for _, rule := range o.Module.Rules {
			rules = append(rules, userRule(rule))
		}
	}

	return rules
}

func cssPublicPath(o *options.Options) string {
	if o == nil || o.Output == nil || o.Output.CSSPublicPath == nil {
		return defaultCSSPublicPath
	}
	return *o.Output.CSSPublicPath
}

func userRule(rule options.Rule) js.Object {
	obj := js.ObjectFromMap(rule)
	if obj == nil {
		obj = js.Object{}
	}
	for i, p := range obj {
		if !conditionKeys[p.Key] {
			continue
		}
		if re, ok := conditionRegexp(p.Key, p.Value); ok {
			obj[i].Value = re
		}
	}
	return obj
}

func conditionRegexp(key string, v any) (js.Regexp, bool) {
	switch v := v.(type) {
	case string:
		if key == "test" {
			return js.ParseRegexp(v)
		}
	case js.Object:
		return regexpMarker(v)
	}
	return js.Regexp{}, false
}

// regexpMarker reads a {regexp: "pattern", flags: "gi"} mapping.
func regexpMarker(o js.Object) (js.Regexp, bool) {
	var re js.Regexp
	for _, p := range o {
		s, ok := p.Value.(string)
		if !ok {
			return js.Regexp{}, false
		}
		switch p.Key {
		case "regexp":
			re.Pattern = s
		case "flags":
			re.Flags = s
		default:
			return js.Regexp{}, false
		}
	}
	return re, re.Pattern != ""
}
