package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/eugenenazirov/distribution/internal/js"
	"github.com/eugenenazirov/distribution/internal/webpack"
)

// Format selects how a config is written out.
type Format string

const (
	FormatJS   Format = "js"
	FormatJSON Format = "json"
)

var (
	// ErrUnknownFormat is returned for formats other than js and json.
	ErrUnknownFormat = errors.New("format must be js or json")
	// ErrInvalidSource is returned when the emitted module does not parse.
	ErrInvalidSource = errors.New("rendered config is not valid javascript")
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJS, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Render writes cfg in the given format. minify only applies to js.
func Render(cfg webpack.Config, format Format, minify bool) ([]byte, error) {
	switch format {
	case FormatJS:
		return JS(cfg, minify)
	case FormatJSON:
		return JSON(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// JS emits cfg as a CommonJS webpack.config.js module. The source is parsed
// with esbuild before it is returned, and minified by it when asked.
func JS(cfg webpack.Config, minify bool) ([]byte, error) {
	src, err := js.Module(cfg)
	if err != nil {
		return nil, fmt.Errorf("format config: %w", err)
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:           api.LoaderJS,
		Sourcefile:       "webpack.config.js",
		MinifyWhitespace: minify,
		MinifySyntax:     minify,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			if m.Location != nil {
				msgs = append(msgs, fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column, m.Text))
			} else {
				msgs = append(msgs, m.Text)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidSource, strings.Join(msgs, "; "))
	}

	if minify {
		return result.Code, nil
	}
	return src, nil
}

// JSON emits cfg as indented JSON. Values that only exist in javascript, such
// as regular expressions and plugin constructors, appear as descriptive text.
func JSON(cfg webpack.Config) ([]byte, error) {
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return append(out, '\n'), nil
}
