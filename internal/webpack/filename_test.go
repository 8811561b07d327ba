package webpack

import (
	"testing"

	"github.com/eugenenazirov/distribution/internal/options"
)

func TestCSSFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *options.Options
		want string
	}{
		{
			name: "ProductionUsesProductionName",
			opts: &options.Options{Env: "prod", Output: &options.Output{
				CSSPath:               options.String("dist/css"),
				CSSFilename:           options.String("app.css"),
				CSSFilenameProduction: options.String("app.min.css"),
			}},
			want: "dist/css/app.min.css",
		},
		{
			name: "ProductionWithoutProductionName",
			opts: &options.Options{Env: "prod", Output: &options.Output{
				CSSPath:     options.String("dist/css"),
				CSSFilename: options.String("app.css"),
			}},
			want: "dist/css/app.css",
		},
		{
			name: "DevelopmentIgnoresProductionName",
			opts: &options.Options{Output: &options.Output{
				CSSPath:               options.String("dist/css"),
				CSSFilename:           options.String("app.css"),
				CSSFilenameProduction: options.String("app.min.css"),
			}},
			want: "dist/css/app.css",
		},
		{
			name: "MissingPathReadsUndefined",
			opts: &options.Options{Output: &options.Output{CSSFilename: options.String("app.css")}},
			want: "undefined/app.css",
		},
		{
			name: "MissingOutput",
			opts: &options.Options{},
			want: "undefined/undefined",
		},
		{
			name: "NilBag",
			opts: nil,
			want: "undefined/undefined",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CSSFilename(tc.opts); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestJSFilename(t *testing.T) {
	t.Parallel()

	output := &options.Output{
		JSPath:               options.String("dist/js"),
		JSFilename:           options.String("app.js"),
		JSFilenameProduction: options.String("app.min.js"),
	}

	tests := []struct {
		name string
		opts *options.Options
		want string
	}{
		{name: "Production", opts: &options.Options{Env: "prod", Output: output}, want: "app.min.js"},
		{name: "Development", opts: &options.Options{Env: "dev", Output: output}, want: "app.js"},
		{name: "NoEnv", opts: &options.Options{Output: output}, want: "app.js"},
		{
			name: "ProductionWithoutProductionName",
			opts: &options.Options{Env: "prod", Output: &options.Output{JSFilename: options.String("app.js")}},
			want: "app.js",
		},
		{name: "MissingFilename", opts: &options.Options{Output: &options.Output{}}, want: "undefined"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := JSFilename(tc.opts); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
