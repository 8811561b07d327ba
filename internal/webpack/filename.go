package webpack

import (
	"github.com/eugenenazirov/distribution/internal/options"
)

// CSSFilename is the extracted stylesheet path: cssPath joined with the
// production filename when it applies, cssFilename otherwise. Absent fields
// read as "undefined".
func CSSFilename(o *options.Options) string {
	var out options.Output
	if o != nil && o.Output != nil {
		out = *o.Output
	}

	name := out.CSSFilename
	if options.IsProduction(o) && out.CSSFilenameProduction != nil {
		name = out.CSSFilenameProduction
	}

	return options.Value(out.CSSPath) + "/" + options.Value(name)
}

// JSFilename is the bundle filename, without its path.
func JSFilename(o *options.Options) string {
	var out options.Output
	if o != nil && o.Output != nil {
		out = *o.Output
	}

	if options.IsProduction(o) && out.JSFilenameProduction != nil {
		return *out.JSFilenameProduction
	}
	return options.Value(out.JSFilename)
}
