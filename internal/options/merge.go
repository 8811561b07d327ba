package options

// Merge combines run-time overrides with the project-fixed options. It is a
// shallow, top-level merge in which every section set on fixed wins over the
// same section on override. Neither argument is modified.
//
// A nil override yields fixed itself.
func Merge(fixed, override *Options) *Options {
	if override == nil {
		return fixed
	}

	out := *override
	if fixed == nil {
		return &out
	}

	if fixed.Env != "" {
		out.Env = fixed.Env
	}
	if fixed.Entry != nil {
		out.Entry = fixed.Entry
	}
	if fixed.Output != nil {
		out.Output = fixed.Output
	}
	if fixed.Input != nil {
		out.Input = fixed.Input
	}
	if fixed.PostCSS != nil {
		out.PostCSS = fixed.PostCSS
	}
	if fixed.ESLint != nil {
		out.ESLint = fixed.ESLint
	}
	if fixed.Module != nil {
		out.Module = fixed.Module
	}
	if fixed.Manifest != nil {
		out.Manifest = fixed.Manifest
	}
	if fixed.Plugins != nil {
		out.Plugins = fixed.Plugins
	}
	if fixed.Alias != nil {
		out.Alias = fixed.Alias
	}

	return &out
}
