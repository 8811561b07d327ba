package options

// EnvProduction is the env value that switches every derivation to its
// production branch.
const EnvProduction = "prod"

// Undefined is what an absent string option reads as once it is interpolated.
const Undefined = "undefined"

// Options is the options bag handed to the webpack config factory. Every
// section is optional; nil means the caller did not supply it.
type Options struct {
	Env      string                    `yaml:"env,omitempty" json:"env,omitempty"`
	Entry    any                       `yaml:"entry,omitempty" json:"entry,omitempty"`
	Output   *Output                   `yaml:"output,omitempty" json:"output,omitempty"`
	Input    *Input                    `yaml:"input,omitempty" json:"input,omitempty"`
	PostCSS  *PostCSS                  `yaml:"postcss,omitempty" json:"postcss,omitempty"`
	ESLint   map[string]any            `yaml:"eslint,omitempty" json:"eslint,omitempty"`
	Module   *Module                   `yaml:"module,omitempty" json:"module,omitempty"`
	Manifest *string                   `yaml:"manifest,omitempty" json:"manifest,omitempty"`
	Plugins  map[string]map[string]any `yaml:"plugins,omitempty" json:"plugins,omitempty"`
	Alias    map[string]string         `yaml:"alias,omitempty" json:"alias,omitempty"`
}

// Output holds the output paths and filenames for scripts and stylesheets.
type Output struct {
	JSPath                *string `yaml:"jsPath,omitempty" json:"jsPath,omitempty"`
	JSPublicPath          *string `yaml:"jsPublicPath,omitempty" json:"jsPublicPath,omitempty"`
	JSFilename            *string `yaml:"jsFilename,omitempty" json:"jsFilename,omitempty"`
	JSFilenameProduction  *string `yaml:"jsFilenameProduction,omitempty" json:"jsFilenameProduction,omitempty"`
	CSSPath               *string `yaml:"cssPath,omitempty" json:"cssPath,omitempty"`
	CSSPublicPath         *string `yaml:"cssPublicPath,omitempty" json:"cssPublicPath,omitempty"`
	CSSFilename           *string `yaml:"cssFilename,omitempty" json:"cssFilename,omitempty"`
	CSSFilenameProduction *string `yaml:"cssFilenameProduction,omitempty" json:"cssFilenameProduction,omitempty"`
}

// Input locates the sources relative to the project root.
type Input struct {
	Base *string `yaml:"base,omitempty" json:"base,omitempty"`
	SCSS *string `yaml:"scss,omitempty" json:"scss,omitempty"`
}

// PostCSS configures the postcss transform chain.
type PostCSS struct {
	Autoprefixer map[string]any `yaml:"autoprefixer,omitempty" json:"autoprefixer,omitempty"`
}

// Module carries extra rules appended after the built-in ones.
type Module struct {
	Rules RuleSet `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// String returns a pointer to s, for filling optional fields.
func String(s string) *string {
	return &s
}

// Value dereferences s, reading nil as "undefined".
func Value(s *string) string {
	if s == nil {
		return Undefined
	}
	return *s
}

// IsProduction reports whether o selects the production environment.
func IsProduction(o *Options) bool {
	return o != nil && o.Env == EnvProduction
}

// OptionsOf returns the options configured for plugin, or nil when the caller
// supplied none. The returned map is the caller's own, not a copy.
func OptionsOf(plugin string, o *Options) map[string]any {
	opts, _ := Lookup(plugin, o)
	return opts
}

// Lookup is OptionsOf that also reports whether plugin has an entry at all,
// which tells an explicit null apart from an absent entry.
func Lookup(plugin string, o *Options) (map[string]any, bool) {
	if o == nil || o.Plugins == nil {
		return nil, false
	}
	opts, ok := o.Plugins[plugin]
	return opts, ok
}

// WithEnv returns a shallow copy of o with Env replaced. An empty env leaves
// o untouched.
func (o *Options) WithEnv(env string) *Options {
	if env == "" {
		return o
	}
	out := Options{}
	if o != nil {
		out = *o
	}
	out.Env = env
	return &out
}

// Clone returns a shallow copy of o.
func (o *Options) Clone() *Options {
	if o == nil {
		return nil
	}
	out := *o
	return &out
}
