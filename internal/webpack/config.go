package webpack

import (
	"encoding/json"

	"github.com/eugenenazirov/distribution/internal/js"
)

// Devtool selects webpack's source map style. DevtoolNone disables it.
type Devtool string

const (
	DevtoolNone      Devtool = ""
	DevtoolSourceMap Devtool = "source-map"
)

// JSValue renders DevtoolNone as false.
func (d Devtool) JSValue() any {
	if d == DevtoolNone {
		return false
	}
	return string(d)
}

// Config is the configuration record handed to webpack.
type Config struct {
	Entry   any
	Output  Output
	Module  Module
	Resolve Resolve
	Plugins []js.New
	Devtool Devtool
}

// Output is webpack's output section. Nil paths are left undefined.
type Output struct {
	Path       *string
	PublicPath *string
	Filename   string
}

// Module holds the ordered transform rules.
type Module struct {
	Rules []js.Object
}

// Resolve is webpack's module resolution section.
type Resolve struct {
	Modules    []string
	Extensions []string
	Alias      map[string]string
}

// JSValue lays the config out with webpack's key names, in a stable order.
func (c Config) JSValue() any {
	var alias any
	if c.Resolve.Alias != nil {
		alias = c.Resolve.Alias
	}

	return js.Object{
		{Key: "entry", Value: c.Entry},
		{Key: "output", Value: js.Object{
			{Key: "path", Value: c.Output.Path},
			{Key: "publicPath", Value: c.Output.PublicPath},
			{Key: "filename", Value: c.Output.Filename},
		}},
		{Key: "module", Value: js.Object{
			{Key: "rules", Value: c.Module.Rules},
		}},
		{Key: "resolve", Value: js.Object{
			{Key: "modules", Value: c.Resolve.Modules},
			{Key: "extensions", Value: c.Resolve.Extensions},
			{Key: "alias", Value: alias},
		}},
		{Key: "plugins", Value: c.Plugins},
		{Key: "devtool", Value: c.Devtool},
	}
}

func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.JSValue())
}
