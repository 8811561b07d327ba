package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for options files with an unknown extension.
var ErrUnsupportedFormat = errors.New("options file must be .yml, .yaml, .json or .jsonc")

// Load reads an options bag from a YAML, JSON or JSON-with-comments file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	o, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Parse decodes an options bag. ext selects the decoder and uses the same
// extensions Load accepts.
func Parse(data []byte, ext string) (*Options, error) {
	var o Options

	switch strings.ToLower(ext) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &o); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return &o, nil
}
