// Package plugins builds the webpack plugin descriptors used by the config
// factory. Each factory falls back to project defaults when given nil options.
package plugins
