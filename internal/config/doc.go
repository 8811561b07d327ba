// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It covers where the webpack options live,
// how the rendered config is written and how the config service listens.
package config
