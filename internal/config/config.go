package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultFormat         = "js"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	OptionsFile          string        `yaml:"options_file"`
	Root                 string        `yaml:"root"`
	Env                  string        `yaml:"env"`
	Output               string        `yaml:"output"`
	Format               string        `yaml:"format"`
	Minify               bool          `yaml:"minify"`
	Watch                bool          `yaml:"watch"`
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    time.Duration `yaml:"read_header_timeout"`
	WriteTimeout         time.Duration `yaml:"write_timeout"`
	IdleTimeout          time.Duration `yaml:"idle_timeout"`
	EnableRequestLogging bool          `yaml:"enable_request_logging"`
	RateLimitRPS         float64       `yaml:"-"`
	RateLimitBurst       int           `yaml:"-"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	OptionsFile          string        `yaml:"options_file"`
	Root                 string        `yaml:"root"`
	Env                  string        `yaml:"env"`
	Output               string        `yaml:"output"`
	Format               string        `yaml:"format"`
	Minify               *bool         `yaml:"minify"`
	Watch                *bool         `yaml:"watch"`
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	OptionsFile    *string
	Root           *string
	Env            *string
	Output         *string
	Format         *string
	Minify         *bool
	Watch          *bool
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables (lowest precedence above defaults)
	applyEnvConfig(&cfg)

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Format:               defaultFormat,
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	setString(&cfg.OptionsFile, yamlCfg.OptionsFile)
	setString(&cfg.Root, yamlCfg.Root)
	setString(&cfg.Env, yamlCfg.Env)
	setString(&cfg.Output, yamlCfg.Output)
	setString(&cfg.Format, yamlCfg.Format)
	setString(&cfg.Port, yamlCfg.Port)

	if yamlCfg.Minify != nil {
		cfg.Minify = *yamlCfg.Minify
	}
	if yamlCfg.Watch != nil {
		cfg.Watch = *yamlCfg.Watch
	}
	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	setDuration(&cfg.ShutdownGracePeriod, yamlCfg.ShutdownGracePeriod)
	setDuration(&cfg.ReadHeaderTimeout, yamlCfg.ReadHeaderTimeout)
	setDuration(&cfg.WriteTimeout, yamlCfg.WriteTimeout)
	setDuration(&cfg.IdleTimeout, yamlCfg.IdleTimeout)

	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	setString(&cfg.OptionsFile, strings.TrimSpace(os.Getenv("WEBPACK_OPTIONS")))
	setString(&cfg.Root, strings.TrimSpace(os.Getenv("WEBPACK_ROOT")))
	setString(&cfg.Env, strings.TrimSpace(os.Getenv("WEBPACK_ENV")))
	setString(&cfg.Output, strings.TrimSpace(os.Getenv("WEBPACK_OUTPUT")))
	setString(&cfg.Format, strings.TrimSpace(os.Getenv("WEBPACK_FORMAT")))
	setString(&cfg.Port, strings.TrimSpace(os.Getenv("PORT")))

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.OptionsFile != nil {
		setString(&cfg.OptionsFile, *overrides.OptionsFile)
	}
	if overrides.Root != nil {
		setString(&cfg.Root, *overrides.Root)
	}
	if overrides.Env != nil {
		setString(&cfg.Env, *overrides.Env)
	}
	if overrides.Output != nil {
		setString(&cfg.Output, *overrides.Output)
	}
	if overrides.Format != nil {
		setString(&cfg.Format, *overrides.Format)
	}
	if overrides.Port != nil {
		setString(&cfg.Port, *overrides.Port)
	}

	if overrides.Minify != nil {
		cfg.Minify = *overrides.Minify
	}
	if overrides.Watch != nil {
		cfg.Watch = *overrides.Watch
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	switch strings.ToLower(cfg.Format) {
	case "js", "json":
	default:
		return fmt.Errorf("format must be js or json, got %q", cfg.Format)
	}
	if cfg.Watch && cfg.OptionsFile == "" {
		return fmt.Errorf("watch requires an options file")
	}
	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	}
}
