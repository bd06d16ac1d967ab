// Package config loads the optional YAML configuration for the adapter.
// Everything has a working default; the file only overrides endpoint,
// item defaults, and logging.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the complete adapter configuration.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GitHubConfig holds upstream API configuration. The bearer token itself
// always comes from the environment, never from the file.
type GitHubConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// DefaultsConfig holds per-tool defaults.
type DefaultsConfig struct {
	// BodyField is the text field written by create_project_item when the
	// caller does not name one.
	BodyField string `yaml:"body_field"`
	// LabelColor is the hex color (without '#') for labels created on demand.
	LabelColor string `yaml:"label_color"`
}

// LoggingConfig holds diagnostic log configuration. The log is a local
// append-only side channel; stdout belongs to the MCP transport.
type LoggingConfig struct {
	File   string `yaml:"file"`
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Endpoint: "https://api.github.com/graphql",
		},
		Defaults: DefaultsConfig{
			BodyField:  "Description",
			LabelColor: "ededed",
		},
		Logging: LoggingConfig{
			File:   "ghpmcp.log",
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a configuration file from the given path, expanding
// ${VAR_NAME} environment references in the raw YAML, and fills unset
// fields from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyDefaults restores defaults for fields the file set to empty.
func (c *Config) applyDefaults() {
	def := Default()
	if c.GitHub.Endpoint == "" {
		c.GitHub.Endpoint = def.GitHub.Endpoint
	}
	if c.Defaults.BodyField == "" {
		c.Defaults.BodyField = def.Defaults.BodyField
	}
	if c.Defaults.LabelColor == "" {
		c.Defaults.LabelColor = def.Defaults.LabelColor
	}
	if c.Logging.File == "" {
		c.Logging.File = def.Logging.File
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format %q is not one of json, text", c.Logging.Format)
	}

	return nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
