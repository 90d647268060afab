// Package config loads and validates application configuration from
// flags, environment variables, and YAML config files.
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	UI       UIConfig       `mapstructure:"ui" yaml:"ui"`
	Dispatch DispatchConfig `mapstructure:"dispatch" yaml:"dispatch"`
	Tools    ToolsConfig    `mapstructure:"tools" yaml:"tools"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// UIConfig configures the interactive surface.
type UIConfig struct {
	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

// DispatchConfig configures dispatch execution.
type DispatchConfig struct {
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
}

// ToolsConfig holds the diagnostic binaries. Bare names are resolved on
// PATH; absolute paths are used as-is.
type ToolsConfig struct {
	Jstack string `mapstructure:"jstack" yaml:"jstack"`
	Jmap   string `mapstructure:"jmap" yaml:"jmap"`
	Pstack string `mapstructure:"pstack" yaml:"pstack"`
}

// DispatchTimeout returns the parsed per-dispatch timeout, falling back
// to the default when unset or unparseable. Validation reports the
// unparseable case separately; callers always get a usable bound.
func (c *Config) DispatchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Dispatch.Timeout)
	if err != nil || d <= 0 {
		return DefaultDispatchTimeout
	}
	return d
}

// YAML renders the effective configuration in config-file form.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
