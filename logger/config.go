package logger

import "fmt"

// Config contains logging configuration.
type Config struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
	// Format is "json" or "console".
	Format string `yaml:"format" mapstructure:"format"`
	// Output is "stdout" or "stderr".
	Output string `yaml:"output" mapstructure:"output"`
	// NoColor disables ANSI colors in console output.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
	// Timestamp adds a timestamp field to every event.
	Timestamp bool `yaml:"timestamp" mapstructure:"timestamp"`
}

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	switch c.Level {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("logger: level must be one of [trace debug info warn error fatal] (got: %s)", c.Level)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger: format must be json or console (got: %s)", c.Format)
	}
	return nil
}
