package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Options controls how configuration is loaded.
type Options struct {
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix string
	// EnvFile is an optional .env file loaded before reading the environment.
	EnvFile string
}

// Option is a functional option for Load.
type Option func(*Options)

// WithEnvPrefix sets the prefix for environment variable overrides.
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) { o.EnvPrefix = prefix }
}

// WithEnvFile loads the given .env file before reading the environment.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// Load reads the YAML file at path into cfg, applying environment overrides.
// An empty path skips file loading and reads the environment only.
func Load(path string, cfg any, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	if o.EnvFile != "" {
		if _, err := os.Stat(o.EnvFile); err == nil {
			if err := godotenv.Load(o.EnvFile); err != nil {
				return fmt.Errorf("config: load env file %s: %w", o.EnvFile, err)
			}
		}
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.AutomaticEnv()
	if o.EnvPrefix != "" {
		bindEnvOverrides(v, o.EnvPrefix)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	return nil
}

// bindEnvOverrides sets matching environment variables on v so that
// Unmarshal sees keys that only exist in the environment. Each variable is
// bound under every plausible nesting of its name, so REALM_PRINCIPAL
// matches realm.principal and COOKIE_JAR matches cookie_jar.
func bindEnvOverrides(v *viper.Viper, prefix string) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if prefix != "" {
			if !strings.HasPrefix(key, prefix+"_") {
				continue
			}
			key = strings.TrimPrefix(key, prefix+"_")
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants converts UPPER_SNAKE to the possible viper key spellings:
// flat, fully dotted, and every split between a dotted prefix and a
// snake_case remainder.
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.ReplaceAll(lower, "_", ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}
