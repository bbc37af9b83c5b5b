package engine

import (
	"fmt"
	"time"

	"github.com/kbukum/webclient/logger"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP engine.
type Config struct {
	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Realm configures authentication applied to all requests. Nil disables it.
	Realm *Realm `yaml:"realm" mapstructure:"realm"`

	// TLS configures TLS settings for the underlying transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// CookieJar enables an in-memory cookie jar backed by the public suffix list.
	CookieJar bool `yaml:"cookie_jar" mapstructure:"cookie_jar"`

	// DisableRedirects stops the engine from following redirects.
	DisableRedirects bool `yaml:"disable_redirects" mapstructure:"disable_redirects"`

	// Logger receives per-request debug logs. Nil uses the default logger.
	Logger *logger.Logger `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("engine: timeout must be positive")
	}
	if c.Realm != nil {
		if err := c.Realm.Validate(); err != nil {
			return err
		}
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
