package webclient

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/webclient/logger"
)

const defaultTimeout = 30 * time.Second

// Config configures a Web handle.
type Config struct {
	// Name identifies the client in logs.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout is the per-request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Headers are default headers applied to all requests from all clients.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Realm configures authentication applied to all requests. Nil disables it.
	Realm *Realm `yaml:"realm" mapstructure:"realm"`

	// TLS configures TLS settings for the engine transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// CookieJar enables an in-memory cookie jar.
	CookieJar bool `yaml:"cookie_jar" mapstructure:"cookie_jar"`

	// DisableRedirects stops the engine from following redirects.
	DisableRedirects bool `yaml:"disable_redirects" mapstructure:"disable_redirects"`

	// Logging configures the default logger. Ignored when Logger is set.
	Logging *logger.Config `yaml:"logging" mapstructure:"logging"`

	// Logger overrides the logger built from Logging.
	Logger *logger.Logger `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "webclient"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	if c.Logging != nil {
		cfg := *c.Logging
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return nil
}
