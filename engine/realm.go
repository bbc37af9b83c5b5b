package engine

import "fmt"

// Scheme identifies the authentication scheme of a Realm.
type Scheme string

const (
	// SchemeBasic uses HTTP Basic authentication.
	SchemeBasic Scheme = "basic"
	// SchemeDigest uses HTTP Digest authentication (RFC 7616).
	SchemeDigest Scheme = "digest"
)

// Realm is the authentication configuration applied to all requests issued
// by an engine instance.
type Realm struct {
	// Scheme selects basic or digest authentication.
	Scheme Scheme `yaml:"scheme" mapstructure:"scheme" validate:"required,oneof=basic digest"`

	// Principal is the username.
	Principal string `yaml:"principal" mapstructure:"principal" validate:"required"`

	// Credential is the password.
	Credential string `yaml:"credential" mapstructure:"credential"`

	// Preemptive sends credentials up front instead of waiting for a
	// challenge. For digest, the last seen challenge is reused when present.
	Preemptive bool `yaml:"preemptive" mapstructure:"preemptive"`
}

// Validate checks that the realm is usable.
func (r *Realm) Validate() error {
	switch r.Scheme {
	case SchemeBasic, SchemeDigest:
	default:
		return fmt.Errorf("engine: realm scheme must be %q or %q (got: %q)", SchemeBasic, SchemeDigest, r.Scheme)
	}
	if r.Principal == "" {
		return fmt.Errorf("engine: realm principal is required")
	}
	return nil
}
