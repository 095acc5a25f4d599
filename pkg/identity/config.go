package identity

import (
	"fmt"
	"os"
)

// Config selects how identities are resolved. When Issuer is empty every
// request acts as Default.
type Config struct {
	Issuer     string `toml:"issuer"`
	ClientID   string `toml:"client_id"`
	EmailClaim string `toml:"email_claim"`
	Default    string `toml:"default"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Issuer     string
	ClientID   string
	EmailClaim string
	Default    string
}

// OIDCEnabled reports whether bearer tokens must be verified against an issuer.
func (c *Config) OIDCEnabled() bool {
	return c.Issuer != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.EmailClaim != "" {
		c.EmailClaim = overlay.EmailClaim
	}
	if overlay.Default != "" {
		c.Default = overlay.Default
	}
}

func (c *Config) loadDefaults() {
	if c.EmailClaim == "" {
		c.EmailClaim = "email"
	}
	if c.Default == "" {
		c.Default = "anonymous@localhost"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.ClientID != "" {
		if v := os.Getenv(env.ClientID); v != "" {
			c.ClientID = v
		}
	}
	if env.EmailClaim != "" {
		if v := os.Getenv(env.EmailClaim); v != "" {
			c.EmailClaim = v
		}
	}
	if env.Default != "" {
		if v := os.Getenv(env.Default); v != "" {
			c.Default = v
		}
	}
}

func (c *Config) validate() error {
	if c.OIDCEnabled() && c.ClientID == "" {
		return fmt.Errorf("client_id required when issuer is set")
	}
	return nil
}
