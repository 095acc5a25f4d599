package openapi

import (
	"os"
	"strconv"
)

// Config holds the metadata of the generated API document and whether it is served.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Disabled    bool   `toml:"disabled"`
}

// ConfigEnv maps config fields to environment variable names for override injection.
type ConfigEnv struct {
	Title       string
	Description string
	Disabled    string
}

// DefaultEnv is the FOLIO_OPENAPI_* variable set read by the server config.
var DefaultEnv = &ConfigEnv{
	Title:       "FOLIO_OPENAPI_TITLE",
	Description: "FOLIO_OPENAPI_DESCRIPTION",
	Disabled:    "FOLIO_OPENAPI_DISABLED",
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay. Disabled only ever turns the
// document off.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.Disabled {
		c.Disabled = true
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Folio API"
	}
	if c.Description == "" {
		c.Description = "Prompt library with automatic version history on a row store."
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if v := getenv(env.Title); v != "" {
		c.Title = v
	}
	if v := getenv(env.Description); v != "" {
		c.Description = v
	}
	if v := getenv(env.Disabled); v != "" {
		if disabled, err := strconv.ParseBool(v); err == nil {
			c.Disabled = disabled
		}
	}
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
