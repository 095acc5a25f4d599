package config

import (
	"fmt"
	"os"
)

const (
	// StoreDatabase keeps tables in the configured SQL database.
	StoreDatabase = "database"
	// StoreMemory keeps tables in process memory. Contents are lost on exit.
	StoreMemory = "memory"

	EnvLibraryStore       = "FOLIO_LIBRARY_STORE"
	EnvLibraryAutoMigrate = "FOLIO_LIBRARY_AUTO_MIGRATE"
	EnvLibrarySetup       = "FOLIO_LIBRARY_SETUP_ON_START"
)

// LibraryConfig selects the row store backing the prompt library.
type LibraryConfig struct {
	Store        string `toml:"store"`
	AutoMigrate  *bool  `toml:"auto_migrate"`
	SetupOnStart *bool  `toml:"setup_on_start"`
}

// UsesDatabase reports whether the library is backed by the SQL database.
func (c *LibraryConfig) UsesDatabase() bool {
	return c.Store == StoreDatabase
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *LibraryConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *LibraryConfig) Merge(overlay *LibraryConfig) {
	if overlay.Store != "" {
		c.Store = overlay.Store
	}
	if overlay.AutoMigrate != nil {
		c.AutoMigrate = overlay.AutoMigrate
	}
	if overlay.SetupOnStart != nil {
		c.SetupOnStart = overlay.SetupOnStart
	}
}

func (c *LibraryConfig) loadDefaults() {
	if c.Store == "" {
		c.Store = StoreDatabase
	}
	if c.AutoMigrate == nil {
		c.AutoMigrate = boolPtr(true)
	}
	if c.SetupOnStart == nil {
		c.SetupOnStart = boolPtr(true)
	}
}

func (c *LibraryConfig) loadEnv() {
	if v := os.Getenv(EnvLibraryStore); v != "" {
		c.Store = v
	}
	if v, ok := envBool(EnvLibraryAutoMigrate); ok {
		c.AutoMigrate = &v
	}
	if v, ok := envBool(EnvLibrarySetup); ok {
		c.SetupOnStart = &v
	}
}

func (c *LibraryConfig) validate() error {
	switch c.Store {
	case StoreDatabase, StoreMemory:
		return nil
	}
	return fmt.Errorf("unknown store %q: must be %s or %s", c.Store, StoreDatabase, StoreMemory)
}
