// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies domain systems require: logging, the row store
// (SQL-backed or in memory), optional blob storage, and identity resolution.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/JaimeStill/folio/internal/config"
	"github.com/JaimeStill/folio/pkg/database"
	"github.com/JaimeStill/folio/pkg/identity"
	"github.com/JaimeStill/folio/pkg/lifecycle"
	"github.com/JaimeStill/folio/pkg/sheet"
	"github.com/JaimeStill/folio/pkg/sheet/sqlsheet"
	"github.com/JaimeStill/folio/pkg/storage"
)

const discoveryTimeout = 10 * time.Second

// Infrastructure holds the core systems required by all domain modules.
// Database is nil when the library runs on the memory store. Storage is nil
// when no connection string is configured. Verifier is nil when OIDC is off.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Sheet      sheet.Store
	Storage    storage.System
	Identities identity.Provider
	Verifier   identity.Verifier

	autoMigrate bool
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := NewLogger(cfg.LogLevel)
	infra := &Infrastructure{
		Lifecycle:   lifecycle.New(),
		Logger:      logger,
		Identities:  identity.Contextual(identity.Static(cfg.Identity.Default)),
		autoMigrate: *cfg.Library.AutoMigrate,
	}

	if cfg.Library.UsesDatabase() {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
		infra.Sheet = sqlsheet.New(db.Connection(), db.Dialect(), logger)
	} else {
		logger.Warn("library using in-memory store; contents are lost on exit")
		infra.Sheet = sheet.NewMemory()
	}

	if cfg.Storage.Enabled() {
		blobs, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = blobs
	}

	if cfg.Identity.OIDCEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), discoveryTimeout)
		defer cancel()

		verifier, err := identity.NewOIDC(ctx, &cfg.Identity)
		if err != nil {
			return nil, fmt.Errorf("identity init failed: %w", err)
		}
		infra.Verifier = verifier
	}

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Row store migrations run synchronously so tables exist before any startup hook.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
		if i.autoMigrate {
			if err := sqlsheet.Migrate(i.Database.Connection(), i.Database.Dialect()); err != nil {
				return fmt.Errorf("migrate row store: %w", err)
			}
			i.Logger.Info("row store migrations applied")
		}
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	return nil
}

// NewLogger creates the service logger writing text records to stderr at level.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
