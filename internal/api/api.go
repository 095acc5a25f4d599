// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/folio/internal/config"
	"github.com/JaimeStill/folio/internal/infrastructure"
	"github.com/JaimeStill/folio/pkg/identity"
	"github.com/JaimeStill/folio/pkg/lifecycle"
	"github.com/JaimeStill/folio/pkg/middleware"
	"github.com/JaimeStill/folio/pkg/module"
)

// Module is the mounted API module plus the domain systems behind it.
type Module struct {
	*module.Module
	Domain *Domain

	setupOnStart bool
}

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(
		middleware.RequestID(),
		middleware.CORS(&cfg.API.CORS),
		middleware.Logger(runtime.Logger),
		middleware.MaxBytes(cfg.API.MaxRequestSizeBytes()),
		identity.Middleware(runtime.Verifier, runtime.Logger),
	)

	return &Module{
		Module:       m,
		Domain:       domain,
		setupOnStart: runtime.SetupOnStart,
	}, nil
}

// Start registers a startup hook that creates any missing library tables.
// Call it after infrastructure has started so the row store is migrated.
func (m *Module) Start(lc *lifecycle.Coordinator) error {
	if !m.setupOnStart {
		return nil
	}

	lc.OnStartup(func() error {
		if err := m.Domain.Host.Setup(lc.Context()); err != nil {
			return fmt.Errorf("library setup: %w", err)
		}
		return nil
	})
	return nil
}
