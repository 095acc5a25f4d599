package api

import (
	"net/http"

	"github.com/JaimeStill/folio/internal/config"
	"github.com/JaimeStill/folio/internal/exports"
	"github.com/JaimeStill/folio/internal/library"
	"github.com/JaimeStill/folio/pkg/openapi"
	"github.com/JaimeStill/folio/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	groups := []routes.Group{
		domain.Library.Handler().Routes(),
		domain.Host.Handler().Routes(),
		domain.Exports.Handler().Routes(),
	}
	routes.Register(mux, groups...)

	if cfg.API.OpenAPI.Disabled {
		return nil
	}

	specBytes, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(library.Spec.Schemas())
	spec.Components.AddSchemas(exports.Spec.Schemas())

	routes.Describe(spec, "", groups...)
	return openapi.MarshalJSON(spec)
}
