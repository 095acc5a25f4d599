package routes

import (
	"net/http"

	"github.com/JaimeStill/folio/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// OpenAPI is optional; undocumented routes are left out of the generated spec.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
