package host

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/folio/internal/library"
	"github.com/JaimeStill/folio/pkg/identity"
)

// ErrInvalidRequest indicates a malformed request body or path parameter.
var ErrInvalidRequest = errors.New("invalid request")

// MapHTTPStatus maps host, identity, library, and row store errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, identity.ErrNoIdentity) || errors.Is(err, identity.ErrUnauthenticated) {
		return identity.MapHTTPStatus(err)
	}
	return library.MapHTTPStatus(err)
}
