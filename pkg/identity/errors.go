package identity

import (
	"errors"
	"net/http"
)

var (
	// ErrNoIdentity indicates no identity could be resolved for the operation.
	ErrNoIdentity = errors.New("no identity available")
	// ErrUnauthenticated indicates a missing or invalid bearer token.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// MapHTTPStatus maps identity errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrNoIdentity) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
