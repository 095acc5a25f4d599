package library

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/folio/pkg/sheet"
)

// Domain errors for library operations.
var (
	ErrNotFound     = errors.New("prompt not found")
	ErrInvalidEvent = errors.New("invalid edit event")
)

// MapHTTPStatus maps library domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidEvent) {
		return http.StatusBadRequest
	}
	return sheet.MapHTTPStatus(err)
}
