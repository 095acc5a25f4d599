package storage

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// MaxKeyLength is the longest blob name Azure accepts.
const MaxKeyLength = 1024

var (
	// ErrNotFound indicates the requested blob does not exist.
	ErrNotFound = errors.New("blob not found")
	// ErrContainerNotFound indicates the snapshot container is missing, usually because
	// startup could not create it.
	ErrContainerNotFound = errors.New("storage container not found")
	// ErrEmptyKey indicates an empty storage key was provided.
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey indicates a key that is absolute, too long, or has an empty,
	// "." or ".." path segment.
	ErrInvalidKey = errors.New("invalid storage key")
)

// MapHTTPStatus maps storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrContainerNotFound):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// mapBlobError translates Azure error codes into package sentinels, wrapping
// anything else with op for context.
func mapBlobError(op, key string, err error) error {
	switch {
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	case bloberror.HasCode(err, bloberror.ContainerNotFound):
		return fmt.Errorf("%w: %v", ErrContainerNotFound, err)
	}
	return fmt.Errorf("%s %s: %w", op, key, err)
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if len(key) > MaxKeyLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidKey, MaxKeyLength)
	}
	if strings.HasPrefix(key, "/") {
		return fmt.Errorf("%w: %q is absolute", ErrInvalidKey, key)
	}
	if slices.ContainsFunc(strings.Split(key, "/"), func(seg string) bool {
		return seg == "" || seg == "." || seg == ".."
	}) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
