package sheet

import (
	"errors"
	"net/http"
)

var (
	// ErrTableNotFound indicates the named table does not exist.
	ErrTableNotFound = errors.New("table not found")
	// ErrTableExists indicates a table with the same name already exists.
	ErrTableExists = errors.New("table already exists")
	// ErrInvalidCoordinate indicates a row, column, or count below 1.
	ErrInvalidCoordinate = errors.New("row and column must be 1 or greater")
	// ErrRowOutOfRange indicates a write to a row past the end of the table.
	ErrRowOutOfRange = errors.New("row is past the end of the table")
	// ErrUnsupportedValue indicates a cell value of a type the store cannot hold.
	ErrUnsupportedValue = errors.New("unsupported cell value")
)

// MapHTTPStatus maps row store errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTableExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCoordinate),
		errors.Is(err, ErrRowOutOfRange),
		errors.Is(err, ErrUnsupportedValue):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
