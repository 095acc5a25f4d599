package api

import (
	"github.com/JaimeStill/folio/internal/exports"
	"github.com/JaimeStill/folio/internal/host"
	"github.com/JaimeStill/folio/internal/library"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Library library.System
	Host    host.System
	Exports exports.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	librarySystem := library.New(
		runtime.Sheet,
		runtime.Logger,
		runtime.Pagination,
		nil,
	)

	hostSystem := host.New(
		runtime.Sheet,
		librarySystem,
		runtime.Identities,
		runtime.Logger,
	)

	exportsSystem := exports.New(
		runtime.Sheet,
		runtime.Storage,
		runtime.Logger,
	)

	return &Domain{
		Library: librarySystem,
		Host:    hostSystem,
		Exports: exportsSystem,
	}
}
