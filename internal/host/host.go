// Package host models the spreadsheet host around the prompt library: the
// Setup menu, the new-prompt form, and cell edits that fire edit handlers.
// Every write goes through one mutex so a cell write and the handlers it
// triggers are never interleaved with another write.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaimeStill/folio/internal/library"
	"github.com/JaimeStill/folio/pkg/identity"
	"github.com/JaimeStill/folio/pkg/sheet"
)

// EditHandler reacts to a cell edit after the host has applied it.
type EditHandler interface {
	HandleEdit(ctx context.Context, identity string, event library.EditEvent) (*library.EditResult, error)
}

// System defines the host operations.
type System interface {
	Handler() *Handler

	// Register appends an edit handler. Handlers run in registration order.
	Register(h EditHandler)

	Setup(ctx context.Context) error
	Submit(ctx context.Context, identity string, form library.Form) (*library.Record, error)
	EditCell(ctx context.Context, identity string, table string, row, col int, value any) ([]library.EditResult, error)
	Dispatch(ctx context.Context, identity string, event library.EditEvent) ([]library.EditResult, error)

	Tables(ctx context.Context) ([]string, error)
	Rows(ctx context.Context, table string) ([][]any, error)
}

type host struct {
	mu         sync.Mutex
	store      sheet.Store
	library    library.System
	handlers   []EditHandler
	identities identity.Provider
	logger     *slog.Logger
}

// New creates a host over store. The library is registered as the first edit handler.
func New(
	store sheet.Store,
	lib library.System,
	identities identity.Provider,
	logger *slog.Logger,
) System {
	return &host{
		store:      store,
		library:    lib,
		handlers:   []EditHandler{lib},
		identities: identities,
		logger:     logger.With("system", "host"),
	}
}

func (h *host) Handler() *Handler {
	return NewHandler(h, h.identities, h.logger)
}

func (h *host) Register(handler EditHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, handler)
}

func (h *host) Setup(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.library.Setup(ctx)
}

func (h *host) Submit(ctx context.Context, identity string, form library.Form) (*library.Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.library.Create(ctx, identity, form)
}

// EditCell writes value and dispatches the resulting edit event. The event
// carries the prior value only when the cell held something before the write.
func (h *host) EditCell(
	ctx context.Context,
	identity string,
	table string,
	row, col int,
	value any,
) ([]library.EditResult, error) {
	if err := sheet.CheckCoordinate(row, col); err != nil {
		return nil, err
	}

	value, err := sheet.Normalize(value)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prior, err := h.store.Cell(ctx, table, row, col)
	if err != nil {
		return nil, fmt.Errorf("read prior value: %w", err)
	}

	if err := h.store.SetCell(ctx, table, row, col, value); err != nil {
		return nil, fmt.Errorf("write cell: %w", err)
	}

	event := library.EditEvent{
		Table:    table,
		Row:      row,
		Column:   col,
		NewValue: value,
	}
	if !sheet.IsEmpty(prior) {
		event.OldValue = prior
	}

	h.logger.Debug("cell edited", "table", table, "row", row, "column", col, "editor", identity)
	return h.dispatch(ctx, identity, event)
}

// Dispatch forwards an edit that was applied outside the host.
func (h *host) Dispatch(ctx context.Context, identity string, event library.EditEvent) ([]library.EditResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dispatch(ctx, identity, event)
}

func (h *host) dispatch(ctx context.Context, identity string, event library.EditEvent) ([]library.EditResult, error) {
	results := make([]library.EditResult, 0, len(h.handlers))
	for _, handler := range h.handlers {
		result, err := handler.HandleEdit(ctx, identity, event)
		if err != nil {
			h.logger.Error("edit handler failed",
				"table", event.Table,
				"row", event.Row,
				"column", event.Column,
				"error", err,
			)
			return results, err
		}
		results = append(results, *result)
	}
	return results, nil
}

func (h *host) Tables(ctx context.Context) ([]string, error) {
	return h.store.Tables(ctx)
}

func (h *host) Rows(ctx context.Context, table string) ([][]any, error) {
	return h.store.Rows(ctx, table)
}
