package library

import (
	"context"
	"fmt"
	"math"

	"github.com/JaimeStill/folio/pkg/sheet"
)

// HandleEdit archives the prior text of a Library prompt and bumps its version.
// Edits outside the Library text column, edits to the header row, and edits
// with no prior value are reported as no-ops without touching the store.
//
// The history append and the three Library cell writes are separate store
// calls. A failure part way through leaves the earlier writes in place.
func (l *library) HandleEdit(ctx context.Context, identity string, event EditEvent) (*EditResult, error) {
	if event.Table != LibraryTable || event.Column != ColText || event.Row <= sheet.HeaderRow {
		return &EditResult{Outcome: OutcomeIgnored}, nil
	}

	if sheet.IsEmpty(event.OldValue) {
		l.logger.Debug("edit has no prior value", "row", event.Row)
		return &EditResult{Outcome: OutcomeNoPriorValue}, nil
	}

	last, err := l.store.LastRow(ctx, LibraryTable)
	if err != nil {
		return nil, fmt.Errorf("read last row: %w", err)
	}
	if event.Row > last {
		return nil, fmt.Errorf("%w: row %d is past the last row %d", ErrInvalidEvent, event.Row, last)
	}

	values, err := l.store.Range(ctx, LibraryTable, event.Row, ColID, LibraryWidth)
	if err != nil {
		return nil, fmt.Errorf("read row %d: %w", event.Row, err)
	}

	id := values[ColID-1]
	name := values[ColName-1]
	current := values[ColVersion-1]

	// Non-numeric versions count as 0. Fractional versions are truncated.
	prior, _ := sheet.Int(current)
	if prior == math.MaxInt64 {
		return nil, fmt.Errorf("%w: row %d version %d cannot be incremented", ErrInvalidEvent, event.Row, prior)
	}
	next := prior + 1

	exists, err := l.store.HasTable(ctx, HistoryTable)
	if err != nil {
		return nil, fmt.Errorf("check history: %w", err)
	}
	if !exists {
		l.logger.Warn("history table missing, recreating schema")
		if err := EnsureSchema(ctx, l.store); err != nil {
			return nil, err
		}
	}

	now := l.now().UTC()
	entry := []any{id, name, current, event.OldValue, now, identity}
	if err := l.store.AppendRow(ctx, HistoryTable, entry); err != nil {
		return nil, fmt.Errorf("archive prior text: %w", err)
	}

	if err := l.store.SetCell(ctx, LibraryTable, event.Row, ColVersion, next); err != nil {
		return nil, fmt.Errorf("write version: %w", err)
	}
	if err := l.store.SetCell(ctx, LibraryTable, event.Row, ColLastUpdated, now); err != nil {
		return nil, fmt.Errorf("write last updated: %w", err)
	}
	if err := l.store.SetCell(ctx, LibraryTable, event.Row, ColOwner, identity); err != nil {
		return nil, fmt.Errorf("write owner: %w", err)
	}

	result := &EditResult{
		Outcome: OutcomeVersioned,
		ID:      sheet.Text(id),
		Version: next,
	}
	l.logger.Info("prompt versioned", "id", result.ID, "version", next, "editor", identity)
	return result, nil
}
