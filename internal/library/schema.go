package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/folio/pkg/sheet"
)

// EnsureSchema creates the Library and History tables with their header rows.
// Tables that already exist are left untouched, so repeated calls are no-ops.
func EnsureSchema(ctx context.Context, store sheet.Store) error {
	if err := ensureTable(ctx, store, LibraryTable, LibraryHeader); err != nil {
		return err
	}
	return ensureTable(ctx, store, HistoryTable, HistoryHeader)
}

func ensureTable(ctx context.Context, store sheet.Store, name string, header []string) error {
	exists, err := store.HasTable(ctx, name)
	if err != nil {
		return fmt.Errorf("check table %s: %w", name, err)
	}
	if exists {
		return nil
	}

	if err := store.CreateTable(ctx, name); err != nil {
		if errors.Is(err, sheet.ErrTableExists) {
			return nil
		}
		return fmt.Errorf("create table %s: %w", name, err)
	}

	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := store.AppendRow(ctx, name, row); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	return nil
}
