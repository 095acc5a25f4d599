package sheet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/JaimeStill/folio/pkg/sheet"
)

func newTable(t *testing.T, rows ...[]any) sheet.Store {
	t.Helper()
	ctx := context.Background()

	store := sheet.NewMemory()
	if err := store.CreateTable(ctx, "T"); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	for _, r := range rows {
		if err := store.AppendRow(ctx, "T", r); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}
	return store
}

func TestMemoryCreateTable(t *testing.T) {
	ctx := context.Background()
	store := sheet.NewMemory()

	if err := store.CreateTable(ctx, "A"); err != nil {
		t.Fatalf("CreateTable(A): %v", err)
	}
	if err := store.CreateTable(ctx, "B"); err != nil {
		t.Fatalf("CreateTable(B): %v", err)
	}
	if err := store.CreateTable(ctx, "A"); !errors.Is(err, sheet.ErrTableExists) {
		t.Errorf("CreateTable(A) again: got %v, want ErrTableExists", err)
	}

	tables, err := store.Tables(ctx)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if len(tables) != 2 || tables[0] != "A" || tables[1] != "B" {
		t.Errorf("Tables = %v, want [A B]", tables)
	}

	ok, err := store.HasTable(ctx, "missing")
	if err != nil || ok {
		t.Errorf("HasTable(missing) = %v, %v", ok, err)
	}
}

func TestMemoryAppendAndRead(t *testing.T) {
	ctx := context.Background()
	store := newTable(t,
		[]any{"id", "name", "version"},
		[]any{"PR-1001", "first", 1},
	)

	last, err := store.LastRow(ctx, "T")
	if err != nil {
		t.Fatalf("LastRow: %v", err)
	}
	if last != 2 {
		t.Errorf("LastRow = %d, want 2", last)
	}

	v, err := store.Cell(ctx, "T", 2, 3)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if v != int64(1) {
		t.Errorf("Cell(2,3) = %#v, want int64(1)", v)
	}

	values, err := store.Range(ctx, "T", 2, 1, 5)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(values) != 5 || values[0] != "PR-1001" || values[3] != nil || values[4] != nil {
		t.Errorf("Range = %#v", values)
	}

	beyond, err := store.Cell(ctx, "T", 10, 1)
	if err != nil || beyond != nil {
		t.Errorf("Cell past end = %#v, %v; want nil, nil", beyond, err)
	}
}

func TestMemorySetCell(t *testing.T) {
	ctx := context.Background()
	store := newTable(t, []any{"a"}, []any{"b"})

	if err := store.SetCell(ctx, "T", 2, 4, "wide"); err != nil {
		t.Fatalf("SetCell: %v", err)
	}

	values, _ := store.Range(ctx, "T", 2, 1, 4)
	if values[0] != "b" || values[3] != "wide" {
		t.Errorf("row after SetCell = %#v", values)
	}

	if err := store.SetCell(ctx, "T", 3, 1, "x"); !errors.Is(err, sheet.ErrRowOutOfRange) {
		t.Errorf("SetCell past end: got %v, want ErrRowOutOfRange", err)
	}
}

func TestMemoryErrors(t *testing.T) {
	ctx := context.Background()
	store := newTable(t)

	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"append missing table", func() error { return store.AppendRow(ctx, "X", nil) }, sheet.ErrTableNotFound},
		{"cell missing table", func() error { _, err := store.Cell(ctx, "X", 1, 1); return err }, sheet.ErrTableNotFound},
		{"last row missing table", func() error { _, err := store.LastRow(ctx, "X"); return err }, sheet.ErrTableNotFound},
		{"zero row", func() error { _, err := store.Cell(ctx, "T", 0, 1); return err }, sheet.ErrInvalidCoordinate},
		{"zero column", func() error { return store.SetCell(ctx, "T", 1, 0, "x") }, sheet.ErrInvalidCoordinate},
		{"zero count", func() error { _, err := store.Range(ctx, "T", 1, 1, 0); return err }, sheet.ErrInvalidCoordinate},
		{"unsupported value", func() error { return store.AppendRow(ctx, "T", []any{struct{}{}}) }, sheet.ErrUnsupportedValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMemoryRowsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := newTable(t, []any{"original"})

	rows, err := store.Rows(ctx, "T")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	rows[0][0] = "mutated"

	v, _ := store.Cell(ctx, "T", 1, 1)
	if v != "original" {
		t.Errorf("store changed through Rows result: %v", v)
	}
}
