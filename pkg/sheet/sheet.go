// Package sheet defines the row store contract folio is layered on: named tables of
// 1-indexed rows and columns where row 1 holds the header. Cell values are limited to
// nil, string, int64, float64, bool, and time.Time.
package sheet

import "context"

// HeaderRow is the row index reserved for column headers.
const HeaderRow = 1

// Store is the tabular persistence collaborator. Implementations must be safe for
// concurrent use, but callers get no atomicity across calls.
type Store interface {
	// Tables lists table names in creation order.
	Tables(ctx context.Context) ([]string, error)
	// HasTable reports whether a table with the given name exists.
	HasTable(ctx context.Context, name string) (bool, error)
	// CreateTable creates an empty table. Returns ErrTableExists if the name is taken.
	CreateTable(ctx context.Context, name string) error
	// AppendRow writes values as a new row after the last row of the table.
	AppendRow(ctx context.Context, table string, values []any) error
	// Cell returns the value at row, col. Cells past the end of the table read as nil.
	Cell(ctx context.Context, table string, row, col int) (any, error)
	// Range returns count consecutive cells of a row starting at col.
	Range(ctx context.Context, table string, row, col, count int) ([]any, error)
	// SetCell overwrites one cell of an existing row, widening the row if needed.
	SetCell(ctx context.Context, table string, row, col int, value any) error
	// LastRow returns the index of the last row holding data, header included.
	// An empty table returns 0.
	LastRow(ctx context.Context, table string) (int, error)
	// Rows returns a copy of every row in the table, header included.
	Rows(ctx context.Context, table string) ([][]any, error)
}

// CheckCoordinate validates 1-indexed cell coordinates.
func CheckCoordinate(row, col int) error {
	if row < 1 || col < 1 {
		return ErrInvalidCoordinate
	}
	return nil
}

// Pad returns values widened with nil cells to at least width entries.
func Pad(values []any, width int) []any {
	if len(values) >= width {
		return values
	}
	out := make([]any, width)
	copy(out, values)
	return out
}

// Window extracts count cells starting at the 1-indexed column col.
// Columns beyond the row read as nil.
func Window(values []any, col, count int) []any {
	out := make([]any, count)
	for i := range count {
		idx := col - 1 + i
		if idx < len(values) {
			out[i] = values[idx]
		}
	}
	return out
}
