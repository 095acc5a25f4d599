package sheet

import (
	"context"
	"slices"
	"sync"
)

type memory struct {
	mu     sync.RWMutex
	order  []string
	tables map[string][][]any
}

// NewMemory creates an empty in-process Store. Data lives only as long as the value.
func NewMemory() Store {
	return &memory{
		tables: make(map[string][][]any),
	}
}

func (m *memory) Tables(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order), nil
}

func (m *memory) HasTable(ctx context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[name]
	return ok, nil
}

func (m *memory) CreateTable(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[name]; ok {
		return ErrTableExists
	}
	m.tables[name] = [][]any{}
	m.order = append(m.order, name)
	return nil
}

func (m *memory) AppendRow(ctx context.Context, table string, values []any) error {
	row, err := NormalizeRow(values)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[table]
	if !ok {
		return ErrTableNotFound
	}
	m.tables[table] = append(rows, row)
	return nil
}

func (m *memory) Cell(ctx context.Context, table string, row, col int) (any, error) {
	values, err := m.Range(ctx, table, row, col, 1)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

func (m *memory) Range(ctx context.Context, table string, row, col, count int) ([]any, error) {
	if err := CheckCoordinate(row, col); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, ErrInvalidCoordinate
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.tables[table]
	if !ok {
		return nil, ErrTableNotFound
	}
	if row > len(rows) {
		return make([]any, count), nil
	}
	return Window(rows[row-1], col, count), nil
}

func (m *memory) SetCell(ctx context.Context, table string, row, col int, value any) error {
	if err := CheckCoordinate(row, col); err != nil {
		return err
	}
	v, err := Normalize(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[table]
	if !ok {
		return ErrTableNotFound
	}
	if row > len(rows) {
		return ErrRowOutOfRange
	}

	updated := Pad(slices.Clone(rows[row-1]), col)
	updated[col-1] = v
	rows[row-1] = updated
	return nil
}

func (m *memory) LastRow(ctx context.Context, table string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.tables[table]
	if !ok {
		return 0, ErrTableNotFound
	}
	return len(rows), nil
}

func (m *memory) Rows(ctx context.Context, table string) ([][]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.tables[table]
	if !ok {
		return nil, ErrTableNotFound
	}

	out := make([][]any, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out, nil
}
