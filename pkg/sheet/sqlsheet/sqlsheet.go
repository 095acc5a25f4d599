// Package sqlsheet implements sheet.Store on top of database/sql. Each table is a row in
// sheet_tables and each sheet row is a kind-tagged JSON array in sheet_rows, so the same
// schema serves PostgreSQL and SQLite.
package sqlsheet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/folio/pkg/repository"
	"github.com/JaimeStill/folio/pkg/sheet"
)

type store struct {
	db      *sql.DB
	dialect repository.Dialect
	logger  *slog.Logger
}

// New creates a SQL-backed Store. The schema must already be migrated (see Migrate).
func New(db *sql.DB, dialect repository.Dialect, logger *slog.Logger) sheet.Store {
	return &store{
		db:      db,
		dialect: dialect,
		logger:  logger.With("system", "sqlsheet"),
	}
}

func (s *store) q(query string) string {
	return repository.Rebind(s.dialect, query)
}

func (s *store) Tables(ctx context.Context) ([]string, error) {
	names, err := repository.QueryMany(
		ctx, s.db,
		"SELECT name FROM sheet_tables ORDER BY position",
		nil, scanString,
	)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return names, nil
}

func (s *store) HasTable(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, s.db, name)
}

func (s *store) CreateTable(ctx context.Context, name string) error {
	q := s.q(`
		INSERT INTO sheet_tables(name, position, created_at)
		SELECT CAST(? AS TEXT), COALESCE(MAX(position), 0) + 1, CAST(? AS TEXT)
		FROM sheet_tables`)

	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, q, name, time.Now().UTC().Format(time.RFC3339Nano))
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, sheet.ErrTableNotFound, sheet.ErrTableExists)
	}

	s.logger.Info("table created", "table", name)
	return nil
}

func (s *store) AppendRow(ctx context.Context, table string, values []any) error {
	data, err := sheet.MarshalRow(values)
	if err != nil {
		return err
	}

	q := s.q(`
		INSERT INTO sheet_rows(table_name, row_index, cells)
		SELECT CAST(? AS TEXT), COALESCE(MAX(row_index), 0) + 1, CAST(? AS TEXT)
		FROM sheet_rows
		WHERE table_name = ?`)

	_, err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		if err := s.requireTable(ctx, tx, table); err != nil {
			return struct{}{}, err
		}
		_, err := tx.ExecContext(ctx, q, table, string(data), table)
		return struct{}{}, err
	})
	if err != nil {
		return fmt.Errorf("append row to %s: %w", table, err)
	}
	return nil
}

func (s *store) Cell(ctx context.Context, table string, row, col int) (any, error) {
	values, err := s.Range(ctx, table, row, col, 1)
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

func (s *store) Range(ctx context.Context, table string, row, col, count int) ([]any, error) {
	if err := sheet.CheckCoordinate(row, col); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, sheet.ErrInvalidCoordinate
	}
	if err := s.requireTable(ctx, s.db, table); err != nil {
		return nil, err
	}

	values, err := s.readRow(ctx, s.db, table, row)
	if errors.Is(err, sql.ErrNoRows) {
		return make([]any, count), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s row %d: %w", table, row, err)
	}
	return sheet.Window(values, col, count), nil
}

func (s *store) SetCell(ctx context.Context, table string, row, col int, value any) error {
	if err := sheet.CheckCoordinate(row, col); err != nil {
		return err
	}
	v, err := sheet.Normalize(value)
	if err != nil {
		return err
	}

	update := s.q("UPDATE sheet_rows SET cells = ? WHERE table_name = ? AND row_index = ?")

	_, err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		if err := s.requireTable(ctx, tx, table); err != nil {
			return struct{}{}, err
		}

		values, err := s.readRow(ctx, tx, table, row)
		if errors.Is(err, sql.ErrNoRows) {
			return struct{}{}, sheet.ErrRowOutOfRange
		}
		if err != nil {
			return struct{}{}, err
		}

		values = sheet.Pad(values, col)
		values[col-1] = v

		data, err := sheet.MarshalRow(values)
		if err != nil {
			return struct{}{}, err
		}

		return struct{}{}, repository.ExecExpectOne(ctx, tx, update, string(data), table, row)
	})
	if err != nil {
		return fmt.Errorf("set %s r%dc%d: %w", table, row, col, err)
	}
	return nil
}

func (s *store) LastRow(ctx context.Context, table string) (int, error) {
	if err := s.requireTable(ctx, s.db, table); err != nil {
		return 0, err
	}

	var last int
	err := s.db.QueryRowContext(
		ctx,
		s.q("SELECT COALESCE(MAX(row_index), 0) FROM sheet_rows WHERE table_name = ?"),
		table,
	).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("last row of %s: %w", table, err)
	}
	return last, nil
}

func (s *store) Rows(ctx context.Context, table string) ([][]any, error) {
	if err := s.requireTable(ctx, s.db, table); err != nil {
		return nil, err
	}

	rows, err := repository.QueryMany(
		ctx, s.db,
		s.q("SELECT cells FROM sheet_rows WHERE table_name = ? ORDER BY row_index"),
		[]any{table}, scanCells,
	)
	if err != nil {
		return nil, fmt.Errorf("read %s rows: %w", table, err)
	}
	return rows, nil
}

func (s *store) exists(ctx context.Context, q repository.Querier, name string) (bool, error) {
	var count int
	if err := q.QueryRowContext(
		ctx,
		s.q("SELECT COUNT(1) FROM sheet_tables WHERE name = ?"),
		name,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("lookup table %s: %w", name, err)
	}
	return count > 0, nil
}

func (s *store) requireTable(ctx context.Context, q repository.Querier, name string) error {
	ok, err := s.exists(ctx, q, name)
	if err != nil {
		return err
	}
	if !ok {
		return sheet.ErrTableNotFound
	}
	return nil
}

func (s *store) readRow(ctx context.Context, q repository.Querier, table string, row int) ([]any, error) {
	return repository.QueryOne(
		ctx, q,
		s.q("SELECT cells FROM sheet_rows WHERE table_name = ? AND row_index = ?"),
		[]any{table, row}, scanCells,
	)
}

func scanString(sc repository.Scanner) (string, error) {
	var v string
	err := sc.Scan(&v)
	return v, err
}

func scanCells(sc repository.Scanner) ([]any, error) {
	var data string
	if err := sc.Scan(&data); err != nil {
		return nil, err
	}
	return sheet.UnmarshalRow([]byte(data))
}
