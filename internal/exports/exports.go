// Package exports snapshots the prompt library tables to blob storage as CSV.
package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/folio/internal/library"
	"github.com/JaimeStill/folio/pkg/formatting"
	"github.com/JaimeStill/folio/pkg/sheet"
	"github.com/JaimeStill/folio/pkg/storage"
)

// Prefix is the blob key prefix under which snapshots are written.
const Prefix = "snapshots/"

// ErrDisabled indicates blob storage is not configured.
var ErrDisabled = errors.New("exports disabled: storage not configured")

// MapHTTPStatus maps export errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrDisabled) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, sheet.ErrTableNotFound) {
		return http.StatusNotFound
	}
	return storage.MapHTTPStatus(err)
}

// File is one table written as part of a snapshot.
type File struct {
	Table string `json:"table"`
	Key   string `json:"key"`
	Rows  int    `json:"rows"`
	Size  string `json:"size"`
}

// Snapshot describes a completed export.
type Snapshot struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Files     []File    `json:"files"`
}

// System defines export operations.
type System interface {
	Handler() *Handler
	Snapshot(ctx context.Context) (*Snapshot, error)
	List(ctx context.Context) ([]string, error)
}

type exporter struct {
	store  sheet.Store
	blobs  storage.System
	tables []string
	logger *slog.Logger
}

// New creates an export System. A nil blobs leaves exports disabled.
func New(store sheet.Store, blobs storage.System, logger *slog.Logger) System {
	return &exporter{
		store:  store,
		blobs:  blobs,
		tables: []string{library.LibraryTable, library.HistoryTable},
		logger: logger.With("system", "exports"),
	}
}

func (e *exporter) Handler() *Handler {
	return NewHandler(e, e.logger)
}

// Snapshot reads every table concurrently and uploads each as CSV under
// snapshots/<id>/<table>.csv.
func (e *exporter) Snapshot(ctx context.Context) (*Snapshot, error) {
	if e.blobs == nil {
		return nil, ErrDisabled
	}

	snap := &Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Files:     make([]File, len(e.tables)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range e.tables {
		g.Go(func() error {
			file, err := e.export(gctx, snap.ID, table)
			if err != nil {
				return err
			}
			snap.Files[i] = *file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("snapshot written", "id", snap.ID, "tables", len(snap.Files))
	return snap, nil
}

func (e *exporter) export(ctx context.Context, id, table string) (*File, error) {
	rows, err := e.store.Rows(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}

	data, err := Render(rows)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", table, err)
	}

	key := path.Join(Prefix, id, table+".csv")
	if err := e.blobs.Upload(ctx, key, bytes.NewReader(data), "text/csv"); err != nil {
		return nil, err
	}

	return &File{
		Table: table,
		Key:   key,
		Rows:  len(rows),
		Size:  formatting.FormatBytes(int64(len(data)), 1),
	}, nil
}

func (e *exporter) List(ctx context.Context) ([]string, error) {
	if e.blobs == nil {
		return nil, ErrDisabled
	}
	return e.blobs.List(ctx, Prefix)
}

// Render writes rows as CSV. Short rows are padded to the widest row.
func Render(rows [][]any) ([]byte, error) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	record := make([]string, width)
	for _, r := range rows {
		for i := range record {
			record[i] = ""
			if i < len(r) {
				record[i] = sheet.Text(r[i])
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
