package exports_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/JaimeStill/folio/internal/exports"
	"github.com/JaimeStill/folio/internal/library"
	"github.com/JaimeStill/folio/pkg/lifecycle"
	"github.com/JaimeStill/folio/pkg/routes"
	"github.com/JaimeStill/folio/pkg/sheet"
	"github.com/JaimeStill/folio/pkg/storage"
)

type memBlobs struct {
	mu    sync.Mutex
	blobs map[string]string
	fail  error
}

func newBlobs() *memBlobs { return &memBlobs{blobs: make(map[string]string)} }

func (m *memBlobs) Start(lc *lifecycle.Coordinator) error { return nil }

func (m *memBlobs) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	if m.fail != nil {
		return m.fail
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = string(data)
	return nil
}

func (m *memBlobs) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func (m *memBlobs) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memBlobs) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func (m *memBlobs) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.blobs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededStore(t *testing.T) sheet.Store {
	t.Helper()
	ctx := context.Background()
	store := sheet.NewMemory()
	if err := library.EnsureSchema(ctx, store); err != nil {
		t.Fatal(err)
	}
	row := []any{"PR-1001", "Summarizer", "Condenses, briefly", "writing", "Say \"less\"", int64(2)}
	if err := store.AppendRow(ctx, library.LibraryTable, row); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestSnapshot(t *testing.T) {
	blobs := newBlobs()
	sys := exports.New(seededStore(t), blobs, discardLogger())

	snap, err := sys.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(snap.Files))
	}

	lib := snap.Files[0]
	if lib.Table != library.LibraryTable || lib.Rows != 2 {
		t.Errorf("library file = %+v", lib)
	}
	if want := "snapshots/" + snap.ID + "/Library.csv"; lib.Key != want {
		t.Errorf("key = %s, want %s", lib.Key, want)
	}

	body := blobs.blobs[lib.Key]
	wantBody := "id,name,description,category,text,version,lastUpdated,owner\n" +
		"PR-1001,Summarizer,\"Condenses, briefly\",writing,\"Say \"\"less\"\"\",2,,\n"
	if body != wantBody {
		t.Errorf("csv =\n%s\nwant\n%s", body, wantBody)
	}

	keys, err := sys.List(context.Background())
	if err != nil || len(keys) != 2 {
		t.Errorf("List = %v, %v", keys, err)
	}
}

func TestSnapshotErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := exports.New(seededStore(t), nil, discardLogger()).Snapshot(ctx); !errors.Is(err, exports.ErrDisabled) {
		t.Errorf("disabled: got %v, want ErrDisabled", err)
	}

	if _, err := exports.New(sheet.NewMemory(), newBlobs(), discardLogger()).Snapshot(ctx); !errors.Is(err, sheet.ErrTableNotFound) {
		t.Errorf("missing tables: got %v, want ErrTableNotFound", err)
	}

	failing := newBlobs()
	failing.fail = errors.New("upload refused")
	if _, err := exports.New(seededStore(t), failing, discardLogger()).Snapshot(ctx); err == nil {
		t.Error("expected upload failure")
	}
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		blobs      storage.System
		method     string
		wantStatus int
	}{
		{"create", newBlobs(), "POST", http.StatusCreated},
		{"list", newBlobs(), "GET", http.StatusOK},
		{"disabled", nil, "POST", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			routes.Register(mux, exports.New(seededStore(t), tt.blobs, discardLogger()).Handler().Routes())

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, "/exports", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
