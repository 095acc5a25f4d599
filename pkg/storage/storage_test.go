package storage_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/folio/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func newSystem(t *testing.T) storage.System {
	t.Helper()
	cfg := &storage.Config{
		ContainerName:    "folio-snapshots",
		ConnectionString: azuriteConnString,
		MaxListSize:      10,
	}
	sys, err := storage.New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sys
}

func TestNewInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "folio-snapshots",
		ConnectionString: "not-a-connection-string",
	}

	if _, err := storage.New(cfg, slog.Default()); err == nil {
		t.Fatal("expected error for invalid connection string, got nil")
	}
}

func TestKeyValidation(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		want error
	}{
		{"empty", "", storage.ErrEmptyKey},
		{"traversal", "snapshots/../secrets.csv", storage.ErrInvalidKey},
		{"absolute", "/snapshots/a.csv", storage.ErrInvalidKey},
		{"empty segment", "snapshots//a.csv", storage.ErrInvalidKey},
		{"dot segment", "snapshots/./a.csv", storage.ErrInvalidKey},
		{"too long", "snapshots/" + strings.Repeat("x", storage.MaxKeyLength), storage.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sys.Upload(ctx, tt.key, strings.NewReader("x"), "text/csv"); !errors.Is(err, tt.want) {
				t.Errorf("Upload: got %v, want %v", err, tt.want)
			}
			if _, err := sys.Download(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Download: got %v, want %v", err, tt.want)
			}
			if err := sys.Delete(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Delete: got %v, want %v", err, tt.want)
			}
			if _, err := sys.Exists(ctx, tt.key); !errors.Is(err, tt.want) {
				t.Errorf("Exists: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrNotFound, http.StatusNotFound},
		{storage.ErrEmptyKey, http.StatusBadRequest},
		{storage.ErrInvalidKey, http.StatusBadRequest},
		{storage.ErrContainerNotFound, http.StatusServiceUnavailable},
		{fmt.Errorf("download: %w", storage.ErrNotFound), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	cfg := storage.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.ContainerName != "folio-snapshots" || cfg.MaxListSize != 50 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Enabled() {
		t.Error("storage without a connection string should be disabled")
	}

	t.Setenv("TEST_STORAGE_CONN", azuriteConnString)
	t.Setenv("TEST_STORAGE_MAX", "999999")
	env := &storage.Env{ConnectionString: "TEST_STORAGE_CONN", MaxListSize: "TEST_STORAGE_MAX"}

	cfg = storage.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !cfg.Enabled() {
		t.Error("connection string from env should enable storage")
	}
	if cfg.MaxListSize != storage.MaxListCap {
		t.Errorf("MaxListSize = %d, want cap %d", cfg.MaxListSize, storage.MaxListCap)
	}
}

func TestConfigMerge(t *testing.T) {
	base := storage.Config{ContainerName: "folio-snapshots", MaxListSize: 50}
	base.Merge(&storage.Config{ContainerName: "archive"})

	if base.ContainerName != "archive" || base.MaxListSize != 50 {
		t.Errorf("merged = %+v", base)
	}
}

func TestConfigServiceURL(t *testing.T) {
	t.Setenv("TEST_STORAGE_URL", "https://folio.blob.core.windows.net/")
	cfg := storage.Config{}
	if err := cfg.Finalize(&storage.Env{ServiceURL: "TEST_STORAGE_URL"}); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !cfg.Enabled() {
		t.Error("service url should enable storage")
	}

	if _, err := storage.New(&cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Errorf("New() with service url error = %v", err)
	}

	insecure := storage.Config{ServiceURL: "http://folio.blob.core.windows.net/"}
	if err := insecure.Finalize(nil); err == nil {
		t.Error("plain http service url should fail validation")
	}
}
