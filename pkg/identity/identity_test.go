package identity_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/folio/pkg/identity"
)

type fakeVerifier map[string]string

func (f fakeVerifier) Verify(ctx context.Context, raw string) (string, error) {
	if id, ok := f[raw]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: unknown token", identity.ErrUnauthenticated)
}

func TestStatic(t *testing.T) {
	id, err := identity.Static("ana@example.com").Current(context.Background())
	if err != nil || id != "ana@example.com" {
		t.Errorf("Current = %q, %v", id, err)
	}

	_, err = identity.Static("").Current(context.Background())
	if !errors.Is(err, identity.ErrNoIdentity) {
		t.Errorf("empty static: got %v, want ErrNoIdentity", err)
	}
}

func TestContextual(t *testing.T) {
	p := identity.Contextual(identity.Static("default@localhost"))

	id, err := p.Current(context.Background())
	if err != nil || id != "default@localhost" {
		t.Errorf("fallback = %q, %v", id, err)
	}

	ctx := identity.WithIdentity(context.Background(), "bo@example.com")
	id, err = p.Current(ctx)
	if err != nil || id != "bo@example.com" {
		t.Errorf("context identity = %q, %v", id, err)
	}

	_, err = identity.Contextual(nil).Current(context.Background())
	if !errors.Is(err, identity.ErrNoIdentity) {
		t.Errorf("nil fallback: got %v, want ErrNoIdentity", err)
	}
}

func TestMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	verifier := fakeVerifier{"good-token": "cy@example.com"}

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = identity.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := identity.Middleware(verifier, logger)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     string
	}{
		{"valid token", "Bearer good-token", http.StatusNoContent, "cy@example.com"},
		{"lowercase scheme", "bearer good-token", http.StatusNoContent, "cy@example.com"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/library", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if seen != tt.wantID {
				t.Errorf("identity = %q, want %q", seen, tt.wantID)
			}
		})
	}
}

func TestMiddlewareDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	identity.Middleware(nil, logger)(next).ServeHTTP(
		httptest.NewRecorder(),
		httptest.NewRequest(http.MethodGet, "/", nil),
	)

	if !called {
		t.Error("nil verifier should pass requests through")
	}
}

func TestConfigFinalize(t *testing.T) {
	cfg := identity.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.Default != "anonymous@localhost" || cfg.EmailClaim != "email" || cfg.OIDCEnabled() {
		t.Errorf("defaults = %+v", cfg)
	}

	t.Setenv("TEST_ID_ISSUER", "https://login.example.com")
	bad := identity.Config{}
	if err := bad.Finalize(&identity.Env{Issuer: "TEST_ID_ISSUER"}); err == nil {
		t.Error("issuer without client_id should fail validation")
	}
}
