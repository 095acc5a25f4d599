package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/folio/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080

[database]
driver = "sqlite"
path = "folio.db"

[storage]
container_name = "snapshots"

[api]
base_path = "/api"
max_request_size = "2MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[identity]
default = "ops@example.com"

[library]
store = "database"
`

const overlayConfig = `
[server]
port = 9090

[database]
path = "/var/lib/folio/folio.db"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "folio.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Storage.ContainerName != "snapshots" || cfg.Storage.Enabled() {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.API.MaxRequestSizeBytes() != 2*1024*1024 {
		t.Errorf("max request size = %d", cfg.API.MaxRequestSizeBytes())
	}
	if cfg.API.Pagination.DefaultPageSize != 25 || cfg.API.Pagination.MaxPageSize != 50 {
		t.Errorf("pagination = %+v", cfg.API.Pagination)
	}
	if cfg.Identity.Default != "ops@example.com" || cfg.Identity.OIDCEnabled() {
		t.Errorf("identity = %+v", cfg.Identity)
	}
	if !cfg.Library.UsesDatabase() || !*cfg.Library.AutoMigrate || !*cfg.Library.SetupOnStart {
		t.Errorf("library = %+v", cfg.Library)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Setenv(config.EnvFolioEnv, "staging")

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Path != "/var/lib/folio/folio.db" {
		t.Errorf("db path: got %s, want overlay path", cfg.Database.Path)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("db driver: got %s, want sqlite (from base)", cfg.Database.Driver)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	t.Setenv("FOLIO_VERSION", "2.0.0")
	t.Setenv("FOLIO_SERVER_PORT", "3000")
	t.Setenv("FOLIO_LIBRARY_AUTO_MIGRATE", "false")
	t.Setenv("FOLIO_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" || cfg.Server.Port != 3000 {
		t.Errorf("version/port = %s/%d", cfg.Version, cfg.Server.Port)
	}
	if *cfg.Library.AutoMigrate {
		t.Error("auto_migrate should be disabled by env")
	}
	if !cfg.Storage.Enabled() {
		t.Error("storage should be enabled by env connection string")
	}
}

func TestLoadMemoryStoreSkipsDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOLIO_LIBRARY_STORE", "memory")
	t.Setenv("FOLIO_DB_DRIVER", "oracle")

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("memory store should not validate database: %v", err)
	}
	if cfg.Library.UsesDatabase() {
		t.Error("library should use memory store")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"postgres without name", map[string]string{"FOLIO_DB_DRIVER": "postgres"}, "database"},
		{"unknown store", map[string]string{"FOLIO_LIBRARY_STORE": "sheets"}, "unknown store"},
		{"bad request size", map[string]string{"FOLIO_LIBRARY_STORE": "memory", "FOLIO_API_MAX_REQUEST_SIZE": "lots"}, "max_request_size"},
		{"issuer without client", map[string]string{"FOLIO_LIBRARY_STORE": "memory", "FOLIO_IDENTITY_ISSUER": "https://id.example.com"}, "client_id"},
		{"bad log level", map[string]string{"FOLIO_LOG_LEVEL": "loud"}, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.LoadFrom(t.TempDir())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestServerConfigFinalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ServerConfig
		env     map[string]string
		wantErr string
	}{
		{name: "defaults"},
		{name: "zero write timeout", cfg: config.ServerConfig{WriteTimeout: "0s"}, wantErr: "write_timeout must be positive"},
		{name: "bad read header timeout", env: map[string]string{config.EnvServerReadHeaderTimeout: "soon"}, wantErr: "invalid read_header_timeout"},
		{name: "port out of range", env: map[string]string{config.EnvServerPort: "70000"}, wantErr: "invalid port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := tt.cfg
			err := cfg.Finalize()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Finalize: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfigTimeouts(t *testing.T) {
	t.Setenv(config.EnvServerReadHeaderTimeout, "2s")

	cfg := config.ServerConfig{}
	cfg.Merge(&config.ServerConfig{WriteTimeout: "45s"})
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if got := cfg.ReadHeaderTimeoutDuration(); got != 2*time.Second {
		t.Errorf("read header timeout = %v, want 2s", got)
	}
	if got := cfg.ReadTimeoutDuration(); got != 30*time.Second {
		t.Errorf("read timeout = %v, want 30s", got)
	}
	if got := cfg.WriteTimeoutDuration(); got != 45*time.Second {
		t.Errorf("write timeout = %v, want 45s", got)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %s", cfg.Addr())
	}
}
