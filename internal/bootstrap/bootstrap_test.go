package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listingcrew/internal/config"
	"listingcrew/internal/content"
	"listingcrew/internal/storage"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	base := filepath.Join(t.TempDir(), "data")
	cfg := config.Default()
	cfg.Storage.BaseDir = base
	cfg.Storage.Backend = backend
	cfg.Storage.LogFile = filepath.Join(base, "logs", "listingcrew.log")
	cfg.UI.Locale = "en"
	return cfg
}

func TestBuildSQLite(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	res, err := Build(cfg, Overrides{Tokenizer: content.HeuristicTokenizer()})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer res.Close()

	if res.App == nil || res.Store == nil {
		t.Fatal("app or store is nil")
	}
	if _, ok := res.Store.(*storage.SQLiteStore); !ok {
		t.Fatalf("store=%T, want *storage.SQLiteStore", res.Store)
	}
	if res.BaseURL != "http://localhost:8000" {
		t.Fatalf("BaseURL=%q", res.BaseURL)
	}
	data, err := os.ReadFile(res.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "started: api=http://localhost:8000") {
		t.Fatalf("log=%s", data)
	}
}

func TestBuildFileBackendRestoresSession(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	fs, err := storage.NewFileStore(cfg.CredentialFile())
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Put("authToken", "demo-token"); err != nil {
		t.Fatal(err)
	}

	res, err := Build(cfg, Overrides{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer res.Close()
	if _, ok := res.Store.(*storage.FileStore); !ok {
		t.Fatalf("store=%T, want *storage.FileStore", res.Store)
	}
	if snap := res.App.Snapshot(); !snap.Authenticated {
		t.Fatalf("persisted credential should restore the session")
	}
}

func TestBuildMigratesLegacyCredentials(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	if err := os.MkdirAll(cfg.Storage.BaseDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.CredentialFile(), []byte(`{"authToken":"legacy"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := Build(cfg, Overrides{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer res.Close()

	if v, ok, _ := res.Store.Get("authToken"); !ok || v != "legacy" {
		t.Fatalf("migrated token=%q ok=%v", v, ok)
	}
	if !res.App.Snapshot().Authenticated {
		t.Fatalf("migrated credential should restore the session")
	}
}

func TestBuildBadLogPathFails(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Storage.LogFile = filepath.Join(blocker, "sub", "x.log")
	if _, err := Build(cfg, Overrides{}); err == nil || !strings.Contains(err.Error(), "log") {
		t.Fatalf("err=%v", err)
	}
}
