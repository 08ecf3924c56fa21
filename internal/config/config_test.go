package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// CONFIG FILE TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfigAt("/tmp/well")
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected Backend=sqlite, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.SQLite.Path != filepath.Join("/tmp/well", "wellspring.db") {
		t.Errorf("unexpected sqlite path %s", cfg.Storage.SQLite.Path)
	}
	if cfg.GetTaskDuration() != 5*time.Minute {
		t.Errorf("expected 5m task duration, got %s", cfg.GetTaskDuration())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("WELL_STORAGE_BACKEND", "")
	t.Setenv("WELL_THEME", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfigAt(tmpDir)
	cfg.Storage.Backend = BackendMemory
	cfg.Ritual.TaskDuration = "90s"
	cfg.UI.Theme = ThemeDark

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Storage.Backend != BackendMemory {
		t.Errorf("expected Backend=memory, got %s", loaded.Storage.Backend)
	}
	if loaded.GetTaskDuration() != 90*time.Second {
		t.Errorf("expected 90s, got %s", loaded.GetTaskDuration())
	}
	if loaded.UI.Theme != ThemeDark {
		t.Errorf("expected dark theme, got %s", loaded.UI.Theme)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("WELL_SQLITE_PATH", "")
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.SQLite.Path != filepath.Join(DefaultDataDir(), "wellspring.db") {
		t.Errorf("defaults should be rooted at the default data dir, got %s", cfg.Storage.SQLite.Path)
	}
}

func TestLoadWithDataDir_IgnoresConfigDir(t *testing.T) {
	t.Setenv("WELL_SQLITE_PATH", "")
	t.Setenv("WELL_GALLERY_DIR", "")
	t.Setenv("WELL_THEME", "")
	confDir, dataDir := t.TempDir(), t.TempDir()
	path := filepath.Join(confDir, "well.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  theme: dark\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithDataDir(path, dataDir)
	if err != nil {
		t.Fatalf("LoadWithDataDir failed: %v", err)
	}
	if cfg.UI.Theme != ThemeDark {
		t.Errorf("expected file values to apply, got theme %s", cfg.UI.Theme)
	}
	if cfg.Storage.SQLite.Path != filepath.Join(dataDir, "wellspring.db") {
		t.Errorf("database path should be under the data dir, got %s", cfg.Storage.SQLite.Path)
	}
	if cfg.Gallery.Dir != filepath.Join(dataDir, "gallery") {
		t.Errorf("gallery should be under the data dir, got %s", cfg.Gallery.Dir)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetSettleOffsets(t *testing.T) {
	cfg := DefaultConfigAt(t.TempDir())
	got := cfg.GetSettleOffsets()
	want := [3]time.Duration{1500 * time.Millisecond, 2 * time.Second, 2500 * time.Millisecond}
	if got != want {
		t.Errorf("GetSettleOffsets()=%v, want %v", got, want)
	}

	cfg.Roll.SettleOffsets = []string{"bogus"}
	if got := cfg.GetSettleOffsets(); got != want {
		t.Errorf("bad offsets should fall back to defaults, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "etcd" }, true},
		{"sqlite without path", func(c *Config) { c.Storage.SQLite.Path = "" }, true},
		{"unknown driver", func(c *Config) { c.Storage.SQLite.Driver = "pgx" }, true},
		{"modernc driver", func(c *Config) { c.Storage.SQLite.Driver = DriverModernc }, false},
		{"redis without url", func(c *Config) { c.Storage.Backend = BackendRedis; c.Storage.Redis.URL = "" }, true},
		{"negative duration", func(c *Config) { c.Ritual.TaskDuration = "-1s" }, true},
		{"two offsets", func(c *Config) { c.Roll.SettleOffsets = []string{"1s", "2s"} }, true},
		{"offsets out of order", func(c *Config) { c.Roll.SettleOffsets = []string{"1s", "3s", "2s"} }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfigAt(t.TempDir())
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	if !lc.IsCategoryEnabled("roll") {
		t.Error("nil category map should enable everything")
	}
	lc.Categories = map[string]bool{"roll": false}
	if lc.IsCategoryEnabled("roll") {
		t.Error("roll should be disabled")
	}
	if !lc.IsCategoryEnabled("ritual") {
		t.Error("unlisted categories should be enabled")
	}
}
