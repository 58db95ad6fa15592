package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/marcus/nexaflow/internal/db"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BackendName() != db.BackendFile || cfg.DeadlineWindow() != DefaultDeadlineWindow {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	window := 0
	want := &Config{Backend: db.BackendSQLite, LogLevel: "debug", LogFormat: "json", DeadlineWindowDays: &window}
	if err := Save(dir, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Backend != want.Backend || got.LogFormat != "json" || got.DeadlineWindow() != 0 {
		t.Errorf("got %+v", got)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, db.StateDir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temp files left: %v", matches)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, db.StateDir), 0755)
	os.WriteFile(configPath(dir), []byte("{"), 0644)
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestSetValidation(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"backend", "sqlite", false},
		{"backend", "postgres", true},
		{"log_level", "WARN", false},
		{"log_level", "loud", true},
		{"log_format", "json", false},
		{"log_format", "xml", true},
		{"deadline_window_days", "5", false},
		{"deadline_window_days", "-1", true},
		{"deadline_window_days", "soon", true},
		{"task_sort", "due", false},
		{"color", "blue", true},
	}
	for _, tt := range tests {
		cfg := &Config{}
		err := cfg.Set(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q, %q) err = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}

	cfg := &Config{}
	cfg.Set("deadline_window_days", "5")
	if v, _ := cfg.Get("deadline_window_days"); v != "5" {
		t.Errorf("Get = %q", v)
	}
	if v, _ := cfg.Get("log_level"); v != "WARN" {
		t.Errorf("default log_level = %q", v)
	}
}

func TestUnknownKeySuggests(t *testing.T) {
	cfg := &Config{}
	err := cfg.Set("backnd", "file")
	if err == nil || !strings.Contains(err.Error(), "did you mean backend?") {
		t.Errorf("Set(backnd) err = %v", err)
	}
	_, err = cfg.Get("zzzzzz")
	if err == nil || !strings.Contains(err.Error(), "valid:") {
		t.Errorf("Get(zzzzzz) err = %v", err)
	}
}

func TestUpdateConcurrent(t *testing.T) {
	dir := t.TempDir()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := Update(dir, func(c *Config) error {
				n := c.DeadlineWindow()
				if c.DeadlineWindowDays == nil {
					n = 0
				}
				n++
				c.DeadlineWindowDays = &n
				return nil
			})
			if err != nil {
				t.Errorf("Update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DeadlineWindow() != 10 {
		t.Errorf("window = %d, want 10 (lost update)", cfg.DeadlineWindow())
	}
}

func TestLoadEnvAndApply(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnv(dir); err != nil {
		t.Fatalf("LoadEnv without file: %v", err)
	}

	os.WriteFile(filepath.Join(dir, ".env"), []byte("NEXAFLOW_LOG_FORMAT=json\nNEXAFLOW_BACKEND=memory\n"), 0644)
	t.Setenv(EnvBackend, "sqlite") // already set, must win over .env
	t.Setenv(EnvLogFormat, "")
	os.Unsetenv(EnvLogFormat)

	if err := LoadEnv(dir); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	cfg := &Config{Backend: "file", LogFormat: "text"}
	cfg.ApplyEnv()
	if cfg.Backend != "sqlite" || cfg.LogFormat != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}
