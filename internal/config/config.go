// Package config reads and writes the per-workspace settings file and
// applies environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/marcus/nexaflow/internal/db"
	"github.com/marcus/nexaflow/internal/logging"
	"github.com/marcus/nexaflow/internal/suggest"
)

const (
	configFile = "config.json"
	lockFile   = "config.json.lock"
	envFile    = ".env"
)

// DefaultDeadlineWindow is used when the config does not set one.
const DefaultDeadlineWindow = 2

// Environment variables that override the file.
const (
	EnvBackend   = "NEXAFLOW_BACKEND"
	EnvLogLevel  = "NEXAFLOW_LOG_LEVEL"
	EnvLogFormat = "NEXAFLOW_LOG_FORMAT"
)

// Config is the contents of .nexaflow/config.json.
type Config struct {
	Backend            string `json:"backend,omitempty"`
	LogLevel           string `json:"log_level,omitempty"`
	LogFormat          string `json:"log_format,omitempty"`
	DeadlineWindowDays *int   `json:"deadline_window_days,omitempty"`
	TaskSort           string `json:"task_sort,omitempty"`
}

// DeadlineWindow returns the configured window or the default.
func (c *Config) DeadlineWindow() int {
	if c.DeadlineWindowDays == nil || *c.DeadlineWindowDays < 0 {
		return DefaultDeadlineWindow
	}
	return *c.DeadlineWindowDays
}

// BackendName returns the configured backend or the file backend.
func (c *Config) BackendName() string {
	if c.Backend == "" {
		return db.BackendFile
	}
	return c.Backend
}

func configPath(baseDir string) string {
	return filepath.Join(baseDir, db.StateDir, configFile)
}

// Load reads the config from disk. A missing file yields defaults.
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(configPath(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return &cfg, nil
}

// Save writes the config using atomic write (temp file + rename).
func Save(baseDir string, cfg *Config) error {
	path := configPath(baseDir)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// Update loads, modifies and saves the config under the config lock.
func Update(baseDir string, fn func(*Config) error) error {
	if err := os.MkdirAll(filepath.Join(baseDir, db.StateDir), 0755); err != nil {
		return err
	}
	return db.WithLock(filepath.Join(baseDir, db.StateDir, lockFile), func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		if err := fn(cfg); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// Keys lists the settable keys in a stable order.
func Keys() []string {
	keys := []string{"backend", "log_level", "log_format", "deadline_window_days", "task_sort"}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend":
		return c.BackendName(), nil
	case "log_level":
		return logging.ParseLevel(c.LogLevel).String(), nil
	case "log_format":
		if c.LogFormat == "" {
			return "text", nil
		}
		return c.LogFormat, nil
	case "deadline_window_days":
		return strconv.Itoa(c.DeadlineWindow()), nil
	case "task_sort":
		return c.TaskSort, nil
	}
	return "", unknownKey(key)
}

func unknownKey(key string) error {
	if hint := suggest.Hint(key, Keys()); hint != "" {
		return fmt.Errorf("unknown config key %q, %s", key, hint)
	}
	return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
}

// Set validates and assigns key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "backend":
		if !db.IsValidBackend(value) {
			return fmt.Errorf("invalid backend %q (use file, sqlite or memory)", value)
		}
		c.Backend = value
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("invalid log level %q", value)
		}
		c.LogLevel = strings.ToLower(value)
	case "log_format":
		if value != "text" && value != "json" {
			return fmt.Errorf("invalid log format %q (use text or json)", value)
		}
		c.LogFormat = value
	case "deadline_window_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("deadline_window_days must be a non-negative integer")
		}
		c.DeadlineWindowDays = &n
	case "task_sort":
		c.TaskSort = value
	default:
		return unknownKey(key)
	}
	return nil
}

// LoadEnv reads baseDir/.env into the process environment without
// overriding variables that are already set. A missing file is fine.
func LoadEnv(baseDir string) error {
	path := filepath.Join(baseDir, envFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

// ApplyEnv overlays NEXAFLOW_* variables onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
}
