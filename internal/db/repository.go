// Package db implements durable snapshot storage. Every backend stores the
// whole state as one blob and decodes it through the snapshot package.
package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/snapshot"
)

// StateDir is the per-workspace directory holding state and config.
const StateDir = ".nexaflow"

const (
	stateFile = "state.json"
	sqlFile   = "state.db"
)

var (
	// ErrNotFound means nothing has been stored yet.
	ErrNotFound = errors.New("snapshot not found")
	// ErrMalformed means stored data could not be decoded.
	ErrMalformed = snapshot.ErrMalformed
)

// Repository loads and saves whole snapshots.
type Repository interface {
	// Load returns ErrNotFound when nothing is stored and an error
	// wrapping ErrMalformed when the stored blob cannot be decoded.
	Load() (*models.Snapshot, error)
	// Save replaces the stored snapshot.
	Save(s *models.Snapshot) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// IsValidBackend checks a backend name.
func IsValidBackend(name string) bool {
	switch name {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	}
	return false
}

// Open returns the repository for backend rooted at baseDir/.nexaflow.
func Open(backend, baseDir string) (Repository, error) {
	dir := filepath.Join(baseDir, StateDir)
	switch backend {
	case "", BackendFile:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
		return NewFileRepository(dir), nil
	case BackendSQLite:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
		return OpenSQLite(filepath.Join(dir, sqlFile))
	case BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: file, sqlite, memory)", backend)
	}
}
