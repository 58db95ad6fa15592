package db

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/snapshot"
)

// FileRepository stores the snapshot as a JSON file. Writes go to a temp
// file that is renamed over the target, so a failed save leaves the
// previous snapshot intact.
type FileRepository struct {
	dir  string
	path string

	mu      sync.Mutex
	lastSum [sha256.Size]byte
	hasSum  bool
}

// NewFileRepository stores state.json inside dir.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{
		dir:  dir,
		path: filepath.Join(dir, stateFile),
	}
}

// Path returns the snapshot file path.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and decodes the snapshot file.
func (r *FileRepository) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	r.remember(data)
	return snapshot.Decode(data)
}

// Save encodes s and atomically replaces the snapshot file.
func (r *FileRepository) Save(s *models.Snapshot) error {
	data, err := snapshot.Encode(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	lock := newFileLock(filepath.Join(r.dir, lockFileName))
	if err := lock.acquire(defaultTimeout); err != nil {
		return err
	}
	defer lock.release()

	tmp, err := os.CreateTemp(r.dir, "state-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	r.remember(data)
	return nil
}

// Stale reports whether the file on disk differs from what this
// repository last loaded or saved, i.e. another process wrote it.
func (r *FileRepository) Stale() (bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	sum := sha256.Sum256(data)

	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.hasSum || sum != r.lastSum, nil
}

func (r *FileRepository) remember(data []byte) {
	sum := sha256.Sum256(data)
	r.mu.Lock()
	r.lastSum = sum
	r.hasSum = true
	r.mu.Unlock()
}

// Close is a no-op; the file is opened per operation.
func (r *FileRepository) Close() error {
	return nil
}
