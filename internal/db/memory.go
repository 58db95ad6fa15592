package db

import (
	"sync"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/snapshot"
)

// MemoryRepository holds the encoded snapshot in memory. It backs
// --ephemeral sessions and tests.
type MemoryRepository struct {
	mu    sync.Mutex
	data  []byte
	saves int

	// SaveErr, when set, is returned by every Save and nothing is stored.
	SaveErr error
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// NewMemoryRepositoryWith returns a repository pre-loaded with raw bytes,
// which need not be a valid snapshot.
func NewMemoryRepositoryWith(data []byte) *MemoryRepository {
	return &MemoryRepository{data: append([]byte(nil), data...)}
}

func (r *MemoryRepository) Load() (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil, ErrNotFound
	}
	return snapshot.Decode(r.data)
}

func (r *MemoryRepository) Save(s *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	data, err := snapshot.Encode(s)
	if err != nil {
		return err
	}
	r.data = data
	r.saves++
	return nil
}

// Bytes returns a copy of the stored blob.
func (r *MemoryRepository) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]byte(nil), r.data...)
}

// Saves returns how many saves succeeded.
func (r *MemoryRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *MemoryRepository) Close() error {
	return nil
}
