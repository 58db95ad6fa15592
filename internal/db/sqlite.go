package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/snapshot"
	_ "modernc.org/sqlite"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// SQLiteRepository keeps the snapshot blob in a single key/value row.
type SQLiteRepository struct {
	conn *sql.DB
	path string

	mu        sync.Mutex
	lastStamp string // updated_at of the row this repository last read or wrote
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(kvSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteRepository{conn: conn, path: path}, nil
}

// Path returns the database file path.
func (r *SQLiteRepository) Path() string {
	return r.path
}

// Load reads the snapshot row.
func (r *SQLiteRepository) Load() (*models.Snapshot, error) {
	var value, stamp string
	err := r.conn.QueryRow(`SELECT value, updated_at FROM kv WHERE key = ?`, snapshot.StorageKey).Scan(&value, &stamp)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	r.remember(stamp)
	return snapshot.Decode([]byte(value))
}

// Save upserts the whole snapshot row.
func (r *SQLiteRepository) Save(s *models.Snapshot) error {
	data, err := snapshot.Encode(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = r.conn.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, snapshot.StorageKey, string(data), stamp)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	r.remember(stamp)
	return nil
}

func (r *SQLiteRepository) remember(stamp string) {
	r.mu.Lock()
	r.lastStamp = stamp
	r.mu.Unlock()
}

// UpdatedAt returns when the snapshot row was last written.
func (r *SQLiteRepository) UpdatedAt() (time.Time, error) {
	var ts string
	err := r.conn.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, snapshot.StorageKey).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	// stored as RFC 3339 text; the driver's own time encoding does not sort
	return time.Parse(time.RFC3339Nano, ts)
}

// Stale reports whether another connection rewrote the snapshot row
// since this repository last loaded or saved it.
func (r *SQLiteRepository) Stale() (bool, error) {
	ts, err := r.UpdatedAt()
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	stamp := ts.UTC().Format(time.RFC3339Nano)

	r.mu.Lock()
	defer r.mu.Unlock()
	return stamp != r.lastStamp, nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.conn.Close()
}
