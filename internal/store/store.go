// Package store is the single in-memory application state for tasks,
// projects, events, goals, notifications, the user profile and the timer.
// Every mutation validates its input, transforms the state, saves the whole
// snapshot through a db.Repository and then notifies subscribers.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marcus/nexaflow/internal/db"
	"github.com/marcus/nexaflow/internal/logging"
	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/snapshot"
)

// DefaultDeadlineWindow is the number of days ahead a due date produces a
// derived deadline notification.
const DefaultDeadlineWindow = 2

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now. Tests use it for deterministic deadlines.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for persistence failures and reloads.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDeadlineWindow sets how many days ahead deadlines are reported.
func WithDeadlineWindow(days int) Option {
	return func(s *Store) {
		if days >= 0 {
			s.window = days
		}
	}
}

// Store owns the application state.
type Store struct {
	mu     sync.Mutex
	repo   db.Repository
	state  *models.Snapshot
	ids    idGenerator
	now    func() time.Time
	log    *slog.Logger
	window int

	persistErr error
	closed     bool
	done       chan struct{}

	subs    map[int]func(models.Snapshot)
	nextSub int
}

// Open loads the snapshot from repo. A missing or malformed snapshot
// falls back to the seed state; any other load error is returned.
func Open(repo db.Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo:   repo,
		now:    time.Now,
		log:    logging.Discard(),
		window: DefaultDeadlineWindow,
		done:   make(chan struct{}),
		subs:   make(map[int]func(models.Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids.now = s.now

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	s.state = state
	s.ids.observe(state.MaxID())
	return s, nil
}

func (s *Store) load() (*models.Snapshot, error) {
	state, err := s.repo.Load()
	switch {
	case err == nil:
		return state, nil
	case errors.Is(err, db.ErrNotFound):
		s.log.Debug("no stored snapshot, starting from seed")
		return snapshot.Seed(s.now()), nil
	case errors.Is(err, db.ErrMalformed):
		s.log.Warn("stored snapshot unreadable, starting from seed", logging.Err(err))
		return snapshot.Seed(s.now()), nil
	default:
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
}

// stamp is the creation time recorded on new records.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Store) today() models.Date {
	return models.Today(s.now())
}

// Today returns the current date on the store's clock.
func (s *Store) Today() models.Date {
	return s.today()
}

// mutate runs fn under the lock. fn validates before touching st and
// reports whether it changed anything; unchanged state is not saved.
func (s *Store) mutate(fn func(st *models.Snapshot) (bool, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	changed, err := fn(s.state)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	s.persistLocked()
	notify := s.snapshotForSubscribersLocked()
	s.mu.Unlock()

	notify()
	return nil
}

func (s *Store) persistLocked() {
	if err := s.repo.Save(s.state); err != nil {
		s.persistErr = err
		s.log.Error("snapshot not persisted, keeping in-memory state", logging.Err(err))
		return
	}
	s.persistErr = nil
}

// logChange records a committed mutation. Called under the lock.
func (s *Store) logChange(action, kind string, id int64) {
	s.log.Debug(kind+" "+action, logging.Entity(kind), logging.ID(id))
}

// snapshotForSubscribersLocked captures the subscriber list and a copy of
// the state so the callbacks can run after the lock is released.
func (s *Store) snapshotForSubscribersLocked() func() {
	if len(s.subs) == 0 {
		return func() {}
	}
	fns := make([]func(models.Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	state := s.state.Clone()
	return func() {
		for _, fn := range fns {
			fn(*state.Clone())
		}
	}
}

// PersistErr returns the error of the most recent failed save, or nil once
// a later save succeeds.
func (s *Store) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// Flush saves the current state even when nothing changed. Unlike the
// implicit save of a mutation, its error is returned.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.repo.Save(s.state); err != nil {
		s.persistErr = err
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.persistErr = nil
	return nil
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive a copy of the state after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(models.Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Done is closed when the store is closed.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

// Reload replaces the in-memory state with what the repository holds now.
// Used when another process has written the snapshot.
func (s *Store) Reload() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	state, err := s.load()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = state
	s.ids.observe(state.MaxID())
	s.log.Debug("snapshot reloaded")
	notify := s.snapshotForSubscribersLocked()
	s.mu.Unlock()

	notify()
	return nil
}

// Close detaches all subscribers and closes the repository. Further
// mutations return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.subs = nil
	close(s.done)
	s.mu.Unlock()
	return s.repo.Close()
}
