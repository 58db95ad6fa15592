package store

import (
	"errors"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/timer"
)

// Timer returns the current stopwatch state.
func (s *Store) Timer() models.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TimerState
}

func (s *Store) applyTimer(fn func(models.TimerState) (models.TimerState, error)) error {
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		next, err := fn(st.TimerState)
		if err != nil {
			return false, timerError(err)
		}
		if next == st.TimerState {
			return false, nil
		}
		st.TimerState = next
		return true, nil
	})
}

func timerError(err error) error {
	switch {
	case errors.Is(err, timer.ErrEmptyLabel):
		return &ValidationError{Field: "activity", Reason: "is required", Err: err}
	case errors.Is(err, timer.ErrNotPaused):
		return &ValidationError{Field: "timer", Reason: "is not paused", Err: err}
	case errors.Is(err, timer.ErrNegative):
		return &ValidationError{Field: "seconds", Reason: "cannot be negative", Err: err}
	}
	return err
}

// StartTimer runs the stopwatch on label. From Paused it relabels and keeps
// the elapsed seconds.
func (s *Store) StartTimer(label string) error {
	return s.applyTimer(func(t models.TimerState) (models.TimerState, error) {
		return timer.Start(t, label)
	})
}

// ResumeTimer continues a paused stopwatch with its label.
func (s *Store) ResumeTimer() error {
	return s.applyTimer(timer.Resume)
}

// PauseTimer stops counting but keeps seconds and label.
func (s *Store) PauseTimer() error {
	return s.applyTimer(func(t models.TimerState) (models.TimerState, error) {
		return timer.Pause(t), nil
	})
}

// StopTimer resets the stopwatch to idle.
func (s *Store) StopTimer() error {
	return s.applyTimer(func(t models.TimerState) (models.TimerState, error) {
		return timer.Stop(t), nil
	})
}

// TickTimer adds one second while running. Hosts call it once per second.
func (s *Store) TickTimer() error {
	return s.applyTimer(func(t models.TimerState) (models.TimerState, error) {
		return timer.Tick(t), nil
	})
}

// UpdateTimer overwrites the elapsed seconds.
func (s *Store) UpdateTimer(seconds int) error {
	return s.applyTimer(func(t models.TimerState) (models.TimerState, error) {
		return timer.Set(t, seconds)
	})
}
