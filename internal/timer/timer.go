// Package timer implements the stopwatch as pure transitions over
// models.TimerState. It owns no clock; the host calls Tick once per second.
//
//	Idle    --Start(label)--> Running
//	Running --Pause-->        Paused
//	Paused  --Resume-->       Running (same label, same seconds)
//	Paused  --Start(label)--> Running (new label, same seconds)
//	any     --Stop-->         Idle
package timer

import (
	"errors"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
)

var (
	// ErrEmptyLabel is returned when starting without an activity label.
	ErrEmptyLabel = errors.New("activity label is required")
	// ErrNotPaused is returned by Resume outside the Paused state.
	ErrNotPaused = errors.New("timer is not paused")
	// ErrNegative is returned by Set for a negative value.
	ErrNegative = errors.New("elapsed seconds cannot be negative")
)

// Start enters Running with label, keeping any elapsed seconds.
func Start(s models.TimerState, label string) (models.TimerState, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return s, ErrEmptyLabel
	}
	s.IsRunning = true
	s.CurrentActivity = label
	return s, nil
}

// Resume re-enters Running with the retained label.
func Resume(s models.TimerState) (models.TimerState, error) {
	if s.Phase() != models.TimerPaused {
		return s, ErrNotPaused
	}
	return Start(s, s.CurrentActivity)
}

// Pause leaves Running and keeps seconds and label. No-op otherwise.
func Pause(s models.TimerState) models.TimerState {
	s.IsRunning = false
	return s
}

// Stop resets to Idle from any state. The elapsed time is discarded.
func Stop(models.TimerState) models.TimerState {
	return models.TimerState{}
}

// Tick adds one second while Running. No-op otherwise.
func Tick(s models.TimerState) models.TimerState {
	if s.IsRunning {
		s.ElapsedSeconds++
	}
	return s
}

// Set overwrites the elapsed seconds.
func Set(s models.TimerState, seconds int) (models.TimerState, error) {
	if seconds < 0 {
		return s, ErrNegative
	}
	s.ElapsedSeconds = seconds
	return s, nil
}
