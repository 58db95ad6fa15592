package store

import (
	"fmt"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
)

func validateEventType(t *models.EventType) error {
	if t != nil && !models.IsValidEventType(*t) {
		return invalid("type", "%q is not one of meeting, deadline, reminder, event", *t)
	}
	return nil
}

// AddEvent creates an event and a "New event created" notification.
// A zero date schedules it for today.
func (s *Store) AddEvent(in models.EventInput) (models.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Event{}, invalid("title", "is required")
	}
	if in.Type == "" {
		in.Type = models.EventTypeEvent
	}
	if err := validateEventType(&in.Type); err != nil {
		return models.Event{}, err
	}

	var event models.Event
	err := s.mutate(func(st *models.Snapshot) (bool, error) {
		date := in.Date
		if date.IsZero() {
			date = s.today()
		}
		event = models.Event{
			ID:          s.ids.next(),
			Title:       title,
			Description: in.Description,
			Date:        date,
			Time:        in.Time,
			Type:        in.Type,
			CreatedAt:   s.stamp(),
		}
		st.Events = append(st.Events, event)
		s.pushNotificationLocked(st, models.NotificationInput{
			Type:    "event",
			Title:   "New event created",
			Message: fmt.Sprintf("Event \"%s\" has been scheduled", title),
			Icon:    "Calendar",
		})
		s.logChange("created", "event", event.ID)
		return true, nil
	})
	return event, err
}

// UpdateEvent merges patch into the event with id.
func (s *Store) UpdateEvent(id int64, patch models.EventPatch) error {
	if err := validateEventType(patch.Type); err != nil {
		return err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return invalid("title", "cannot be empty")
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return invalid("date", "cannot be empty")
	}
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		i := indexOf(st.Events, func(e models.Event) bool { return e.ID == id })
		if i < 0 {
			return false, nil
		}
		e := &st.Events[i]
		if patch.Title != nil {
			e.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		if patch.Time != nil {
			e.Time = *patch.Time
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		s.logChange("updated", "event", id)
		return true, nil
	})
}

// DeleteEvent removes the event with id.
func (s *Store) DeleteEvent(id int64) error {
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		var removed bool
		st.Events, removed = removeWhere(st.Events, func(e models.Event) bool { return e.ID == id })
		if removed {
			s.logChange("deleted", "event", id)
		}
		return removed, nil
	})
}

// Events returns all events in insertion order.
func (s *Store) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Event{}, s.state.Events...)
}

// Event returns the event with id.
func (s *Store) Event(id int64) (models.Event, bool) {
	for _, e := range s.Events() {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}
