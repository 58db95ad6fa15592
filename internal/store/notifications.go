package store

import (
	"fmt"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/snapshot"
)

// pushNotificationLocked inserts a persisted notification at the head of
// the list.
func (s *Store) pushNotificationLocked(st *models.Snapshot, in models.NotificationInput) models.PersistedNotification {
	n := models.PersistedNotification{
		ID:        s.ids.next(),
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Icon:      in.Icon,
		Time:      snapshot.JustNow,
		Unread:    true,
		CreatedAt: s.stamp(),
	}
	st.Notifications = append([]models.PersistedNotification{n}, st.Notifications...)
	s.logChange("created", "notification", n.ID)
	return n
}

// AddNotification stores an explicit notification at the head of the list.
func (s *Store) AddNotification(in models.NotificationInput) (models.PersistedNotification, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return models.PersistedNotification{}, invalid("title", "is required")
	}
	if in.Type == "" {
		in.Type = "info"
	}
	if in.Icon == "" {
		in.Icon = "Bell"
	}
	var n models.PersistedNotification
	err := s.mutate(func(st *models.Snapshot) (bool, error) {
		n = s.pushNotificationLocked(st, in)
		return true, nil
	})
	return n, err
}

// Notifications returns the persisted notifications, newest first,
// followed by deadline notifications derived from the current tasks and
// projects.
func (s *Store) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.state.Notifications))
	for _, n := range s.state.Notifications {
		out = append(out, n)
	}
	for _, d := range DeriveDeadlines(s.state, s.today(), s.window) {
		out = append(out, d)
	}
	return out
}

// UnreadCount counts unread persisted notifications plus every derived one.
func (s *Store) UnreadCount() int {
	count := 0
	for _, n := range s.Notifications() {
		if n.Header().Unread {
			count++
		}
	}
	return count
}

// DeriveDeadlines computes deadline notifications for tasks, then
// projects, whose due date lies between today and today+window inclusive.
// Dates are compared as calendar days so time of day never matters.
// Completed items are included.
func DeriveDeadlines(st *models.Snapshot, today models.Date, window int) []models.DerivedNotification {
	var out []models.DerivedNotification
	for _, t := range st.Tasks {
		if t.DueDate == nil {
			continue
		}
		if days := today.DaysUntil(*t.DueDate); days >= 0 && days <= window {
			out = append(out, models.DerivedNotification{
				Source:    models.KindTaskDeadline,
				SourceID:  t.ID,
				Title:     models.DeadlineTitle,
				Message:   fmt.Sprintf("Task \"%s\" is due %s", t.Title, dueIn(days)),
				Time:      dueLabel(days),
				DaysUntil: days,
			})
		}
	}
	for _, p := range st.Projects {
		due := p.Deadline()
		if due == nil {
			continue
		}
		if days := today.DaysUntil(*due); days >= 0 && days <= window {
			out = append(out, models.DerivedNotification{
				Source:    models.KindProjectDeadline,
				SourceID:  p.ID,
				Title:     models.DeadlineTitle,
				Message:   fmt.Sprintf("Project \"%s\" is due %s", p.DisplayName(), dueIn(days)),
				Time:      dueLabel(days),
				DaysUntil: days,
			})
		}
	}
	return out
}

func dueIn(days int) string {
	if days == 0 {
		return "today"
	}
	return fmt.Sprintf("in %d days", days)
}

func dueLabel(days int) string {
	if days == 0 {
		return "Due today"
	}
	return "Due " + dueIn(days)
}

// MarkNotificationRead clears the unread flag of a persisted notification.
// Derived notifications cannot be marked read; the call is a no-op for them.
func (s *Store) MarkNotificationRead(key models.NotificationKey) error {
	if key.Derived() {
		return nil
	}
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		i := indexOf(st.Notifications, func(n models.PersistedNotification) bool { return n.ID == key.ID })
		if i < 0 || !st.Notifications[i].Unread {
			return false, nil
		}
		st.Notifications[i].Unread = false
		s.logChange("read", "notification", key.ID)
		return true, nil
	})
}

// MarkAllNotificationsRead clears every persisted unread flag.
func (s *Store) MarkAllNotificationsRead() error {
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		changed := false
		for i := range st.Notifications {
			if st.Notifications[i].Unread {
				st.Notifications[i].Unread = false
				changed = true
			}
		}
		return changed, nil
	})
}

// DeleteNotification removes a persisted notification. Derived
// notifications reappear on every read, so deleting one is a no-op.
func (s *Store) DeleteNotification(key models.NotificationKey) error {
	if key.Derived() {
		return nil
	}
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		var removed bool
		st.Notifications, removed = removeWhere(st.Notifications, func(n models.PersistedNotification) bool {
			return n.ID == key.ID
		})
		if removed {
			s.logChange("deleted", "notification", key.ID)
		}
		return removed, nil
	})
}
