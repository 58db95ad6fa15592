package store

import (
	"testing"
	"time"

	"github.com/marcus/nexaflow/internal/db"
	"github.com/marcus/nexaflow/internal/models"
)

func derived(ns []models.Notification) []models.DerivedNotification {
	var out []models.DerivedNotification
	for _, n := range ns {
		if d, ok := n.(models.DerivedNotification); ok {
			out = append(out, d)
		}
	}
	return out
}

func TestDeadlineWindow(t *testing.T) {
	today := models.DateOf(fixedNow)
	tests := []struct {
		offset int
		want   bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{2, true},
		{3, false},
	}
	for _, tt := range tests {
		s, _ := newTestStore(t)
		s.AddTask(models.TaskInput{Title: "T", DueDate: models.DatePtr(today.AddDays(tt.offset))})
		got := derived(s.Notifications())
		if (len(got) == 1) != tt.want {
			t.Errorf("offset %d: derived = %+v, want present=%v", tt.offset, got, tt.want)
		}
	}
}

func TestDeadlineIgnoresTimeOfDay(t *testing.T) {
	s, _ := newTestStore(t)
	late := fixedNow.Add(14*time.Hour + 59*time.Minute) // 23:59 same day
	s.now = func() time.Time { return late }
	s.AddTask(models.TaskInput{Title: "T", DueDate: models.DatePtr(models.DateOf(fixedNow).AddDays(2))})
	if got := derived(s.Notifications()); len(got) != 1 || got[0].DaysUntil != 2 {
		t.Errorf("derived = %+v", got)
	}
}

func TestProjectDeadlineFallsBackToDueDate(t *testing.T) {
	s, _ := newTestStore(t)
	today := models.DateOf(fixedNow)
	p, _ := s.AddProject(models.ProjectInput{Name: "Launch"})
	s.UpdateProject(p.ID, models.ProjectPatch{DueDate: models.DatePtr(today.AddDays(1))})

	got := derived(s.Notifications())
	if len(got) != 1 {
		t.Fatalf("derived = %+v", got)
	}
	if got[0].Source != models.KindProjectDeadline || got[0].Message != `Project "Launch" is due in 1 days` {
		t.Errorf("got %+v", got[0])
	}
}

func TestDerivedOrderTasksThenProjects(t *testing.T) {
	s, _ := newTestStore(t)
	today := models.DatePtr(models.DateOf(fixedNow))
	s.AddProject(models.ProjectInput{Name: "P", EndDate: today})
	s.AddTask(models.TaskInput{Title: "T1", DueDate: today})
	s.AddTask(models.TaskInput{Title: "T2", DueDate: today, Status: models.TaskStatusCompleted})

	got := derived(s.Notifications())
	if len(got) != 3 {
		t.Fatalf("derived = %d, want 3", len(got))
	}
	if got[0].Source != models.KindTaskDeadline || got[1].Source != models.KindTaskDeadline || got[2].Source != models.KindProjectDeadline {
		t.Errorf("order = %v %v %v", got[0].Source, got[1].Source, got[2].Source)
	}
	if got[0].Message != `Task "T1" is due today` {
		t.Errorf("message = %q", got[0].Message)
	}
}

func TestDeadlineWindowOption(t *testing.T) {
	s, err := Open(db.NewMemoryRepository(), WithClock(fixedClock), WithDeadlineWindow(7))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.AddTask(models.TaskInput{Title: "T", DueDate: models.DatePtr(models.DateOf(fixedNow).AddDays(6))})
	if got := derived(s.Notifications()); len(got) != 1 {
		t.Errorf("derived = %+v", got)
	}
}

func TestTaskDueTomorrowScenario(t *testing.T) {
	s, _ := newTestStore(t)
	task, err := s.AddTask(models.TaskInput{
		Title:   "Draft spec",
		DueDate: models.DatePtr(models.DateOf(fixedNow).AddDays(1)),
	})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	ns := s.Notifications()
	if len(ns) != 2 {
		t.Fatalf("notifications = %d, want 2", len(ns))
	}
	persisted, ok := ns[0].(models.PersistedNotification)
	if !ok || persisted.Message != `Task "Draft spec" has been created` || !persisted.Unread {
		t.Fatalf("head = %+v", ns[0])
	}
	d := derived(ns)
	if len(d) != 1 || d[0].SourceID != task.ID || d[0].Message != `Task "Draft spec" is due in 1 days` {
		t.Fatalf("derived = %+v", d)
	}
	if s.UnreadCount() != 2 {
		t.Errorf("unread = %d, want 2", s.UnreadCount())
	}

	if err := s.MarkNotificationRead(persisted.Key()); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	after := s.Notifications()
	if after[0].Header().Unread {
		t.Error("persisted notification still unread")
	}
	if d := derived(after); len(d) != 1 || !d[0].Header().Unread {
		t.Error("derived notification changed")
	}
	if s.UnreadCount() != 1 {
		t.Errorf("unread = %d, want 1", s.UnreadCount())
	}
}

func TestDerivedKeysAreNoops(t *testing.T) {
	s, repo := newTestStore(t)
	task, _ := s.AddTask(models.TaskInput{Title: "T", DueDate: models.DatePtr(models.DateOf(fixedNow))})
	saves := repo.Saves()
	key := models.NotificationKey{Kind: models.KindTaskDeadline, ID: task.ID}

	if err := s.MarkNotificationRead(key); err != nil {
		t.Fatalf("MarkNotificationRead(derived) = %v", err)
	}
	if err := s.DeleteNotification(key); err != nil {
		t.Fatalf("DeleteNotification(derived) = %v", err)
	}
	if repo.Saves() != saves {
		t.Error("derived key operation saved")
	}
	if len(derived(s.Notifications())) != 1 {
		t.Error("derived notification disappeared")
	}
	// a derived key must not touch the persisted notification that shares no id with it
	if !s.Snapshot().Notifications[0].Unread {
		t.Error("persisted notification marked read")
	}
}

func TestMarkAllAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTask(models.TaskInput{Title: "A"})
	s.AddTask(models.TaskInput{Title: "B"})
	n, err := s.AddNotification(models.NotificationInput{Title: "Heads up", Message: "Server restart"})
	if err != nil {
		t.Fatalf("AddNotification failed: %v", err)
	}
	if n.Type != "info" || n.Icon != "Bell" || n.Time != "Just now" {
		t.Errorf("defaults = %+v", n)
	}

	if err := s.MarkAllNotificationsRead(); err != nil {
		t.Fatalf("MarkAllNotificationsRead failed: %v", err)
	}
	if s.UnreadCount() != 0 {
		t.Errorf("unread = %d", s.UnreadCount())
	}

	if err := s.DeleteNotification(n.Key()); err != nil {
		t.Fatalf("DeleteNotification failed: %v", err)
	}
	if err := s.DeleteNotification(n.Key()); err != nil {
		t.Fatalf("second DeleteNotification failed: %v", err)
	}
	if got := len(s.Snapshot().Notifications); got != 2 {
		t.Errorf("notifications = %d, want 2", got)
	}
}
