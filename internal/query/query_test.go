package query

import (
	"testing"
	"time"

	"github.com/marcus/nexaflow/internal/models"
)

var today = models.MustDate("2026-03-10")

func sampleTasks() []models.Task {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return []models.Task{
		{ID: 1, Title: "Write launch post", Priority: models.TaskPriorityHigh, Status: models.TaskStatusTodo,
			Assignee: "Alex Johnson", DueDate: models.DatePtr(today.AddDays(-2)), CreatedAt: base},
		{ID: 2, Title: "Fix login bug", Priority: models.TaskPriorityUrgent, Status: models.TaskStatusInProgress,
			Assignee: "Sam", DueDate: models.DatePtr(today.AddDays(1)), CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "archive old docs", Priority: models.TaskPriorityLow, Status: models.TaskStatusCompleted,
			DueDate: models.DatePtr(today.AddDays(-5)), CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, Title: "Plan offsite", Priority: models.TaskPriorityMedium, Status: models.TaskStatusReview,
			Assignee: "alex j", CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(tasks []models.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTaskFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter TaskFilter
		want   []int64
	}{
		{"empty matches all", TaskFilter{}, []int64{1, 2, 3, 4}},
		{"status", TaskFilter{Statuses: []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusReview}}, []int64{1, 4}},
		{"priority", TaskFilter{Priorities: []models.TaskPriority{models.TaskPriorityUrgent}}, []int64{2}},
		{"assignee substring", TaskFilter{Assignee: "ALEX"}, []int64{1, 4}},
		{"overdue skips completed", TaskFilter{Overdue: true, Today: today}, []int64{1}},
		{"due within", TaskFilter{DueWithin: 2, Today: today}, []int64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Tasks(sampleTasks(), tt.filter)); !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortTasks(t *testing.T) {
	tests := []struct {
		key  string
		desc bool
		want []int64
	}{
		{"", false, []int64{1, 2, 3, 4}},
		{"created", true, []int64{4, 3, 2, 1}},
		{"priority", true, []int64{2, 1, 4, 3}},
		{"status", false, []int64{1, 2, 4, 3}},
		{"title", false, []int64{3, 2, 4, 1}},
		{"due", false, []int64{3, 1, 2, 4}},
		{"due", true, []int64{2, 1, 3, 4}},
	}
	for _, tt := range tests {
		tasks := sampleTasks()
		if err := SortTasks(tasks, tt.key, tt.desc); err != nil {
			t.Fatalf("SortTasks(%q) error: %v", tt.key, err)
		}
		if got := ids(tasks); !equalIDs(got, tt.want) {
			t.Errorf("SortTasks(%q, desc=%v) = %v, want %v", tt.key, tt.desc, got, tt.want)
		}
	}

	if err := SortTasks(sampleTasks(), "color", false); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestEventsBetween(t *testing.T) {
	events := []models.Event{
		{ID: 1, Date: today.AddDays(3)},
		{ID: 2, Date: today.AddDays(-1)},
		{ID: 3, Date: today},
	}
	got := EventsBetween(events, today, models.Date{})
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("got %+v", got)
	}
	if got := EventsBetween(events, models.Date{}, today); len(got) != 2 || got[0].ID != 2 {
		t.Errorf("upper bound: got %+v", got)
	}
}

func TestProjectsAndGoals(t *testing.T) {
	projects := []models.Project{{ID: 1, Status: models.ProjectStatusActive}, {ID: 2, Status: models.ProjectStatusOnHold}}
	if got := Projects(projects, models.ProjectStatusOnHold); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Projects = %+v", got)
	}
	if got := Projects(projects); len(got) != 2 {
		t.Errorf("Projects() = %d", len(got))
	}
	goals := []models.Goal{{ID: 1, Status: models.GoalStatusPaused}, {ID: 2, Status: models.GoalStatusActive}}
	if got := Goals(goals, models.GoalStatusActive); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Goals = %+v", got)
	}
}

func TestSearch(t *testing.T) {
	snap := &models.Snapshot{
		Tasks:    sampleTasks(),
		Projects: []models.Project{{ID: 10, Name: "Website Redesign", Description: "new landing page"}},
		Events:   []models.Event{{ID: 20, Title: "Launch review"}},
		Goals:    []models.Goal{{ID: 30, Title: "Complete 50 tasks"}},
	}

	hits := Search(snap, "launch")
	if len(hits) < 2 {
		t.Fatalf("hits = %+v", hits)
	}
	kinds := map[Kind]bool{}
	for i, h := range hits {
		kinds[h.Kind] = true
		if i > 0 && h.Score > hits[i-1].Score {
			t.Errorf("hits not ordered by score: %+v", hits)
		}
	}
	if !kinds[KindTask] || !kinds[KindEvent] {
		t.Errorf("expected task and event hits, got %+v", hits)
	}

	if hits := Search(snap, "redesign"); len(hits) == 0 || hits[0].Kind != KindProject || hits[0].ID != 10 {
		t.Errorf("project search = %+v", hits)
	}
	if hits := Search(snap, ""); hits != nil {
		t.Errorf("empty query = %+v", hits)
	}
	if hits := Search(snap, "zzzzqqq"); len(hits) != 0 {
		t.Errorf("nonsense query = %+v", hits)
	}
}
