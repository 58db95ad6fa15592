package output

import (
	"strings"
	"testing"
	"time"

	"github.com/marcus/nexaflow/internal/models"
)

var today = models.MustDate("2026-03-10")

func TestFormatTimeAgo(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{1 * time.Minute, "1m ago"},
		{59 * time.Minute, "59m ago"},
		{1 * time.Hour, "1h ago"},
		{23 * time.Hour, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{6 * 24 * time.Hour, "6d ago"},
	}
	for _, tc := range tests {
		if got := FormatTimeAgo(time.Now().Add(-tc.ago)); got != tc.want {
			t.Errorf("FormatTimeAgo(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}

	old := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatTimeAgo(old); got != "2024-01-15" {
		t.Errorf("FormatTimeAgo(old) = %q", got)
	}
}

func TestFormatDue(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "due today"},
		{1, "due tomorrow"},
		{5, "due in 5d"},
		{-2, "2d overdue"},
	}
	for _, tc := range tests {
		d := today.AddDays(tc.offset)
		if got := FormatDue(&d, today); got != tc.want {
			t.Errorf("FormatDue(%+d) = %q, want %q", tc.offset, got, tc.want)
		}
	}
	if got := FormatDue(nil, today); got != "" {
		t.Errorf("FormatDue(nil) = %q", got)
	}
}

func TestFormatTaskStatus(t *testing.T) {
	for _, s := range []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusReview, models.TaskStatusCompleted, "weird"} {
		if got := FormatTaskStatus(s); !strings.Contains(got, string(s)) {
			t.Errorf("FormatTaskStatus(%q) = %q", s, got)
		}
	}
}

func TestFormatTaskShort(t *testing.T) {
	task := models.Task{
		ID:       42,
		Title:    "Draft spec",
		Priority: models.TaskPriorityHigh,
		Status:   models.TaskStatusTodo,
		Assignee: "Sam",
		DueDate:  models.DatePtr(today.AddDays(-1)),
	}
	got := FormatTaskShort(task, today)
	for _, want := range []string{"42", "[high]", "Draft spec", "1d overdue", "@Sam", "[todo]"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatTaskShort missing %q in %q", want, got)
		}
	}
}

func TestFormatTaskLong(t *testing.T) {
	task := models.Task{ID: 7, Title: "Ship", Priority: models.TaskPriorityMedium, Status: models.TaskStatusReview,
		DueDate: models.DatePtr(today), CreatedAt: time.Now()}
	got := FormatTaskLong(task, today)
	for _, want := range []string{"7: Ship", "[review]", "Priority: medium", "Due: 2026-03-10 (due today)", "Created just now"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatTaskLong missing %q in:\n%s", want, got)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{0, "[░░░░░░░░░░] 0%"},
		{64, "[██████░░░░] 64%"},
		{100, "[██████████] 100%"},
		{140, "[██████████] 140%"},
		{-5, "[░░░░░░░░░░] -5%"},
	}
	for _, tc := range tests {
		if got := ProgressBar(tc.percent, 10); got != tc.want {
			t.Errorf("ProgressBar(%d) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestFormatProjectAndGoal(t *testing.T) {
	p := models.Project{ID: 3, Name: "Launch", Priority: models.ProjectPriorityHigh, Progress: 50,
		Status: models.ProjectStatusActive, EndDate: models.DatePtr(today.AddDays(3)), Team: []string{"a", "b"}}
	if got := FormatProjectShort(p, today); !strings.Contains(got, "Launch") || !strings.Contains(got, "due in 3d") {
		t.Errorf("FormatProjectShort = %q", got)
	}
	if got := FormatProjectLong(p, today); !strings.Contains(got, "Team: a, b") {
		t.Errorf("FormatProjectLong = %q", got)
	}

	g := models.Goal{ID: 9, Title: "Read books", Target: 50, Current: 32, Status: models.GoalStatusActive}
	if got := FormatGoalShort(g); !strings.Contains(got, "32/50") || !strings.Contains(got, "64%") {
		t.Errorf("FormatGoalShort = %q", got)
	}
}

func TestFormatNotification(t *testing.T) {
	persisted := models.PersistedNotification{ID: 5, Title: "New task created", Message: `Task "A" has been created`,
		Time: "Just now", Unread: true}
	got := FormatNotification(persisted)
	if !strings.Contains(got, "●") || !strings.Contains(got, "New task created") {
		t.Errorf("unread persisted = %q", got)
	}
	persisted.Unread = false
	if got := FormatNotification(persisted); strings.Contains(got, "●") {
		t.Errorf("read persisted shows marker: %q", got)
	}
	if !strings.Contains(got, "Just now") {
		t.Errorf("label without timestamp = %q", got)
	}
	persisted.CreatedAt = time.Now().Add(-2 * time.Hour)
	if got := FormatNotification(persisted); !strings.Contains(got, "2h ago") {
		t.Errorf("timestamped persisted = %q", got)
	}

	derived := models.DerivedNotification{Source: models.KindTaskDeadline, SourceID: 8, Title: models.DeadlineTitle,
		Message: `Task "B" is due today`, Time: "Due today"}
	if got := FormatNotification(derived); !strings.Contains(got, "task:8") || !strings.Contains(got, "●") {
		t.Errorf("derived = %q", got)
	}
}

func TestFormatDurationAndTimer(t *testing.T) {
	tests := map[int]string{0: "00:00:00", 59: "00:00:59", 61: "00:01:01", 3725: "01:02:05", -3: "00:00:00"}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}

	running := models.TimerState{IsRunning: true, ElapsedSeconds: 65, CurrentActivity: "Focus"}
	if got := FormatTimer(running); !strings.Contains(got, "00:01:05") || !strings.Contains(got, "Focus") {
		t.Errorf("FormatTimer(running) = %q", got)
	}
	if got := FormatTimer(models.TimerState{}); !strings.Contains(got, "idle") {
		t.Errorf("FormatTimer(idle) = %q", got)
	}
}

func TestSectionHeader(t *testing.T) {
	if got := SectionHeader("notifications"); got != "\nNOTIFICATIONS:\n" {
		t.Errorf("SectionHeader = %q", got)
	}
}
