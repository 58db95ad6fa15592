package dashboard

import (
	"time"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/query"
	"github.com/marcus/nexaflow/internal/report"
	"github.com/marcus/nexaflow/internal/store"
)

// openStatuses are the task states listed in the tasks panel.
var openStatuses = []models.TaskStatus{
	models.TaskStatusTodo,
	models.TaskStatusInProgress,
	models.TaskStatusReview,
}

// FetchData reads everything the dashboard renders from s.
func FetchData(s *store.Store) RefreshDataMsg {
	snap := s.Snapshot()
	today := s.Today()

	tasks := query.Tasks(snap.Tasks, query.TaskFilter{Statuses: openStatuses})
	// due and priority are fixed keys; SortTasks only fails on unknown ones
	_ = query.SortTasks(tasks, query.SortPriority, true)
	_ = query.SortTasks(tasks, query.SortDue, false)

	return RefreshDataMsg{
		Tasks:         tasks,
		Notifications: s.Notifications(),
		Unread:        s.UnreadCount(),
		Goals:         query.Goals(snap.Goals, models.GoalStatusActive),
		Timer:         snap.TimerState,
		User:          snap.User,
		Stats:         report.Compute(snap, today),
		Today:         today,
		Timestamp:     time.Now(),
	}
}
