package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/suggest"
)

// Task sort keys.
const (
	SortCreated  = "created"
	SortDue      = "due"
	SortPriority = "priority"
	SortStatus   = "status"
	SortTitle    = "title"
)

// SortKeys lists the accepted task sort keys.
var SortKeys = []string{SortCreated, SortDue, SortPriority, SortStatus, SortTitle}

var priorityRank = map[models.TaskPriority]int{
	models.TaskPriorityLow:    0,
	models.TaskPriorityMedium: 1,
	models.TaskPriorityHigh:   2,
	models.TaskPriorityUrgent: 3,
}

var statusRank = map[models.TaskStatus]int{
	models.TaskStatusTodo:       0,
	models.TaskStatusInProgress: 1,
	models.TaskStatusReview:     2,
	models.TaskStatusCompleted:  3,
}

// SortTasks orders tasks in place by key. Ties keep insertion order.
// Tasks without a due date sort last under "due" in either direction.
func SortTasks(tasks []models.Task, key string, desc bool) error {
	var less func(a, b models.Task) bool
	switch strings.ToLower(key) {
	case "", SortCreated:
		less = func(a, b models.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortDue:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			case desc:
				return b.Before(*a)
			default:
				return a.Before(*b)
			}
		})
		return nil
	case SortPriority:
		less = func(a, b models.Task) bool { return priorityRank[a.Priority] < priorityRank[b.Priority] }
	case SortStatus:
		less = func(a, b models.Task) bool { return statusRank[a.Status] < statusRank[b.Status] }
	case SortTitle:
		less = func(a, b models.Task) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	default:
		if hint := suggest.Hint(key, SortKeys); hint != "" {
			return fmt.Errorf("unknown sort key %q, %s", key, hint)
		}
		return fmt.Errorf("unknown sort key %q (use %s)", key, strings.Join(SortKeys, ", "))
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if desc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
	return nil
}
