// Package query filters, sorts and searches the entity collections for
// list views. It works on copies handed out by the store.
package query

import (
	"sort"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
)

// TaskFilter selects tasks. Zero fields match everything.
type TaskFilter struct {
	Statuses   []models.TaskStatus
	Priorities []models.TaskPriority
	Assignee   string // case-insensitive substring
	Overdue    bool   // due before Today and not completed
	DueWithin  int    // >0: due between Today and Today+DueWithin
	Today      models.Date
}

// Match reports whether t passes the filter.
func (f TaskFilter) Match(t models.Task) bool {
	if len(f.Statuses) > 0 && !contains(f.Statuses, t.Status) {
		return false
	}
	if len(f.Priorities) > 0 && !contains(f.Priorities, t.Priority) {
		return false
	}
	if f.Assignee != "" && !strings.Contains(strings.ToLower(t.Assignee), strings.ToLower(f.Assignee)) {
		return false
	}
	if f.Overdue && !IsOverdue(t, f.Today) {
		return false
	}
	if f.DueWithin > 0 {
		if t.DueDate == nil {
			return false
		}
		days := f.Today.DaysUntil(*t.DueDate)
		if days < 0 || days > f.DueWithin {
			return false
		}
	}
	return true
}

// IsOverdue reports whether an open task's due date has passed.
func IsOverdue(t models.Task, today models.Date) bool {
	return t.DueDate != nil && t.Status != models.TaskStatusCompleted && t.DueDate.Before(today)
}

// Tasks returns the tasks matching f, keeping their order.
func Tasks(tasks []models.Task, f TaskFilter) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Projects returns projects whose status is one of statuses, or all of
// them when statuses is empty.
func Projects(projects []models.Project, statuses ...models.ProjectStatus) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if len(statuses) == 0 || contains(statuses, p.Status) {
			out = append(out, p)
		}
	}
	return out
}

// EventsBetween returns events dated from..to inclusive, sorted by date.
// A zero bound is open.
func EventsBetween(events []models.Event, from, to models.Date) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && to.Before(e.Date) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Goals returns goals whose status is one of statuses, or all of them.
func Goals(goals []models.Goal, statuses ...models.GoalStatus) []models.Goal {
	out := make([]models.Goal, 0, len(goals))
	for _, g := range goals {
		if len(statuses) == 0 || contains(statuses, g.Status) {
			out = append(out, g)
		}
	}
	return out
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
