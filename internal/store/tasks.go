package store

import (
	"fmt"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
)

func validateTaskEnums(p *models.TaskPriority, st *models.TaskStatus) error {
	if p != nil && !models.IsValidTaskPriority(*p) {
		return invalid("priority", "%q is not one of low, medium, high, urgent", *p)
	}
	if st != nil && !models.IsValidTaskStatus(*st) {
		return invalid("status", "%q is not one of todo, in-progress, review, completed", *st)
	}
	return nil
}

// AddTask creates a task and a "New task created" notification.
func (s *Store) AddTask(in models.TaskInput) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, invalid("title", "is required")
	}
	if in.Priority == "" {
		in.Priority = models.TaskPriorityMedium
	}
	if in.Status == "" {
		in.Status = models.TaskStatusTodo
	}
	if err := validateTaskEnums(&in.Priority, &in.Status); err != nil {
		return models.Task{}, err
	}

	var task models.Task
	err := s.mutate(func(st *models.Snapshot) (bool, error) {
		task = models.Task{
			ID:          s.ids.next(),
			Title:       title,
			Description: in.Description,
			Priority:    in.Priority,
			Status:      in.Status,
			Assignee:    in.Assignee,
			DueDate:     in.DueDate.Clone(),
			CreatedAt:   s.stamp(),
		}
		st.Tasks = append(st.Tasks, task)
		s.pushNotificationLocked(st, models.NotificationInput{
			Type:    "task",
			Title:   "New task created",
			Message: fmt.Sprintf("Task \"%s\" has been created", title),
			Icon:    "CheckSquare",
		})
		s.logChange("created", "task", task.ID)
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	task.DueDate = task.DueDate.Clone()
	return task, nil
}

// UpdateTask merges patch into the task with id. An unknown id is a no-op.
func (s *Store) UpdateTask(id int64, patch models.TaskPatch) error {
	if err := validateTaskEnums(patch.Priority, patch.Status); err != nil {
		return err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return invalid("title", "cannot be empty")
	}
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		i := indexOf(st.Tasks, func(t models.Task) bool { return t.ID == id })
		if i < 0 {
			return false, nil
		}
		t := &st.Tasks[i]
		if patch.Title != nil {
			t.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Assignee != nil {
			t.Assignee = *patch.Assignee
		}
		if patch.DueDate != nil {
			t.DueDate = patch.DueDate.Clone()
		}
		if patch.ClearDueDate {
			t.DueDate = nil
		}
		s.logChange("updated", "task", id)
		return true, nil
	})
}

// DeleteTask removes the task with id. Deleting twice is harmless.
func (s *Store) DeleteTask(id int64) error {
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		var removed bool
		st.Tasks, removed = removeWhere(st.Tasks, func(t models.Task) bool { return t.ID == id })
		if removed {
			s.logChange("deleted", "task", id)
		}
		return removed, nil
	})
}

// Tasks returns all tasks in insertion order.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&models.Snapshot{Tasks: s.state.Tasks}).Clone().Tasks
}

// Task returns the task with id.
func (s *Store) Task(id int64) (models.Task, bool) {
	for _, t := range s.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func removeWhere[T any](items []T, match func(T) bool) ([]T, bool) {
	out := items[:0]
	removed := false
	for _, item := range items {
		if match(item) {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
