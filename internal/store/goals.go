package store

import (
	"strings"

	"github.com/marcus/nexaflow/internal/models"
)

func validateGoal(target, current *int, status *models.GoalStatus) error {
	if target != nil && *target < 0 {
		return invalid("target", "cannot be negative")
	}
	if current != nil && *current < 0 {
		return invalid("current", "cannot be negative")
	}
	if status != nil && !models.IsValidGoalStatus(*status) {
		return invalid("status", "%q is not one of active, completed, paused", *status)
	}
	return nil
}

// AddGoal creates a goal. Goals do not produce a notification.
func (s *Store) AddGoal(in models.GoalInput) (models.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Goal{}, invalid("title", "is required")
	}
	if in.Status == "" {
		in.Status = models.GoalStatusActive
	}
	if err := validateGoal(&in.Target, &in.Current, &in.Status); err != nil {
		return models.Goal{}, err
	}

	var goal models.Goal
	err := s.mutate(func(st *models.Snapshot) (bool, error) {
		goal = models.Goal{
			ID:          s.ids.next(),
			Title:       title,
			Description: in.Description,
			Target:      in.Target,
			Current:     in.Current,
			Deadline:    in.Deadline.Clone(),
			Status:      in.Status,
			CreatedAt:   s.stamp(),
		}
		st.Goals = append(st.Goals, goal)
		s.logChange("created", "goal", goal.ID)
		return true, nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	goal.Deadline = goal.Deadline.Clone()
	return goal, nil
}

// UpdateGoal merges patch into the goal with id.
func (s *Store) UpdateGoal(id int64, patch models.GoalPatch) error {
	if err := validateGoal(patch.Target, patch.Current, patch.Status); err != nil {
		return err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return invalid("title", "cannot be empty")
	}
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		i := indexOf(st.Goals, func(g models.Goal) bool { return g.ID == id })
		if i < 0 {
			return false, nil
		}
		g := &st.Goals[i]
		if patch.Title != nil {
			g.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			g.Description = *patch.Description
		}
		if patch.Target != nil {
			g.Target = *patch.Target
		}
		if patch.Current != nil {
			g.Current = *patch.Current
		}
		if patch.Deadline != nil {
			g.Deadline = patch.Deadline.Clone()
		}
		if patch.Status != nil {
			g.Status = *patch.Status
		}
		s.logChange("updated", "goal", id)
		return true, nil
	})
}

// DeleteGoal removes the goal with id.
func (s *Store) DeleteGoal(id int64) error {
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		var removed bool
		st.Goals, removed = removeWhere(st.Goals, func(g models.Goal) bool { return g.ID == id })
		if removed {
			s.logChange("deleted", "goal", id)
		}
		return removed, nil
	})
}

// Goals returns all goals in insertion order.
func (s *Store) Goals() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&models.Snapshot{Goals: s.state.Goals}).Clone().Goals
}

// Goal returns the goal with id.
func (s *Store) Goal(id int64) (models.Goal, bool) {
	for _, g := range s.Goals() {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}
