// Package snapshot owns the persisted state format: the seed state used when
// nothing valid is stored, and the one decode path every backend shares.
package snapshot

import (
	"time"

	"github.com/marcus/nexaflow/internal/models"
)

// StorageKey is the fixed key the snapshot lives under.
const StorageKey = "nexaflow_app_state"

// SeedUser is the profile used when a snapshot carries none.
var SeedUser = models.User{
	Name:  "Alex Johnson",
	Email: "alex@nexaflow.com",
	Role:  "Product Manager",
}

// Seed returns the default state for a fresh workspace.
func Seed(now time.Time) *models.Snapshot {
	now = now.UTC().Truncate(time.Millisecond)
	return &models.Snapshot{
		Tasks: []models.Task{
			{
				ID:          1,
				Title:       "Update user interface design",
				Description: "Redesign the main dashboard for better user experience",
				Priority:    models.TaskPriorityHigh,
				Status:      models.TaskStatusInProgress,
				Assignee:    "Alex Johnson",
				DueDate:     models.DatePtr(models.MustDate("2024-01-25")),
				CreatedAt:   now,
			},
			{
				ID:          2,
				Title:       "Review marketing proposals",
				Description: "Evaluate Q1 marketing strategies and proposals",
				Priority:    models.TaskPriorityMedium,
				Status:      models.TaskStatusTodo,
				Assignee:    "Sarah Williams",
				DueDate:     models.DatePtr(models.MustDate("2024-01-30")),
				CreatedAt:   now,
			},
		},
		Projects: []models.Project{
			{
				ID:          1,
				Name:        "Website Redesign",
				Title:       "Website Redesign",
				Description: "Complete overhaul of company website",
				Priority:    models.ProjectPriorityHigh,
				Progress:    75,
				Team:        []string{"Alex Johnson", "Sarah Williams"},
				DueDate:     models.DatePtr(models.MustDate("2024-02-15")),
				EndDate:     models.DatePtr(models.MustDate("2024-02-15")),
				Status:      models.ProjectStatusActive,
				CreatedAt:   now,
			},
		},
		Events: []models.Event{
			{
				ID:          1,
				Title:       "Team Meeting",
				Description: "Weekly team sync",
				Date:        models.DateOf(now),
				Time:        "10:00 AM",
				Type:        models.EventTypeMeeting,
				CreatedAt:   now,
			},
		},
		Goals: []models.Goal{
			{
				ID:          1,
				Title:       "Complete 50 Tasks",
				Description: "Finish 50 tasks this month",
				Target:      50,
				Current:     32,
				Deadline:    models.DatePtr(models.MustDate("2024-01-31")),
				Status:      models.GoalStatusActive,
				CreatedAt:   now,
			},
		},
		User:          SeedUser,
		Notifications: []models.PersistedNotification{},
	}
}
