// Package report computes dashboard statistics and CSV exports from a
// snapshot.
package report

import (
	"math"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/query"
)

// Stats summarises a snapshot for the dashboard and the stats command.
type Stats struct {
	Tasks          int                          `json:"tasks"`
	TasksByStatus  map[models.TaskStatus]int    `json:"tasksByStatus"`
	CompletionRate int                          `json:"completionRate"` // percent of tasks completed
	Overdue        int                          `json:"overdue"`
	Projects       int                          `json:"projects"`
	ByProject      map[models.ProjectStatus]int `json:"projectsByStatus"`
	Events         int                          `json:"events"`
	UpcomingEvents int                          `json:"upcomingEvents"` // today or later
	Goals          int                          `json:"goals"`
	GoalProgress   int                          `json:"avgGoalProgress"` // mean of Goal.Progress
	TimerSeconds   int                          `json:"timerSeconds"`
}

// Compute derives Stats from snap as of today.
func Compute(snap *models.Snapshot, today models.Date) Stats {
	st := Stats{
		Tasks:         len(snap.Tasks),
		TasksByStatus: make(map[models.TaskStatus]int),
		Projects:      len(snap.Projects),
		ByProject:     make(map[models.ProjectStatus]int),
		Events:        len(snap.Events),
		Goals:         len(snap.Goals),
		TimerSeconds:  snap.ElapsedSeconds,
	}
	for _, t := range snap.Tasks {
		st.TasksByStatus[t.Status]++
		if query.IsOverdue(t, today) {
			st.Overdue++
		}
	}
	if st.Tasks > 0 {
		done := st.TasksByStatus[models.TaskStatusCompleted]
		st.CompletionRate = int(math.Round(float64(done) / float64(st.Tasks) * 100))
	}
	for _, p := range snap.Projects {
		st.ByProject[p.Status]++
	}
	for _, e := range snap.Events {
		if !e.Date.Before(today) {
			st.UpcomingEvents++
		}
	}
	if st.Goals > 0 {
		sum := 0
		for _, g := range snap.Goals {
			sum += g.Progress()
		}
		st.GoalProgress = int(math.Round(float64(sum) / float64(st.Goals)))
	}
	return st
}
