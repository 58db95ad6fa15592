package models

import (
	"math"
	"strings"
	"time"
)

// TaskPriority represents task priority
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium" // default
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskStatus represents task status
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ProjectPriority represents project priority
type ProjectPriority string

const (
	ProjectPriorityLow    ProjectPriority = "low"
	ProjectPriorityMedium ProjectPriority = "medium"
	ProjectPriorityHigh   ProjectPriority = "high"
)

// ProjectStatus represents project status
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
)

// EventType represents the kind of calendar event
type EventType string

const (
	EventTypeMeeting  EventType = "meeting"
	EventTypeDeadline EventType = "deadline"
	EventTypeReminder EventType = "reminder"
	EventTypeEvent    EventType = "event"
)

// GoalStatus represents goal status
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
)

// Task is a unit of work
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Assignee    string       `json:"assignee"`
	DueDate     *Date        `json:"dueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Project groups work for a team. Name and Title carry the same value;
// both are kept because older snapshots populate only one of them.
type Project struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    ProjectPriority `json:"priority"`
	Progress    int             `json:"progress"`
	Team        []string        `json:"team"`
	DueDate     *Date           `json:"dueDate"`
	EndDate     *Date           `json:"endDate"`
	Status      ProjectStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DisplayName returns Name, falling back to Title.
func (p Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Title
}

// Deadline returns EndDate, falling back to DueDate.
func (p Project) Deadline() *Date {
	if p.EndDate != nil {
		return p.EndDate
	}
	return p.DueDate
}

// Event is a calendar entry
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        Date      `json:"date"`
	Time        string    `json:"time"` // free text, e.g. "10:00 AM"
	Type        EventType `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Goal tracks a numeric target
type Goal struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Target      int        `json:"target"`
	Current     int        `json:"current"`
	Deadline    *Date      `json:"deadline"`
	Status      GoalStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Progress returns round(current/target*100). A non-positive target yields 0.
func (g Goal) Progress() int {
	if g.Target <= 0 {
		return 0
	}
	return int(math.Round(float64(g.Current) / float64(g.Target) * 100))
}

// User is the profile stored alongside the collections
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TimerPhase is the derived state of the stopwatch
type TimerPhase string

const (
	TimerIdle    TimerPhase = "idle"
	TimerRunning TimerPhase = "running"
	TimerPaused  TimerPhase = "paused"
)

// TimerState is the single global stopwatch. Field names match the
// flat layout of the persisted snapshot.
type TimerState struct {
	IsRunning       bool   `json:"isTimerRunning"`
	ElapsedSeconds  int    `json:"timerSeconds"`
	CurrentActivity string `json:"currentTask"`
}

// Phase derives Idle/Running/Paused from the raw fields.
func (t TimerState) Phase() TimerPhase {
	switch {
	case t.IsRunning:
		return TimerRunning
	case t.ElapsedSeconds == 0 && t.CurrentActivity == "":
		return TimerIdle
	default:
		return TimerPaused
	}
}

// Snapshot is the complete persisted state, saved as one unit.
type Snapshot struct {
	Tasks         []Task                  `json:"tasks"`
	Projects      []Project               `json:"projects"`
	Events        []Event                 `json:"events"`
	Goals         []Goal                  `json:"goals"`
	User          User                    `json:"user"`
	Notifications []PersistedNotification `json:"notifications"`
	TimerState
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Tasks:         make([]Task, len(s.Tasks)),
		Projects:      make([]Project, len(s.Projects)),
		Events:        make([]Event, len(s.Events)),
		Goals:         make([]Goal, len(s.Goals)),
		User:          s.User,
		Notifications: make([]PersistedNotification, len(s.Notifications)),
		TimerState:    s.TimerState,
	}
	for i, t := range s.Tasks {
		t.DueDate = t.DueDate.Clone()
		c.Tasks[i] = t
	}
	for i, p := range s.Projects {
		if p.Team != nil {
			p.Team = append([]string{}, p.Team...)
		}
		p.DueDate = p.DueDate.Clone()
		p.EndDate = p.EndDate.Clone()
		c.Projects[i] = p
	}
	copy(c.Events, s.Events)
	for i, g := range s.Goals {
		g.Deadline = g.Deadline.Clone()
		c.Goals[i] = g
	}
	copy(c.Notifications, s.Notifications)
	return c
}

// MaxID returns the largest id across all collections, including
// persisted notifications.
func (s *Snapshot) MaxID() int64 {
	var max int64
	bump := func(id int64) {
		if id > max {
			max = id
		}
	}
	for _, t := range s.Tasks {
		bump(t.ID)
	}
	for _, p := range s.Projects {
		bump(p.ID)
	}
	for _, e := range s.Events {
		bump(e.ID)
	}
	for _, g := range s.Goals {
		bump(g.ID)
	}
	for _, n := range s.Notifications {
		bump(n.ID)
	}
	return max
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.ReplaceAll(s, " ", "-")
}

// IsValidTaskPriority checks if a task priority is valid
func IsValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// IsValidTaskStatus checks if a task status is valid
func IsValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	}
	return false
}

// IsValidProjectPriority checks if a project priority is valid
func IsValidProjectPriority(p ProjectPriority) bool {
	switch p {
	case ProjectPriorityLow, ProjectPriorityMedium, ProjectPriorityHigh:
		return true
	}
	return false
}

// IsValidProjectStatus checks if a project status is valid
func IsValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

// IsValidEventType checks if an event type is valid
func IsValidEventType(t EventType) bool {
	switch t {
	case EventTypeMeeting, EventTypeDeadline, EventTypeReminder, EventTypeEvent:
		return true
	}
	return false
}

// IsValidGoalStatus checks if a goal status is valid
func IsValidGoalStatus(s GoalStatus) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused:
		return true
	}
	return false
}

// NormalizeTaskStatus accepts "in_progress", "In Progress", "done" and
// "complete" as aliases.
func NormalizeTaskStatus(s string) TaskStatus {
	switch n := normalizeEnum(s); n {
	case "done", "complete":
		return TaskStatusCompleted
	case "in-review":
		return TaskStatusReview
	default:
		return TaskStatus(n)
	}
}

// NormalizeTaskPriority lower-cases and trims; "critical" maps to urgent.
func NormalizeTaskPriority(s string) TaskPriority {
	switch n := normalizeEnum(s); n {
	case "critical":
		return TaskPriorityUrgent
	default:
		return TaskPriority(n)
	}
}

// NormalizeProjectPriority lower-cases and trims.
func NormalizeProjectPriority(s string) ProjectPriority {
	return ProjectPriority(normalizeEnum(s))
}

// NormalizeProjectStatus accepts "on_hold" and "hold".
func NormalizeProjectStatus(s string) ProjectStatus {
	switch n := normalizeEnum(s); n {
	case "hold":
		return ProjectStatusOnHold
	default:
		return ProjectStatus(n)
	}
}

// NormalizeEventType lower-cases and trims.
func NormalizeEventType(s string) EventType {
	return EventType(normalizeEnum(s))
}

// NormalizeGoalStatus lower-cases and trims.
func NormalizeGoalStatus(s string) GoalStatus {
	return GoalStatus(normalizeEnum(s))
}
