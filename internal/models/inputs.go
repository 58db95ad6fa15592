package models

// TaskInput holds the caller-supplied fields of a new task.
// Empty Priority and Status take their defaults.
type TaskInput struct {
	Title       string
	Description string
	Priority    TaskPriority
	Status      TaskStatus
	Assignee    string
	DueDate     *Date
}

// TaskPatch is a shallow partial update; nil fields are left alone.
// ClearDueDate removes the due date.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *TaskPriority
	Status       *TaskStatus
	Assignee     *string
	DueDate      *Date
	ClearDueDate bool
}

// ProjectInput holds the fields of a new project. Either Name or Title is
// required; the other mirrors it. The same applies to DueDate and EndDate.
type ProjectInput struct {
	Name        string
	Title       string
	Description string
	Priority    ProjectPriority
	Progress    int
	Team        []string
	DueDate     *Date
	EndDate     *Date
	Status      ProjectStatus
}

// ProjectPatch is a shallow partial update of a project.
type ProjectPatch struct {
	Name        *string
	Title       *string
	Description *string
	Priority    *ProjectPriority
	Progress    *int
	Team        []string // nil leaves the team unchanged
	DueDate     *Date
	EndDate     *Date
	Status      *ProjectStatus
}

// EventInput holds the fields of a new event. A zero Date means today.
type EventInput struct {
	Title       string
	Description string
	Date        Date
	Time        string
	Type        EventType
}

// EventPatch is a shallow partial update of an event.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *Date
	Time        *string
	Type        *EventType
}

// GoalInput holds the fields of a new goal.
type GoalInput struct {
	Title       string
	Description string
	Target      int
	Current     int
	Deadline    *Date
	Status      GoalStatus
}

// GoalPatch is a shallow partial update of a goal.
type GoalPatch struct {
	Title       *string
	Description *string
	Target      *int
	Current     *int
	Deadline    *Date
	Status      *GoalStatus
}

// NotificationInput is an explicit notification appended by a caller.
type NotificationInput struct {
	Type    string
	Title   string
	Message string
	Icon    string
}

// Ptr returns a pointer to v. Used to build patches.
func Ptr[T any](v T) *T {
	return &v
}
