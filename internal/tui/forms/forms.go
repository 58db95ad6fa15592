// Package forms holds the interactive prompts used by "task add -i",
// "project add -i" and "user set" when run without flags.
package forms

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/marcus/nexaflow/internal/dateparse"
	"github.com/marcus/nexaflow/internal/models"
)

var (
	errTitleRequired = errors.New("title is required")
	errNameRequired  = errors.New("name is required")
)

func required(err error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return err
		}
		return nil
	}
}

// validateDate accepts an empty string or anything dateparse understands.
func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := dateparse.Parse(s)
	return err
}

func optionalDate(s string, now time.Time) (*models.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := dateparse.ParseFrom(s, now)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// TaskForm binds the fields of a new task
type TaskForm struct {
	Title       string
	Description string
	Priority    string
	Status      string
	Assignee    string
	Due         string // free text, resolved by dateparse
}

// NewTaskForm returns a TaskForm with the store defaults preselected.
func NewTaskForm() *TaskForm {
	return &TaskForm{
		Priority: string(models.TaskPriorityMedium),
		Status:   string(models.TaskStatusTodo),
	}
}

// Form builds the huh form bound to f.
func (f *TaskForm) Form() *huh.Form {
	priorityOptions := []huh.Option[string]{
		huh.NewOption("Low", string(models.TaskPriorityLow)),
		huh.NewOption("Medium", string(models.TaskPriorityMedium)),
		huh.NewOption("High", string(models.TaskPriorityHigh)),
		huh.NewOption("Urgent", string(models.TaskPriorityUrgent)),
	}
	statusOptions := []huh.Option[string]{
		huh.NewOption("To do", string(models.TaskStatusTodo)),
		huh.NewOption("In progress", string(models.TaskStatusInProgress)),
		huh.NewOption("Review", string(models.TaskStatusReview)),
		huh.NewOption("Completed", string(models.TaskStatusCompleted)),
	}

	group := huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&f.Title).
			Placeholder("Task title...").
			Validate(required(errTitleRequired)),
		huh.NewSelect[string]().
			Title("Priority").
			Options(priorityOptions...).
			Value(&f.Priority),
		huh.NewSelect[string]().
			Title("Status").
			Options(statusOptions...).
			Value(&f.Status),
		huh.NewInput().
			Title("Assignee").
			Value(&f.Assignee),
		huh.NewInput().
			Title("Due").
			Value(&f.Due).
			Placeholder("2026-03-01, tomorrow, +3d, fri...").
			Validate(validateDate),
		huh.NewText().
			Title("Description").
			Value(&f.Description).
			Placeholder("Optional description...").
			Lines(3),
	).Title("New Task")

	return huh.NewForm(group).WithTheme(huh.ThemeDracula())
}

// Input converts the bound values, resolving Due relative to now.
func (f *TaskForm) Input(now time.Time) (models.TaskInput, error) {
	due, err := optionalDate(f.Due, now)
	if err != nil {
		return models.TaskInput{}, err
	}
	return models.TaskInput{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Priority:    models.TaskPriority(f.Priority),
		Status:      models.TaskStatus(f.Status),
		Assignee:    strings.TrimSpace(f.Assignee),
		DueDate:     due,
	}, nil
}

// ProjectForm binds the fields of a new project
type ProjectForm struct {
	Name        string
	Description string
	Priority    string
	Status      string
	Team        string // comma-separated
	End         string
}

// NewProjectForm returns a ProjectForm with the store defaults preselected.
func NewProjectForm() *ProjectForm {
	return &ProjectForm{
		Priority: string(models.ProjectPriorityMedium),
		Status:   string(models.ProjectStatusPlanning),
	}
}

// Form builds the huh form bound to f.
func (f *ProjectForm) Form() *huh.Form {
	priorityOptions := []huh.Option[string]{
		huh.NewOption("Low", string(models.ProjectPriorityLow)),
		huh.NewOption("Medium", string(models.ProjectPriorityMedium)),
		huh.NewOption("High", string(models.ProjectPriorityHigh)),
	}
	statusOptions := []huh.Option[string]{
		huh.NewOption("Planning", string(models.ProjectStatusPlanning)),
		huh.NewOption("Active", string(models.ProjectStatusActive)),
		huh.NewOption("On hold", string(models.ProjectStatusOnHold)),
		huh.NewOption("Completed", string(models.ProjectStatusCompleted)),
	}

	group := huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&f.Name).
			Placeholder("Project name...").
			Validate(required(errNameRequired)),
		huh.NewSelect[string]().
			Title("Priority").
			Options(priorityOptions...).
			Value(&f.Priority),
		huh.NewSelect[string]().
			Title("Status").
			Options(statusOptions...).
			Value(&f.Status),
		huh.NewInput().
			Title("Team").
			Value(&f.Team).
			Placeholder("alice, bob, ..."),
		huh.NewInput().
			Title("End date").
			Value(&f.End).
			Validate(validateDate),
		huh.NewText().
			Title("Description").
			Value(&f.Description).
			Lines(3),
	).Title("New Project")

	return huh.NewForm(group).WithTheme(huh.ThemeDracula())
}

// Input converts the bound values, resolving End relative to now.
func (f *ProjectForm) Input(now time.Time) (models.ProjectInput, error) {
	end, err := optionalDate(f.End, now)
	if err != nil {
		return models.ProjectInput{}, err
	}
	return models.ProjectInput{
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		Priority:    models.ProjectPriority(f.Priority),
		Status:      models.ProjectStatus(f.Status),
		Team:        ParseList(f.Team),
		EndDate:     end,
	}, nil
}

// UserForm binds the profile fields
type UserForm struct {
	Name  string
	Email string
	Role  string
}

// NewUserForm prefills the form with u.
func NewUserForm(u models.User) *UserForm {
	return &UserForm{Name: u.Name, Email: u.Email, Role: u.Role}
}

// Form builds the huh form bound to f.
func (f *UserForm) Form() *huh.Form {
	group := huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Value(&f.Name).
			Validate(required(errNameRequired)),
		huh.NewInput().
			Title("Email").
			Value(&f.Email),
		huh.NewInput().
			Title("Role").
			Value(&f.Role),
	).Title("Profile")

	return huh.NewForm(group).WithTheme(huh.ThemeDracula())
}

// User returns the bound profile.
func (f *UserForm) User() models.User {
	return models.User{Name: f.Name, Email: f.Email, Role: f.Role}
}

// ParseList splits a comma-separated string into trimmed, non-empty items.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
