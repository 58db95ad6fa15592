package store

import (
	"fmt"
	"strings"

	"github.com/marcus/nexaflow/internal/models"
)

func validateProjectEnums(p *models.ProjectPriority, st *models.ProjectStatus) error {
	if p != nil && !models.IsValidProjectPriority(*p) {
		return invalid("priority", "%q is not one of low, medium, high", *p)
	}
	if st != nil && !models.IsValidProjectStatus(*st) {
		return invalid("status", "%q is not one of planning, active, completed, on-hold", *st)
	}
	return nil
}

// AddProject creates a project and a "New project created" notification.
// Name and Title mirror each other when only one is given, as do DueDate
// and EndDate.
func (s *Store) AddProject(in models.ProjectInput) (models.Project, error) {
	name := strings.TrimSpace(in.Name)
	title := strings.TrimSpace(in.Title)
	if name == "" {
		name = title
	}
	if title == "" {
		title = name
	}
	if name == "" {
		return models.Project{}, invalid("name", "is required")
	}
	if in.Priority == "" {
		in.Priority = models.ProjectPriorityMedium
	}
	if in.Status == "" {
		in.Status = models.ProjectStatusPlanning
	}
	if err := validateProjectEnums(&in.Priority, &in.Status); err != nil {
		return models.Project{}, err
	}
	due, end := in.DueDate, in.EndDate
	if due == nil {
		due = end
	}
	if end == nil {
		end = due
	}
	team := []string{}
	if in.Team != nil {
		team = append(team, in.Team...)
	}

	var project models.Project
	err := s.mutate(func(st *models.Snapshot) (bool, error) {
		project = models.Project{
			ID:          s.ids.next(),
			Name:        name,
			Title:       title,
			Description: in.Description,
			Priority:    in.Priority,
			Progress:    in.Progress,
			Team:        team,
			DueDate:     due.Clone(),
			EndDate:     end.Clone(),
			Status:      in.Status,
			CreatedAt:   s.stamp(),
		}
		st.Projects = append(st.Projects, project)
		s.pushNotificationLocked(st, models.NotificationInput{
			Type:    "project",
			Title:   "New project created",
			Message: fmt.Sprintf("Project \"%s\" has been created", name),
			Icon:    "FolderKanban",
		})
		s.logChange("created", "project", project.ID)
		return true, nil
	})
	if err != nil {
		return models.Project{}, err
	}
	return s.projectCopy(project), nil
}

func (s *Store) projectCopy(p models.Project) models.Project {
	return (&models.Snapshot{Projects: []models.Project{p}}).Clone().Projects[0]
}

// UpdateProject merges patch into the project with id. Progress is stored
// as given, without clamping.
func (s *Store) UpdateProject(id int64, patch models.ProjectPatch) error {
	if err := validateProjectEnums(patch.Priority, patch.Status); err != nil {
		return err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return invalid("name", "cannot be empty")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return invalid("title", "cannot be empty")
	}
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		i := indexOf(st.Projects, func(p models.Project) bool { return p.ID == id })
		if i < 0 {
			return false, nil
		}
		p := &st.Projects[i]
		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Title != nil {
			p.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Priority != nil {
			p.Priority = *patch.Priority
		}
		if patch.Progress != nil {
			p.Progress = *patch.Progress
		}
		if patch.Team != nil {
			p.Team = append([]string{}, patch.Team...)
		}
		if patch.DueDate != nil {
			p.DueDate = patch.DueDate.Clone()
		}
		if patch.EndDate != nil {
			p.EndDate = patch.EndDate.Clone()
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		s.logChange("updated", "project", id)
		return true, nil
	})
}

// DeleteProject removes the project with id. Tasks are not touched.
func (s *Store) DeleteProject(id int64) error {
	return s.mutate(func(st *models.Snapshot) (bool, error) {
		var removed bool
		st.Projects, removed = removeWhere(st.Projects, func(p models.Project) bool { return p.ID == id })
		if removed {
			s.logChange("deleted", "project", id)
		}
		return removed, nil
	})
}

// Projects returns all projects in insertion order.
func (s *Store) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&models.Snapshot{Projects: s.state.Projects}).Clone().Projects
}

// Project returns the project with id.
func (s *Store) Project(id int64) (models.Project, bool) {
	for _, p := range s.Projects() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}
