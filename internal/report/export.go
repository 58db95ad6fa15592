package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/nexaflow/internal/models"
)

// Kind selects an export.
type Kind string

const (
	Productivity   Kind = "productivity"
	ProjectSummary Kind = "project_summary"
)

// ParseKind accepts the export names used on the command line.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tasks", "productivity":
		return Productivity, nil
	case "projects", "project_summary", "project-summary":
		return ProjectSummary, nil
	}
	return "", fmt.Errorf("unknown report %q (use tasks or projects)", s)
}

// Filename returns the default file name for k produced on day.
func Filename(k Kind, day models.Date) string {
	switch k {
	case ProjectSummary:
		return "project-summary-" + day.String() + ".csv"
	default:
		return "productivity-report-" + day.String() + ".csv"
	}
}

// WriteCSV writes the k export of snap to w, newest records first.
func WriteCSV(w io.Writer, k Kind, snap *models.Snapshot) error {
	cw := csv.NewWriter(w)
	var rows [][]string
	switch k {
	case Productivity:
		rows = taskRows(snap.Tasks)
	case ProjectSummary:
		rows = projectRows(snap.Projects)
	default:
		return fmt.Errorf("unknown report %q", k)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s report: %w", k, err)
	}
	return nil
}

func taskRows(tasks []models.Task) [][]string {
	tasks = append([]models.Task(nil), tasks...)
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })

	rows := [][]string{{"Title", "Status", "Priority", "Assignee", "Due Date", "Created At"}}
	for _, t := range tasks {
		rows = append(rows, []string{
			t.Title,
			string(t.Status),
			string(t.Priority),
			t.Assignee,
			optionalDate(t.DueDate),
			timestamp(t.CreatedAt),
		})
	}
	return rows
}

func projectRows(projects []models.Project) [][]string {
	projects = append([]models.Project(nil), projects...)
	sort.SliceStable(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })

	rows := [][]string{{"Name", "Status", "Priority", "Progress", "Team", "End Date", "Created At"}}
	for _, p := range projects {
		rows = append(rows, []string{
			p.DisplayName(),
			string(p.Status),
			string(p.Priority),
			strconv.Itoa(p.Progress),
			strings.Join(p.Team, "; "),
			optionalDate(p.Deadline()),
			timestamp(p.CreatedAt),
		})
	}
	return rows
}

func optionalDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
