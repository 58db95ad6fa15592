// Package output provides styled terminal output helpers (success, error,
// warning, entity formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/nexaflow/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	unreadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
)

var taskStatusStyles = map[models.TaskStatus]lipgloss.Style{
	models.TaskStatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	models.TaskStatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	models.TaskStatusReview:     lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	models.TaskStatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
}

var priorityStyles = map[string]lipgloss.Style{
	"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
	"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	"urgent": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeStorageError = "storage_error"
	ErrCodeClosed       = "store_closed"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	JSONErrorWithDetails(code, message, nil)
}

// JSONErrorWithDetails outputs an error as JSON with additional context
func JSONErrorWithDetails(code, message string, details map[string]interface{}) {
	errObj := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		errObj["details"] = details
	}
	data, _ := json.MarshalIndent(map[string]interface{}{"error": errObj}, "", "  ")
	fmt.Println(string(data))
}

// FormatTaskStatus formats a task status with color
func FormatTaskStatus(s models.TaskStatus) string {
	style, ok := taskStatusStyles[s]
	if !ok {
		return fmt.Sprintf("[%s]", s)
	}
	return style.Render(fmt.Sprintf("[%s]", s))
}

// FormatPriority formats any entity priority
func FormatPriority[P ~string](p P) string {
	style, ok := priorityStyles[string(p)]
	if !ok {
		return fmt.Sprintf("[%s]", p)
	}
	return style.Render(fmt.Sprintf("[%s]", p))
}

// FormatDue describes a due date relative to today: "due today",
// "due in 3d", "2d overdue". Empty when d is nil.
func FormatDue(d *models.Date, today models.Date) string {
	if d == nil {
		return ""
	}
	switch days := today.DaysUntil(*d); {
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	case days > 0:
		return fmt.Sprintf("due in %dd", days)
	default:
		return fmt.Sprintf("%dd overdue", -days)
	}
}

// FormatTaskShort formats a task on one line
func FormatTaskShort(t models.Task, today models.Date) string {
	parts := []string{
		titleStyle.Render(fmt.Sprint(t.ID)),
		FormatPriority(t.Priority),
		t.Title,
	}
	if due := FormatDue(t.DueDate, today); due != "" {
		if t.Status != models.TaskStatusCompleted && t.DueDate.Before(today) {
			parts = append(parts, errorStyle.Render(due))
		} else {
			parts = append(parts, subtleStyle.Render(due))
		}
	}
	if t.Assignee != "" {
		parts = append(parts, subtleStyle.Render("@"+t.Assignee))
	}
	parts = append(parts, FormatTaskStatus(t.Status))
	return strings.Join(parts, "  ")
}

// FormatTaskLong formats a task with all fields. description is rendered
// separately by the caller so it can go through markdown.
func FormatTaskLong(t models.Task, today models.Date) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%d: %s", t.ID, t.Title)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Status: %s\n", FormatTaskStatus(t.Status)))
	sb.WriteString(fmt.Sprintf("Priority: %s", t.Priority))
	if t.Assignee != "" {
		sb.WriteString(fmt.Sprintf(" | Assignee: %s", t.Assignee))
	}
	sb.WriteString("\n")
	if t.DueDate != nil {
		sb.WriteString(fmt.Sprintf("Due: %s (%s)\n", t.DueDate, FormatDue(t.DueDate, today)))
	}
	if !t.CreatedAt.IsZero() {
		sb.WriteString(subtleStyle.Render("Created " + FormatTimeAgo(t.CreatedAt)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ProgressBar renders percent as a fixed-width text bar. Values outside
// 0..100 are drawn clamped but labelled as given.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := percent * width / 100
	filled = max(0, min(filled, width))
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), percent)
}

// FormatProjectShort formats a project on one line
func FormatProjectShort(p models.Project, today models.Date) string {
	parts := []string{
		titleStyle.Render(fmt.Sprint(p.ID)),
		FormatPriority(p.Priority),
		p.DisplayName(),
		ProgressBar(p.Progress, 10),
	}
	if due := FormatDue(p.Deadline(), today); due != "" {
		parts = append(parts, subtleStyle.Render(due))
	}
	parts = append(parts, subtleStyle.Render(fmt.Sprintf("[%s]", p.Status)))
	return strings.Join(parts, "  ")
}

// FormatProjectLong formats a project with all fields
func FormatProjectLong(p models.Project, today models.Date) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%d: %s", p.ID, p.DisplayName())))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Status: %s | Priority: %s\n", p.Status, p.Priority))
	sb.WriteString(fmt.Sprintf("Progress: %s\n", ProgressBar(p.Progress, 20)))
	if len(p.Team) > 0 {
		sb.WriteString(fmt.Sprintf("Team: %s\n", strings.Join(p.Team, ", ")))
	}
	if d := p.Deadline(); d != nil {
		sb.WriteString(fmt.Sprintf("Deadline: %s (%s)\n", d, FormatDue(d, today)))
	}
	return sb.String()
}

// FormatEventShort formats an event on one line
func FormatEventShort(e models.Event) string {
	parts := []string{
		titleStyle.Render(fmt.Sprint(e.ID)),
		e.Date.String(),
	}
	if e.Time != "" {
		parts = append(parts, e.Time)
	}
	parts = append(parts, e.Title, subtleStyle.Render(fmt.Sprintf("[%s]", e.Type)))
	return strings.Join(parts, "  ")
}

// FormatGoalShort formats a goal on one line
func FormatGoalShort(g models.Goal) string {
	parts := []string{
		titleStyle.Render(fmt.Sprint(g.ID)),
		g.Title,
		fmt.Sprintf("%d/%d", g.Current, g.Target),
		ProgressBar(g.Progress(), 10),
		subtleStyle.Render(fmt.Sprintf("[%s]", g.Status)),
	}
	if g.Deadline != nil {
		parts = append(parts, subtleStyle.Render("by "+g.Deadline.String()))
	}
	return strings.Join(parts, "  ")
}

// FormatNotification formats either notification variant on one line,
// prefixed with its key and an unread marker.
func FormatNotification(n models.Notification) string {
	h := n.Header()
	marker := " "
	if h.Unread {
		marker = unreadStyle.Render("●")
	}
	return strings.Join([]string{
		marker,
		subtleStyle.Render(n.Key().String()),
		titleStyle.Render(h.Title),
		h.Message,
		subtleStyle.Render(notificationTime(n)),
	}, "  ")
}

// notificationTime prefers the real creation time of a persisted
// notification over its stored label.
func notificationTime(n models.Notification) string {
	if p, ok := n.(models.PersistedNotification); ok && !p.CreatedAt.IsZero() {
		return FormatTimeAgo(p.CreatedAt)
	}
	return n.Header().Time
}

// FormatDuration renders seconds as HH:MM:SS
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// FormatTimer renders the stopwatch state on one line
func FormatTimer(t models.TimerState) string {
	switch t.Phase() {
	case models.TimerRunning:
		return successStyle.Render("▶ "+FormatDuration(t.ElapsedSeconds)) + "  " + t.CurrentActivity
	case models.TimerPaused:
		return warningStyle.Render("⏸ "+FormatDuration(t.ElapsedSeconds)) + "  " + t.CurrentActivity
	default:
		return subtleStyle.Render("■ " + FormatDuration(0) + "  idle")
	}
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// SectionHeader returns a formatted section header for CLI output
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}
