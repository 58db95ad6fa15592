package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/nexaflow/internal/models"
)

var (
	// Base colors
	primaryColor   = lipgloss.Color("212")
	secondaryColor = lipgloss.Color("141")
	mutedColor     = lipgloss.Color("241")
	successColor   = lipgloss.Color("42")
	warningColor   = lipgloss.Color("214")
	errorColor     = lipgloss.Color("196")

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor)
	unreadStyle   = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	deadlineStyle = lipgloss.NewStyle().Foreground(warningColor)

	timerRunningStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	timerPausedStyle  = lipgloss.NewStyle().Foreground(warningColor)

	statusStyles = map[models.TaskStatus]lipgloss.Style{
		models.TaskStatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.TaskStatusInProgress: lipgloss.NewStyle().Foreground(warningColor),
		models.TaskStatusReview:     lipgloss.NewStyle().Foreground(secondaryColor),
		models.TaskStatusCompleted:  lipgloss.NewStyle().Foreground(mutedColor),
	}

	priorityStyles = map[models.TaskPriority]lipgloss.Style{
		models.TaskPriorityUrgent: lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		models.TaskPriorityHigh:   lipgloss.NewStyle().Foreground(warningColor),
		models.TaskPriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		models.TaskPriorityLow:    lipgloss.NewStyle().Foreground(mutedColor),
	}
)

func formatStatus(s models.TaskStatus) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}

func formatPriority(p models.TaskPriority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return string(p)
	}
	return style.Render(string(p))
}
