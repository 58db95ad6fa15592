package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/output"
)

// renderView renders the complete TUI view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	// Handle small terminal sizes gracefully
	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	availableHeight := m.Height - lipgloss.Height(header) - lipgloss.Height(footer)
	panelHeight := availableHeight / panelCount

	panels := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTasksPanel(panelHeight),
		m.renderNotificationsPanel(panelHeight),
		m.renderGoalsPanel(panelHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, panels, footer)
}

// renderCompact renders a minimal view for small terminals
func (m Model) renderCompact() string {
	var s strings.Builder

	s.WriteString("nexaflow (resize for full view)\n\n")
	s.WriteString(m.renderTimer())
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Open tasks: %d | Unread: %d | Goals: %d\n",
		len(m.Data.Tasks), m.Data.Unread, len(m.Data.Goals)))
	s.WriteString("\nq:quit space:timer ?:help")

	return s.String()
}

// renderHeader shows the user, the timer and headline stats
func (m Model) renderHeader() string {
	name := m.Data.User.Name
	if name == "" {
		name = "nexaflow"
	}
	left := titleStyle.Render(name) + "  " + m.renderTimer()

	st := m.Data.Stats
	right := subtleStyle.Render(fmt.Sprintf("%d%% done  %d overdue  %d upcoming events  %d unread",
		st.CompletionRate, st.Overdue, st.UpcomingEvents, m.Data.Unread))

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return ansi.Truncate(" "+left, m.Width, "…")
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (m Model) renderTimer() string {
	t := m.Data.Timer
	switch t.Phase() {
	case models.TimerRunning:
		return timerRunningStyle.Render("▶ "+output.FormatDuration(t.ElapsedSeconds)) + " " + t.CurrentActivity
	case models.TimerPaused:
		return timerPausedStyle.Render("⏸ "+output.FormatDuration(t.ElapsedSeconds)) + " " + t.CurrentActivity
	default:
		return subtleStyle.Render("■ timer idle")
	}
}

// renderTasksPanel lists open tasks, soonest due first
func (m Model) renderTasksPanel(height int) string {
	var content strings.Builder

	if len(m.Data.Tasks) == 0 {
		content.WriteString(subtleStyle.Render("No open tasks"))
	}
	offset := m.ScrollOffset[PanelTasks]
	visible := m.visibleItems(len(m.Data.Tasks), offset, height-3)
	for i := offset; i < offset+visible; i++ {
		t := m.Data.Tasks[i]
		parts := []string{formatStatus(t.Status), formatPriority(t.Priority), t.Title}
		if due := output.FormatDue(t.DueDate, m.Data.Today); due != "" {
			parts = append(parts, deadlineStyle.Render(due))
		}
		if t.Assignee != "" {
			parts = append(parts, subtleStyle.Render("@"+t.Assignee))
		}
		content.WriteString(strings.Join(parts, "  "))
		content.WriteString("\n")
	}

	title := fmt.Sprintf("TASKS (%d)", len(m.Data.Tasks))
	return m.wrapPanel(title, content.String(), height, PanelTasks)
}

// renderNotificationsPanel lists persisted then derived notifications
func (m Model) renderNotificationsPanel(height int) string {
	var content strings.Builder

	if len(m.Data.Notifications) == 0 {
		content.WriteString(subtleStyle.Render("No notifications"))
	}
	offset := m.ScrollOffset[PanelNotifications]
	visible := m.visibleItems(len(m.Data.Notifications), offset, height-3)
	for i := offset; i < offset+visible; i++ {
		n := m.Data.Notifications[i]
		h := n.Header()
		marker := " "
		if h.Unread {
			marker = unreadStyle.Render("●")
		}
		title := titleStyle.Render(h.Title)
		if n.Key().Derived() {
			title = deadlineStyle.Render(h.Title)
		}
		content.WriteString(fmt.Sprintf("%s %s  %s  %s\n", marker, title, h.Message, subtleStyle.Render(h.Time)))
	}

	title := fmt.Sprintf("NOTIFICATIONS (%d unread)", m.Data.Unread)
	return m.wrapPanel(title, content.String(), height, PanelNotifications)
}

// renderGoalsPanel shows a progress bar per active goal
func (m Model) renderGoalsPanel(height int) string {
	var content strings.Builder

	if len(m.Data.Goals) == 0 {
		content.WriteString(subtleStyle.Render("No active goals"))
	}
	barWidth := m.Width / 3
	if barWidth < 10 {
		barWidth = 10
	}
	offset := m.ScrollOffset[PanelGoals]
	visible := m.visibleItems(len(m.Data.Goals), offset, height-3)
	for i := offset; i < offset+visible; i++ {
		g := m.Data.Goals[i]
		content.WriteString(fmt.Sprintf("%s  %s  %s\n",
			goalBar(g.Progress(), barWidth),
			g.Title,
			subtleStyle.Render(fmt.Sprintf("%d/%d", g.Current, g.Target))))
	}

	title := fmt.Sprintf("GOALS (%d%% avg)", m.Data.Stats.GoalProgress)
	return m.wrapPanel(title, content.String(), height, PanelGoals)
}

// goalBar renders percent (which may exceed 100) as a gradient bar
func goalBar(percent, width int) string {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(width),
	)
	f := float64(percent) / 100
	if f > 1 {
		f = 1
	}
	return bar.ViewAs(f)
}

// renderFooter shows the quick-add prompt, the last error, or key help
func (m Model) renderFooter() string {
	if m.Adding {
		return " " + m.input.View()
	}
	var lines []string
	if m.Err != nil {
		lines = append(lines, " "+errorStyle.Render("Error: "+m.Err.Error()))
	}
	lines = append(lines, " "+m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// wrapPanel wraps content in a panel with title and border
func (m Model) wrapPanel(title, content string, height int, panel Panel) string {
	style := panelStyle
	if m.ActivePanel == panel {
		style = activePanelStyle
	}

	titleStr := panelTitleStyle.Render(title)
	contentWidth := m.Width - 4 // border and padding

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	contentHeight := height - 3 // title and border
	if contentHeight < 1 {
		contentHeight = 1
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, contentWidth, "…")
	}

	inner := lipgloss.JoinVertical(lipgloss.Left, titleStr, strings.Join(lines, "\n"))
	return style.Width(m.Width - 2).Render(inner)
}

func (m Model) visibleItems(total, offset, height int) int {
	remaining := total - offset
	if remaining < 0 {
		return 0
	}
	if remaining > height {
		return height
	}
	return remaining
}
