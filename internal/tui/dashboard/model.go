// Package dashboard is the interactive terminal view of the store: open
// tasks, the notification feed, active goals and the timer.
package dashboard

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/report"
	"github.com/marcus/nexaflow/internal/store"
)

// Panel represents which panel is active
type Panel int

const (
	PanelTasks Panel = iota
	PanelNotifications
	PanelGoals
)

const panelCount = 3

// MinWidth is the minimum terminal width for proper display
const MinWidth = 40

// MinHeight is the minimum terminal height for proper display
const MinHeight = 15

// RefreshInterval is how often the clock-dependent parts are redrawn.
const RefreshInterval = time.Second

// TickMsg triggers a data refresh
type TickMsg time.Time

// StoreChangedMsg is sent when the store reports a mutation.
type StoreChangedMsg struct{}

// RefreshDataMsg carries refreshed data
type RefreshDataMsg struct {
	Tasks         []models.Task
	Notifications []models.Notification
	Unread        int
	Goals         []models.Goal
	Timer         models.TimerState
	User          models.User
	Stats         report.Stats
	Today         models.Date
	Timestamp     time.Time
}

// Model is the main Bubble Tea model for the dashboard
type Model struct {
	Store *store.Store

	// Window dimensions
	Width  int
	Height int

	Data RefreshDataMsg

	// UI state
	ActivePanel  Panel
	ScrollOffset map[Panel]int
	ShowHelp     bool
	Adding       bool
	Err          error // last failed action, shown in the footer

	keys  keyMap
	help  help.Model
	input textinput.Model
}

// NewModel creates a dashboard over s
func NewModel(s *store.Store) Model {
	input := textinput.New()
	input.Placeholder = "New task title..."
	input.CharLimit = 200
	input.Width = 50

	return Model{
		Store:        s,
		ScrollOffset: make(map[Panel]int),
		ActivePanel:  PanelTasks,
		keys:         defaultKeyMap(),
		help:         help.New(),
		input:        input,
	}
}

// Follow forwards store mutations to p as StoreChangedMsg. The returned
// func stops forwarding.
func Follow(s *store.Store, p *tea.Program) (cancel func()) {
	return s.Subscribe(func(models.Snapshot) {
		// Send blocks until the event loop reads it, and mutations can
		// originate inside Update.
		go p.Send(StoreChangedMsg{})
	})
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchData(),
		m.scheduleTick(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Adding {
			return m.handleInput(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m, tea.Batch(m.fetchData(), m.scheduleTick())

	case StoreChangedMsg:
		return m, m.fetchData()

	case RefreshDataMsg:
		m.Data = msg
		return m, nil
	}

	return m, nil
}

// handleKey processes key input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPanel):
		m.ActivePanel = (m.ActivePanel + 1) % panelCount
		return m, nil

	case key.Matches(msg, m.keys.PrevPanel):
		m.ActivePanel = (m.ActivePanel + panelCount - 1) % panelCount
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.ScrollOffset[m.ActivePanel] < m.panelLen(m.ActivePanel)-1 {
			m.ScrollOffset[m.ActivePanel]++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.ScrollOffset[m.ActivePanel] > 0 {
			m.ScrollOffset[m.ActivePanel]--
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleTime):
		switch m.Data.Timer.Phase() {
		case models.TimerRunning:
			return m.act(m.Store.PauseTimer())
		case models.TimerPaused:
			return m.act(m.Store.ResumeTimer())
		}
		return m, nil

	case key.Matches(msg, m.keys.StopTimer):
		return m.act(m.Store.StopTimer())

	case key.Matches(msg, m.keys.ReadAll):
		return m.act(m.Store.MarkAllNotificationsRead())

	case key.Matches(msg, m.keys.AddTask):
		m.Adding = true
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Help):
		m.ShowHelp = !m.ShowHelp
		m.help.ShowAll = m.ShowHelp
		return m, nil
	}

	return m, nil
}

// handleInput drives the quick-add prompt
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Adding = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		title := strings.TrimSpace(m.input.Value())
		m.Adding = false
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		_, err := m.Store.AddTask(models.TaskInput{Title: title})
		return m.act(err)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// act records the outcome of a store call and refreshes.
func (m Model) act(err error) (tea.Model, tea.Cmd) {
	m.Err = err
	if errors.Is(err, store.ErrClosed) {
		return m, tea.Quit
	}
	return m, m.fetchData()
}

func (m Model) panelLen(p Panel) int {
	switch p {
	case PanelTasks:
		return len(m.Data.Tasks)
	case PanelNotifications:
		return len(m.Data.Notifications)
	case PanelGoals:
		return len(m.Data.Goals)
	}
	return 0
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

// scheduleTick returns a command that sends a TickMsg after the refresh interval
func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fetchData returns a command that reads the store and sends a RefreshDataMsg
func (m Model) fetchData() tea.Cmd {
	return func() tea.Msg {
		return FetchData(m.Store)
	}
}

// Input returns the current quick-add text.
func (m Model) Input() string {
	return m.input.Value()
}
