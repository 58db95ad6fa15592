package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/logging"
	"github.com/marcus/nexaflow/internal/ticker"
	"github.com/marcus/nexaflow/internal/tui/dashboard"
	"github.com/marcus/nexaflow/internal/watch"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "ui"},
	Short:   "Live TUI with tasks, notifications, goals and the timer",
	Long: `Launch a live-updating TUI dashboard showing:
- Open tasks, soonest due first
- Notifications, including approaching deadlines
- Active goals with progress bars
- The focus timer, which counts while the dashboard is open

Key bindings:
  Tab/Shift+Tab  Switch panels
  j/k            Scroll the active panel
  space          Pause or resume the timer
  s              Stop the timer
  a              Quick-add a task
  r              Mark all notifications read
  ?              Toggle help
  q              Quit`,
	GroupID: "core",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return fail(false, err)
		}
		defer a.Close()

		d, err := ticker.New(a.store, ticker.WithLogger(a.log))
		if err != nil {
			return fail(false, err)
		}
		if err := d.Start(); err != nil {
			return fail(false, err)
		}
		defer d.Stop()

		p := tea.NewProgram(dashboard.NewModel(a.store), tea.WithAltScreen())
		defer dashboard.Follow(a.store, p)()

		// pick up writes from other nexaflow processes
		if follow, _ := cmd.Flags().GetBool("watch"); follow {
			if src, ok := a.repo.(watch.Source); ok {
				w, err := watch.New(src, a.store, watch.WithLogger(a.log))
				if err != nil {
					return fail(false, err)
				}
				if err := w.Start(runContext(cmd)); err != nil {
					return fail(false, err)
				}
				defer w.Stop()
			} else {
				a.log.Warn("--watch needs the file or sqlite backend; ignoring", logging.Backend(a.backend))
			}
		}

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().BoolP("watch", "w", true, "Reload when another process changes the snapshot (file or sqlite backend)")
}
