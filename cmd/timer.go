package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/ticker"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Focus stopwatch",
	Long: `The timer is a single stopwatch labelled with the current activity.
It only counts while a process drives it: "timer run" or "dashboard".`,
	GroupID: "timer",
}

// timerAction runs one transition and prints the resulting state.
func timerAction(verb string, fn func(*app, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if err := fn(a, args); err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}
		return printTimer(jsonOut, verb, a.store.Timer())
	}
}

func printTimer(jsonOut bool, verb string, t models.TimerState) error {
	if jsonOut {
		return output.JSON(map[string]any{
			"phase":           t.Phase(),
			"isTimerRunning":  t.IsRunning,
			"timerSeconds":    t.ElapsedSeconds,
			"currentTask":     t.CurrentActivity,
			"elapsedReadable": output.FormatDuration(t.ElapsedSeconds),
		})
	}
	if verb != "" {
		output.Success("%s", verb)
	}
	fmt.Println(output.FormatTimer(t))
	return nil
}

var timerStartCmd = &cobra.Command{
	Use:   "start <activity>",
	Short: "Start the timer on an activity (keeps paused seconds)",
	Args:  cobra.ExactArgs(1),
	RunE: timerAction("STARTED", func(a *app, args []string) error {
		return a.store.StartTimer(args[0])
	}),
}

var timerPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the timer",
	Args:  cobra.NoArgs,
	RunE: timerAction("PAUSED", func(a *app, _ []string) error {
		return a.store.PauseTimer()
	}),
}

var timerResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume a paused timer",
	Args:  cobra.NoArgs,
	RunE: timerAction("RESUMED", func(a *app, _ []string) error {
		return a.store.ResumeTimer()
	}),
}

var timerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop and reset the timer",
	Args:  cobra.NoArgs,
	RunE: timerAction("STOPPED", func(a *app, _ []string) error {
		return a.store.StopTimer()
	}),
}

var timerSetCmd = &cobra.Command{
	Use:   "set <duration|seconds>",
	Short: "Overwrite the elapsed time, e.g. 90, 25m or 1h30m",
	Args:  cobra.ExactArgs(1),
	RunE: timerAction("SET", func(a *app, args []string) error {
		secs, err := parseSeconds(args[0])
		if err != nil {
			return err
		}
		return a.store.UpdateTimer(secs)
	}),
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the timer",
	Args:  cobra.NoArgs,
	RunE:  timerAction("", func(*app, []string) error { return nil }),
}

var timerRunCmd = &cobra.Command{
	Use:   "run [activity]",
	Short: "Drive the timer in the foreground until interrupted",
	Long: `Starts the timer (on the given activity, or resuming a paused one) and
adds one second per second until Ctrl+C. The timer is paused on exit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		switch {
		case len(args) == 1:
			err = a.store.StartTimer(args[0])
		case a.store.Timer().Phase() == models.TimerPaused:
			err = a.store.ResumeTimer()
		case a.store.Timer().Phase() == models.TimerIdle:
			err = fmt.Errorf("%w: no paused timer to resume; give an activity", errBadArg)
		}
		if err != nil {
			return fail(jsonOut, err)
		}

		d, err := ticker.New(a.store, ticker.WithLogger(a.log))
		if err != nil {
			return fail(jsonOut, err)
		}
		if err := d.Start(); err != nil {
			return fail(jsonOut, err)
		}
		defer d.Stop()

		ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		quiet, _ := cmd.Flags().GetBool("quiet")
		if !quiet && !jsonOut {
			cancel := a.store.Subscribe(func(s models.Snapshot) {
				fmt.Printf("\r%s   ", output.FormatTimer(s.TimerState))
			})
			defer cancel()
			fmt.Printf("%s   ", output.FormatTimer(a.store.Timer()))
		}

		<-ctx.Done()
		if err := a.store.PauseTimer(); err != nil {
			return fail(jsonOut, err)
		}
		if !jsonOut {
			fmt.Println()
		}
		return printTimer(jsonOut, "PAUSED", a.store.Timer())
	},
}

// parseSeconds accepts a bare number of seconds or a Go duration.
func parseSeconds(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid duration %q", errBadArg, s)
	}
	return int(d / time.Second), nil
}

func init() {
	rootCmd.AddCommand(timerCmd)
	timerCmd.AddCommand(timerStartCmd, timerPauseCmd, timerResumeCmd, timerStopCmd,
		timerSetCmd, timerStatusCmd, timerRunCmd)

	for _, c := range timerCmd.Commands() {
		addJSONFlag(c)
	}
	timerRunCmd.Flags().BoolP("quiet", "q", false, "Do not print the running time")
}

// runContext is the base context for long-running commands
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
