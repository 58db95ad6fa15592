package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/report"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Summary counts for tasks, projects, events and goals",
	GroupID: "query",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		st := report.Compute(a.store.Snapshot(), a.store.Today())
		if jsonOut {
			return output.JSON(st)
		}

		fmt.Println(output.SectionHeader("Tasks"))
		fmt.Printf("  total:       %d\n", st.Tasks)
		for _, s := range []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusReview, models.TaskStatusCompleted} {
			fmt.Printf("  %-12s %d\n", string(s)+":", st.TasksByStatus[s])
		}
		fmt.Printf("  completion:  %d%%\n", st.CompletionRate)
		fmt.Printf("  overdue:     %d\n", st.Overdue)
		fmt.Println()

		fmt.Println(output.SectionHeader("Projects"))
		fmt.Printf("  total:       %d\n", st.Projects)
		for _, s := range []models.ProjectStatus{models.ProjectStatusPlanning, models.ProjectStatusActive, models.ProjectStatusOnHold, models.ProjectStatusCompleted} {
			fmt.Printf("  %-12s %d\n", string(s)+":", st.ByProject[s])
		}
		fmt.Println()

		fmt.Println(output.SectionHeader("Calendar & Goals"))
		fmt.Printf("  events:      %d (%d upcoming)\n", st.Events, st.UpcomingEvents)
		fmt.Printf("  goals:       %d  %s %d%%\n", st.Goals, output.ProgressBar(st.GoalProgress, 10), st.GoalProgress)
		fmt.Printf("  timer:       %s\n", output.FormatDuration(st.TimerSeconds))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addJSONFlag(statsCmd)
}
