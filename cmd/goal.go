package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/input"
	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/query"
	"github.com/marcus/nexaflow/internal/tui/forms"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals", "g"},
	Short:   "Manage goals",
	GroupID: "core",
}

var (
	goalAddDeadline    *dateValue
	goalUpdateDeadline *dateValue
)

var goalAddCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"create", "new"},
	Short:   "Create a goal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		desc, _ := cmd.Flags().GetString("description")
		target, _ := cmd.Flags().GetInt("target")
		current, _ := cmd.Flags().GetInt("current")
		status, _ := cmd.Flags().GetString("status")

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		g, err := a.store.AddGoal(models.GoalInput{
			Title:       args[0],
			Description: desc,
			Target:      target,
			Current:     current,
			Deadline:    goalAddDeadline.Date(),
			Status:      models.NormalizeGoalStatus(status),
		})
		if err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}

		if jsonOut {
			return output.JSON(g)
		}
		output.Success("CREATED goal %d", g.ID)
		fmt.Println(output.FormatGoalShort(g))
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals with progress",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		var statuses []models.GoalStatus
		raw, _ := cmd.Flags().GetString("status")
		for _, s := range forms.ParseList(raw) {
			statuses = append(statuses, models.NormalizeGoalStatus(s))
		}
		goals := query.Goals(a.store.Goals(), statuses...)

		if jsonOut {
			type goalView struct {
				models.Goal
				Progress int `json:"progress"`
			}
			views := make([]goalView, len(goals))
			for i, g := range goals {
				views[i] = goalView{Goal: g, Progress: g.Progress()}
			}
			return output.JSON(views)
		}
		if len(goals) == 0 {
			fmt.Println("No goals")
			return nil
		}
		for _, g := range goals {
			fmt.Println(output.FormatGoalShort(g))
		}
		return nil
	},
}

var goalUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Update fields of a goal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		id, err := parseID(args[0])
		if err != nil {
			return fail(jsonOut, err)
		}

		patch := models.GoalPatch{
			Title:       changedString(cmd, "title"),
			Description: changedString(cmd, "description"),
			Target:      changedInt(cmd, "target"),
			Current:     changedInt(cmd, "current"),
			Deadline:    goalUpdateDeadline.Date(),
		}
		if s := changedString(cmd, "status"); s != nil {
			patch.Status = models.Ptr(models.NormalizeGoalStatus(*s))
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if _, ok := a.store.Goal(id); !ok {
			return fail(jsonOut, notFound("goal", id))
		}
		if err := a.store.UpdateGoal(id, patch); err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}

		g, _ := a.store.Goal(id)
		if jsonOut {
			return output.JSON(g)
		}
		output.Success("UPDATED goal %d", id)
		fmt.Println(output.FormatGoalShort(g))
		return nil
	},
}

var goalRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete", "remove"},
	Short:   "Delete goals",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRecords(cmd, args, "goal", func(a *app, id int64) (bool, error) {
			if _, ok := a.store.Goal(id); !ok {
				return false, nil
			}
			return true, a.store.DeleteGoal(id)
		})
	},
}

func addGoalFieldFlags(cmd *cobra.Command) {
	cmd.Flags().VarP(input.NewText(os.Stdin), "description", "d", "Description (- reads stdin, @file reads a file)")
	cmd.Flags().Int("target", 0, "Target value")
	cmd.Flags().Int("current", 0, "Current value")
	cmd.Flags().StringP("status", "s", "", "Status: active, paused, completed")
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalUpdateCmd, goalRmCmd)

	addGoalFieldFlags(goalAddCmd)
	goalAddDeadline = addDateFlag(goalAddCmd, "deadline", "Deadline")
	addJSONFlag(goalAddCmd)

	goalListCmd.Flags().String("status", "", "Comma-separated statuses")
	addJSONFlag(goalListCmd)

	goalUpdateCmd.Flags().String("title", "", "New title")
	addGoalFieldFlags(goalUpdateCmd)
	goalUpdateDeadline = addDateFlag(goalUpdateCmd, "deadline", "New deadline")
	addJSONFlag(goalUpdateCmd)

	addJSONFlag(goalRmCmd)
}
