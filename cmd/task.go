package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/input"
	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/query"
	"github.com/marcus/nexaflow/internal/tui/forms"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks",
	GroupID: "core",
}

var (
	taskAddDue    *dateValue
	taskUpdateDue *dateValue
)

var taskAddCmd = &cobra.Command{
	Use:     "add [title]",
	Aliases: []string{"create", "new"},
	Short:   "Create a task",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		interactive, _ := cmd.Flags().GetBool("interactive")

		var in models.TaskInput
		if interactive {
			f := forms.NewTaskForm()
			if len(args) > 0 {
				f.Title = args[0]
			}
			if err := f.Form().Run(); err != nil {
				return fail(jsonOut, err)
			}
			var err error
			if in, err = f.Input(time.Now()); err != nil {
				return fail(jsonOut, fmt.Errorf("%w: %v", errBadArg, err))
			}
		} else {
			if len(args) == 0 {
				return fail(jsonOut, fmt.Errorf("%w: title is required", errBadArg))
			}
			desc, _ := cmd.Flags().GetString("description")
			prio, _ := cmd.Flags().GetString("priority")
			status, _ := cmd.Flags().GetString("status")
			assignee, _ := cmd.Flags().GetString("assignee")
			in = models.TaskInput{
				Title:       args[0],
				Description: desc,
				Priority:    models.NormalizeTaskPriority(prio),
				Status:      models.NormalizeTaskStatus(status),
				Assignee:    assignee,
				DueDate:     taskAddDue.Date(),
			}
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		task, err := a.store.AddTask(in)
		if err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}

		if jsonOut {
			return output.JSON(task)
		}
		output.Success("CREATED task %d", task.ID)
		fmt.Println(output.FormatTaskShort(task, a.store.Today()))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		today := a.store.Today()
		f := query.TaskFilter{Today: today}
		statuses, _ := cmd.Flags().GetString("status")
		for _, s := range forms.ParseList(statuses) {
			f.Statuses = append(f.Statuses, models.NormalizeTaskStatus(s))
		}
		priorities, _ := cmd.Flags().GetString("priority")
		for _, p := range forms.ParseList(priorities) {
			f.Priorities = append(f.Priorities, models.NormalizeTaskPriority(p))
		}
		f.Assignee, _ = cmd.Flags().GetString("assignee")
		f.Overdue, _ = cmd.Flags().GetBool("overdue")
		f.DueWithin, _ = cmd.Flags().GetInt("due-within")

		tasks := query.Tasks(a.store.Tasks(), f)

		sortKey, _ := cmd.Flags().GetString("sort")
		if sortKey == "" {
			sortKey = a.cfg.TaskSort
		}
		desc, _ := cmd.Flags().GetBool("desc")
		if err := query.SortTasks(tasks, sortKey, desc); err != nil {
			return fail(jsonOut, fmt.Errorf("%w: %v", errBadArg, err))
		}

		if jsonOut {
			return output.JSON(tasks)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks")
			return nil
		}
		for _, t := range tasks {
			fmt.Println(output.FormatTaskShort(t, today))
		}
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		id, err := parseID(args[0])
		if err != nil {
			return fail(jsonOut, err)
		}
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		task, ok := a.store.Task(id)
		if !ok {
			return fail(jsonOut, notFound("task", id))
		}
		if jsonOut {
			return output.JSON(task)
		}
		fmt.Println(output.FormatTaskLong(task, a.store.Today()))
		output.PrintDescription(task.Description)
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Update fields of a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		id, err := parseID(args[0])
		if err != nil {
			return fail(jsonOut, err)
		}

		patch := models.TaskPatch{
			Title:       changedString(cmd, "title"),
			Description: changedString(cmd, "description"),
			Assignee:    changedString(cmd, "assignee"),
			DueDate:     taskUpdateDue.Date(),
		}
		patch.ClearDueDate, _ = cmd.Flags().GetBool("clear-due")
		if p := changedString(cmd, "priority"); p != nil {
			patch.Priority = models.Ptr(models.NormalizeTaskPriority(*p))
		}
		if s := changedString(cmd, "status"); s != nil {
			patch.Status = models.Ptr(models.NormalizeTaskStatus(*s))
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if _, ok := a.store.Task(id); !ok {
			return fail(jsonOut, notFound("task", id))
		}
		if err := a.store.UpdateTask(id, patch); err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}

		task, _ := a.store.Task(id)
		if jsonOut {
			return output.JSON(task)
		}
		output.Success("UPDATED task %d", id)
		fmt.Println(output.FormatTaskShort(task, a.store.Today()))
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete", "remove"},
	Short:   "Delete tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRecords(cmd, args, "task", func(a *app, id int64) (bool, error) {
			if _, ok := a.store.Task(id); !ok {
				return false, nil
			}
			return true, a.store.DeleteTask(id)
		})
	},
}

// deleteRecords deletes each id with del, reporting missing ids as warnings.
func deleteRecords(cmd *cobra.Command, args []string, kind string, del func(*app, int64) (bool, error)) error {
	jsonOut := jsonFlag(cmd)
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return fail(jsonOut, err)
		}
		ids = append(ids, id)
	}

	a, err := openApp()
	if err != nil {
		return fail(jsonOut, err)
	}
	defer a.Close()

	deleted := []int64{}
	for _, id := range ids {
		found, err := del(a, id)
		if err != nil {
			return fail(jsonOut, err)
		}
		if !found {
			if !jsonOut {
				output.Warning("%s %d not found", kind, id)
			}
			continue
		}
		deleted = append(deleted, id)
	}
	if err := a.saved(); err != nil {
		return fail(jsonOut, err)
	}

	if jsonOut {
		return output.JSON(map[string]any{"deleted": deleted})
	}
	for _, id := range deleted {
		output.Success("DELETED %s %d", kind, id)
	}
	return nil
}

func addTaskFieldFlags(cmd *cobra.Command) {
	cmd.Flags().VarP(input.NewText(os.Stdin), "description", "d", "Description in markdown (- reads stdin, @file reads a file)")
	cmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, urgent")
	cmd.Flags().StringP("status", "s", "", "Status: todo, in-progress, review, completed")
	cmd.Flags().StringP("assignee", "a", "", "Assignee")
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskUpdateCmd, taskRmCmd)

	addTaskFieldFlags(taskAddCmd)
	taskAddDue = addDateFlag(taskAddCmd, "due", "Due date")
	taskAddCmd.Flags().BoolP("interactive", "i", false, "Fill in the task with a form")
	addJSONFlag(taskAddCmd)

	taskListCmd.Flags().String("status", "", "Comma-separated statuses")
	taskListCmd.Flags().String("priority", "", "Comma-separated priorities")
	taskListCmd.Flags().String("assignee", "", "Assignee substring")
	taskListCmd.Flags().Bool("overdue", false, "Only open tasks past their due date")
	taskListCmd.Flags().Int("due-within", 0, "Only tasks due in the next N days")
	taskListCmd.Flags().String("sort", "", "Sort by created, due, priority, status or title")
	taskListCmd.Flags().Bool("desc", false, "Reverse the sort order")
	addJSONFlag(taskListCmd)

	addJSONFlag(taskShowCmd)

	taskUpdateCmd.Flags().String("title", "", "New title")
	addTaskFieldFlags(taskUpdateCmd)
	taskUpdateDue = addDateFlag(taskUpdateCmd, "due", "New due date")
	taskUpdateCmd.Flags().Bool("clear-due", false, "Remove the due date")
	addJSONFlag(taskUpdateCmd)

	addJSONFlag(taskRmCmd)
}
