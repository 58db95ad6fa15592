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

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects", "p"},
	Short:   "Manage projects",
	GroupID: "core",
}

var (
	projectAddDue    *dateValue
	projectAddEnd    *dateValue
	projectUpdateDue *dateValue
	projectUpdateEnd *dateValue
)

var projectAddCmd = &cobra.Command{
	Use:     "add [name]",
	Aliases: []string{"create", "new"},
	Short:   "Create a project",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		interactive, _ := cmd.Flags().GetBool("interactive")

		var in models.ProjectInput
		if interactive {
			f := forms.NewProjectForm()
			if len(args) > 0 {
				f.Name = args[0]
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
				return fail(jsonOut, fmt.Errorf("%w: name is required", errBadArg))
			}
			desc, _ := cmd.Flags().GetString("description")
			prio, _ := cmd.Flags().GetString("priority")
			status, _ := cmd.Flags().GetString("status")
			team, _ := cmd.Flags().GetString("team")
			progress, _ := cmd.Flags().GetInt("progress")
			in = models.ProjectInput{
				Name:        args[0],
				Description: desc,
				Priority:    models.NormalizeProjectPriority(prio),
				Status:      models.NormalizeProjectStatus(status),
				Progress:    progress,
				Team:        forms.ParseList(team),
				DueDate:     projectAddDue.Date(),
				EndDate:     projectAddEnd.Date(),
			}
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		p, err := a.store.AddProject(in)
		if err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}

		if jsonOut {
			return output.JSON(p)
		}
		output.Success("CREATED project %d", p.ID)
		fmt.Println(output.FormatProjectShort(p, a.store.Today()))
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		var statuses []models.ProjectStatus
		raw, _ := cmd.Flags().GetString("status")
		for _, s := range forms.ParseList(raw) {
			statuses = append(statuses, models.NormalizeProjectStatus(s))
		}
		projects := query.Projects(a.store.Projects(), statuses...)

		if jsonOut {
			return output.JSON(projects)
		}
		if len(projects) == 0 {
			fmt.Println("No projects")
			return nil
		}
		today := a.store.Today()
		for _, p := range projects {
			fmt.Println(output.FormatProjectShort(p, today))
		}
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project",
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

		p, ok := a.store.Project(id)
		if !ok {
			return fail(jsonOut, notFound("project", id))
		}
		if jsonOut {
			return output.JSON(p)
		}
		fmt.Println(output.FormatProjectLong(p, a.store.Today()))
		output.PrintDescription(p.Description)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Update fields of a project",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		id, err := parseID(args[0])
		if err != nil {
			return fail(jsonOut, err)
		}

		// renaming keeps the two name fields in step
		name := changedString(cmd, "name")
		patch := models.ProjectPatch{
			Name:        name,
			Title:       name,
			Description: changedString(cmd, "description"),
			Progress:    changedInt(cmd, "progress"),
			DueDate:     projectUpdateDue.Date(),
			EndDate:     projectUpdateEnd.Date(),
		}
		if p := changedString(cmd, "priority"); p != nil {
			patch.Priority = models.Ptr(models.NormalizeProjectPriority(*p))
		}
		if s := changedString(cmd, "status"); s != nil {
			patch.Status = models.Ptr(models.NormalizeProjectStatus(*s))
		}
		if t := changedString(cmd, "team"); t != nil {
			patch.Team = forms.ParseList(*t)
			if patch.Team == nil {
				patch.Team = []string{}
			}
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if _, ok := a.store.Project(id); !ok {
			return fail(jsonOut, notFound("project", id))
		}
		if err := a.store.UpdateProject(id, patch); err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}

		p, _ := a.store.Project(id)
		if jsonOut {
			return output.JSON(p)
		}
		output.Success("UPDATED project %d", id)
		fmt.Println(output.FormatProjectShort(p, a.store.Today()))
		return nil
	},
}

var projectRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete", "remove"},
	Short:   "Delete projects (their tasks are kept)",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRecords(cmd, args, "project", func(a *app, id int64) (bool, error) {
			if _, ok := a.store.Project(id); !ok {
				return false, nil
			}
			return true, a.store.DeleteProject(id)
		})
	},
}

func addProjectFieldFlags(cmd *cobra.Command) {
	cmd.Flags().VarP(input.NewText(os.Stdin), "description", "d", "Description in markdown (- reads stdin, @file reads a file)")
	cmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high")
	cmd.Flags().StringP("status", "s", "", "Status: planning, active, on-hold, completed")
	cmd.Flags().String("team", "", "Comma-separated team members")
	cmd.Flags().Int("progress", 0, "Progress percent")
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectShowCmd, projectUpdateCmd, projectRmCmd)

	addProjectFieldFlags(projectAddCmd)
	projectAddDue = addDateFlag(projectAddCmd, "due", "Due date")
	projectAddEnd = addDateFlag(projectAddCmd, "end", "End date")
	projectAddCmd.Flags().BoolP("interactive", "i", false, "Fill in the project with a form")
	addJSONFlag(projectAddCmd)

	projectListCmd.Flags().String("status", "", "Comma-separated statuses")
	addJSONFlag(projectListCmd)

	addJSONFlag(projectShowCmd)

	projectUpdateCmd.Flags().String("name", "", "New name")
	addProjectFieldFlags(projectUpdateCmd)
	projectUpdateDue = addDateFlag(projectUpdateCmd, "due", "New due date")
	projectUpdateEnd = addDateFlag(projectUpdateCmd, "end", "New end date")
	addJSONFlag(projectUpdateCmd)

	addJSONFlag(projectRmCmd)
}
