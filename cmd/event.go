package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/input"
	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/query"
)

var eventCmd = &cobra.Command{
	Use:     "event",
	Aliases: []string{"events", "e"},
	Short:   "Manage calendar events",
	GroupID: "core",
}

var (
	eventAddDate    *dateValue
	eventUpdateDate *dateValue
	eventListFrom   *dateValue
	eventListTo     *dateValue
)

var eventAddCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"create", "new"},
	Short:   "Create an event (dated today unless --date is given)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		desc, _ := cmd.Flags().GetString("description")
		at, _ := cmd.Flags().GetString("time")
		typ, _ := cmd.Flags().GetString("type")

		in := models.EventInput{
			Title:       args[0],
			Description: desc,
			Time:        at,
			Type:        models.NormalizeEventType(typ),
		}
		if d := eventAddDate.Date(); d != nil {
			in.Date = *d
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		e, err := a.store.AddEvent(in)
		if err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}

		if jsonOut {
			return output.JSON(e)
		}
		output.Success("CREATED event %d", e.ID)
		fmt.Println(output.FormatEventShort(e))
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List events, optionally within a date range",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		var from, to models.Date
		if d := eventListFrom.Date(); d != nil {
			from = *d
		}
		if d := eventListTo.Date(); d != nil {
			to = *d
		}
		if upcoming, _ := cmd.Flags().GetBool("upcoming"); upcoming && from.IsZero() {
			from = a.store.Today()
		}
		events := query.EventsBetween(a.store.Events(), from, to)

		if jsonOut {
			return output.JSON(events)
		}
		if len(events) == 0 {
			fmt.Println("No events")
			return nil
		}
		for _, e := range events {
			fmt.Println(output.FormatEventShort(e))
		}
		return nil
	},
}

var eventUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Update fields of an event",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		id, err := parseID(args[0])
		if err != nil {
			return fail(jsonOut, err)
		}

		patch := models.EventPatch{
			Title:       changedString(cmd, "title"),
			Description: changedString(cmd, "description"),
			Time:        changedString(cmd, "time"),
			Date:        eventUpdateDate.Date(),
		}
		if t := changedString(cmd, "type"); t != nil {
			patch.Type = models.Ptr(models.NormalizeEventType(*t))
		}

		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if _, ok := a.store.Event(id); !ok {
			return fail(jsonOut, notFound("event", id))
		}
		if err := a.store.UpdateEvent(id, patch); err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}

		e, _ := a.store.Event(id)
		if jsonOut {
			return output.JSON(e)
		}
		output.Success("UPDATED event %d", id)
		fmt.Println(output.FormatEventShort(e))
		return nil
	},
}

var eventRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete", "remove"},
	Short:   "Delete events",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRecords(cmd, args, "event", func(a *app, id int64) (bool, error) {
			if _, ok := a.store.Event(id); !ok {
				return false, nil
			}
			return true, a.store.DeleteEvent(id)
		})
	},
}

func addEventFieldFlags(cmd *cobra.Command) {
	cmd.Flags().VarP(input.NewText(os.Stdin), "description", "d", "Description (- reads stdin, @file reads a file)")
	cmd.Flags().String("time", "", "Time of day as free text, e.g. \"10:00 AM\"")
	cmd.Flags().String("type", "", "Type: meeting, deadline, reminder, event")
}

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventAddCmd, eventListCmd, eventUpdateCmd, eventRmCmd)

	addEventFieldFlags(eventAddCmd)
	eventAddDate = addDateFlag(eventAddCmd, "date", "Event date")
	addJSONFlag(eventAddCmd)

	eventListFrom = addDateFlag(eventListCmd, "from", "First date")
	eventListTo = addDateFlag(eventListCmd, "to", "Last date")
	eventListCmd.Flags().Bool("upcoming", false, "Only events today or later")
	addJSONFlag(eventListCmd)

	eventUpdateCmd.Flags().String("title", "", "New title")
	addEventFieldFlags(eventUpdateCmd)
	eventUpdateDate = addDateFlag(eventUpdateCmd, "date", "New date")
	addJSONFlag(eventUpdateCmd)

	addJSONFlag(eventRmCmd)
}
