package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/models"
	"github.com/marcus/nexaflow/internal/output"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif", "n"},
	Short:   "List notifications, including approaching deadlines",
	Long: `Lists stored notifications followed by deadline notifications derived from
tasks and projects due within the configured window. Derived entries have keys
like task:123 and cannot be marked read or deleted.`,
	GroupID: "core",
	Args:    cobra.NoArgs,
	RunE:    runNotificationsList,
}

var notificationsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notifications",
	Args:    cobra.NoArgs,
	RunE:    runNotificationsList,
}

func runNotificationsList(cmd *cobra.Command, args []string) error {
	jsonOut := jsonFlag(cmd)
	a, err := openApp()
	if err != nil {
		return fail(jsonOut, err)
	}
	defer a.Close()

	unreadOnly, _ := cmd.Flags().GetBool("unread")
	var list []models.Notification
	for _, n := range a.store.Notifications() {
		if unreadOnly && !n.Header().Unread {
			continue
		}
		list = append(list, n)
	}

	if jsonOut {
		views := make([]models.NotificationView, len(list))
		for i, n := range list {
			views[i] = models.ViewOf(n)
		}
		return output.JSON(map[string]any{
			"unread":        a.store.UnreadCount(),
			"notifications": views,
		})
	}
	if len(list) == 0 {
		fmt.Println("No notifications")
		return nil
	}
	fmt.Println(output.SectionHeader(fmt.Sprintf("Notifications (%d unread)", a.store.UnreadCount())))
	for _, n := range list {
		fmt.Println(output.FormatNotification(n))
	}
	return nil
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <key>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotificationKey(cmd, args[0], "MARKED READ", func(a *app, key models.NotificationKey) error {
			return a.store.MarkNotificationRead(key)
		})
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every stored notification read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		if err := a.store.MarkAllNotificationsRead(); err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}
		if jsonOut {
			return output.JSON(map[string]any{"unread": a.store.UnreadCount()})
		}
		output.Success("MARKED ALL READ")
		return nil
	},
}

var notificationsRmCmd = &cobra.Command{
	Use:     "rm <key>",
	Aliases: []string{"delete", "dismiss"},
	Short:   "Delete a stored notification",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withNotificationKey(cmd, args[0], "DELETED", func(a *app, key models.NotificationKey) error {
			return a.store.DeleteNotification(key)
		})
	},
}

// withNotificationKey parses raw, checks the notification exists and runs
// fn on it. Derived keys are accepted and reported as unchanged.
func withNotificationKey(cmd *cobra.Command, raw, verb string, fn func(*app, models.NotificationKey) error) error {
	jsonOut := jsonFlag(cmd)
	key, err := models.ParseNotificationKey(raw)
	if err != nil {
		return fail(jsonOut, fmt.Errorf("%w: %v", errBadArg, err))
	}

	a, err := openApp()
	if err != nil {
		return fail(jsonOut, err)
	}
	defer a.Close()

	found := false
	for _, n := range a.store.Notifications() {
		if n.Key() == key {
			found = true
			break
		}
	}
	if !found {
		return fail(jsonOut, fmt.Errorf("notification %s: %w", key, errNotFound))
	}

	if err := fn(a, key); err != nil {
		return fail(jsonOut, err)
	}
	if err := a.saved(); err != nil {
		return fail(jsonOut, err)
	}

	if jsonOut {
		return output.JSON(map[string]any{"key": key.String(), "derived": key.Derived()})
	}
	if key.Derived() {
		output.Warning("%s is a deadline notification and stays until the deadline passes", key)
		return nil
	}
	output.Success("%s %s", verb, key)
	return nil
}

func init() {
	rootCmd.AddCommand(notificationsCmd)
	notificationsCmd.AddCommand(notificationsListCmd, notificationsReadCmd, notificationsReadAllCmd, notificationsRmCmd)

	for _, c := range []*cobra.Command{notificationsCmd, notificationsListCmd} {
		c.Flags().Bool("unread", false, "Only unread notifications")
		addJSONFlag(c)
	}
	addJSONFlag(notificationsReadCmd)
	addJSONFlag(notificationsReadAllCmd)
	addJSONFlag(notificationsRmCmd)
}
