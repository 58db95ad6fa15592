package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/tui/forms"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"profile", "whoami"},
	Short:   "Show or edit the user profile",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE:    runUserShow,
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the user profile",
	Args:  cobra.NoArgs,
	RunE:  runUserShow,
}

func runUserShow(cmd *cobra.Command, args []string) error {
	jsonOut := jsonFlag(cmd)
	a, err := openApp()
	if err != nil {
		return fail(jsonOut, err)
	}
	defer a.Close()

	u := a.store.User()
	if jsonOut {
		return output.JSON(u)
	}
	fmt.Printf("NAME:  %s\n", u.Name)
	fmt.Printf("EMAIL: %s\n", u.Email)
	fmt.Printf("ROLE:  %s\n", u.Role)
	return nil
}

var userSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the user profile (opens a form when no flags are given)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		u := a.store.User()
		name, email, role := changedString(cmd, "name"), changedString(cmd, "email"), changedString(cmd, "role")
		if name == nil && email == nil && role == nil {
			f := forms.NewUserForm(u)
			if err := f.Form().Run(); err != nil {
				return fail(jsonOut, err)
			}
			u = f.User()
		} else {
			if name != nil {
				u.Name = *name
			}
			if email != nil {
				u.Email = *email
			}
			if role != nil {
				u.Role = *role
			}
		}

		if err := a.store.SetUser(u); err != nil {
			return fail(jsonOut, err)
		}
		if err := a.saved(); err != nil {
			return fail(jsonOut, err)
		}
		if jsonOut {
			return output.JSON(a.store.User())
		}
		output.Success("UPDATED profile")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userShowCmd, userSetCmd)

	addJSONFlag(userCmd)
	addJSONFlag(userShowCmd)
	userSetCmd.Flags().String("name", "", "Display name")
	userSetCmd.Flags().String("email", "", "Email address")
	userSetCmd.Flags().String("role", "", "Role")
	addJSONFlag(userSetCmd)
}
