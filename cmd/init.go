package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/config"
	"github.com/marcus/nexaflow/internal/db"
	"github.com/marcus/nexaflow/internal/output"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a nexaflow workspace",
	Long:    `Creates .nexaflow/ in the current directory (or --dir) and saves the starting snapshot.`,
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// init targets the given directory, not an enclosing workspace
		dir := dirFlag
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fail(false, err)
			}
			dir = wd
		}
		baseDir = dir

		stateDir := filepath.Join(dir, db.StateDir)
		if _, err := os.Stat(stateDir); err == nil {
			output.Warning("%s/ already exists", db.StateDir)
			return nil
		}

		if ephemeralFlag {
			return fail(false, fmt.Errorf("%w: --ephemeral cannot be used with init", errBadArg))
		}
		if backendFlag != "" {
			err := config.Update(dir, func(c *config.Config) error {
				return c.Set("backend", backendFlag)
			})
			if err != nil {
				return fail(false, fmt.Errorf("%w: %v", errBadArg, err))
			}
		}

		a, err := openApp()
		if err != nil {
			return fail(false, err)
		}
		defer a.Close()

		if err := a.store.Flush(); err != nil {
			return fail(false, err)
		}
		fmt.Printf("INITIALIZED %s/ (backend: %s)\n", db.StateDir, a.backend)

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			addToGitignore(filepath.Join(dir, ".gitignore"))
		}
		return nil
	},
}

func addToGitignore(path string) {
	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), db.StateDir+"/") {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		f.WriteString("\n")
	}
	f.WriteString(db.StateDir + "/\n")
	fmt.Println("Added .nexaflow/ to .gitignore")
}

func init() {
	rootCmd.AddCommand(initCmd)
}
