package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/report"
)

var exportCmd = &cobra.Command{
	Use:       "export <tasks|projects>",
	Short:     "Write a CSV report of tasks or projects",
	Long:      `Writes productivity-report-<date>.csv (tasks) or project-summary-<date>.csv (projects). Use --out - for stdout.`,
	GroupID:   "query",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"tasks", "projects"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := report.ParseKind(args[0])
		if err != nil {
			return fail(false, fmt.Errorf("%w: %v", errBadArg, err))
		}

		a, err := openApp()
		if err != nil {
			return fail(false, err)
		}
		defer a.Close()

		out, _ := cmd.Flags().GetString("out")
		if out == "-" {
			return report.WriteCSV(os.Stdout, kind, a.store.Snapshot())
		}
		if out == "" {
			out = report.Filename(kind, a.store.Today())
		}

		f, err := os.Create(out)
		if err != nil {
			return fail(false, err)
		}
		if err := report.WriteCSV(f, kind, a.store.Snapshot()); err != nil {
			f.Close()
			return fail(false, err)
		}
		if err := f.Close(); err != nil {
			return fail(false, err)
		}

		abs, _ := filepath.Abs(out)
		output.Success("EXPORTED %s", abs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: dated name in the current directory, - for stdout)")
}
