package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/output"
	"github.com/marcus/nexaflow/internal/query"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Fuzzy search across tasks, projects, events and goals",
	Long:    `Matches the query against titles and descriptions, best matches first.`,
	GroupID: "query",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		a, err := openApp()
		if err != nil {
			return fail(jsonOut, err)
		}
		defer a.Close()

		hits := query.Search(a.store.Snapshot(), args[0])
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(hits) > limit {
			hits = hits[:limit]
		}

		if jsonOut {
			return output.JSON(hits)
		}
		if len(hits) == 0 {
			fmt.Printf("No matches for %q\n", args[0])
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%-8s %-14d %s\n", h.Kind, h.ID, h.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("limit", "n", 20, "Maximum results")
	addJSONFlag(searchCmd)
}
