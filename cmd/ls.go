package cmd

import (
	"github.com/spf13/cobra"
)

// lsCmd represents the ls command.
var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List recent time entries",
	Long:    `List time entries from the start of yesterday through today, bucketed by day.`,
	RunE:    runLs,
}

func runLs(cmd *cobra.Command, args []string) error {
	entries, err := ctx.Session.Entries().All(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.Formatter.IsJSON() {
		out := make([]map[string]any, 0, len(entries))
		for _, te := range entries {
			item := map[string]any{
				"description": te.Description(),
				"running":     te.IsRunning(),
			}
			if id, ok := te.ID(); ok {
				item["id"] = id
			}
			if seconds, err := te.NormalizedDuration(); err == nil {
				item["duration"] = seconds
			}
			out = append(out, item)
		}
		return ctx.Formatter.JSON(out)
	}

	ctx.Formatter.PrintEntries(cmd.Context(), entries, ctx.Session.Projects())
	return nil
}
