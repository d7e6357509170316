package cmd

import (
	"github.com/spf13/cobra"
)

// nowCmd represents the now command.
var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show the running time entry",
	RunE:  runNow,
}

func runNow(cmd *cobra.Command, args []string) error {
	te, err := ctx.Session.Entries().Now(cmd.Context())
	if err != nil {
		return err
	}

	if ctx.Formatter.IsJSON() {
		if te == nil {
			return ctx.Formatter.JSON(map[string]any{"running": nil})
		}
		elapsed, err := te.NormalizedDuration()
		if err != nil {
			return err
		}
		return ctx.Formatter.JSON(map[string]any{
			"running":  te.Description(),
			"duration": elapsed,
		})
	}

	ctx.Formatter.PrintStatus(cmd.Context(), te, ctx.Session.Projects())
	return nil
}
