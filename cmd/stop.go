package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swcurran/toggl-cli/internal/timeutil"
)

// Stop command flags.
var stopFlagTime string

// stopCmd represents the stop command.
var stopCmd = &cobra.Command{
	Use:     "stop",
	Aliases: []string{"end"},
	Short:   "Stop the running time entry",
	Long: `Stop the currently running time entry.

Examples:
  toggl stop
  toggl stop --time "5 minutes ago"`,
	RunE: runStop,
}

func init() {
	stopCmd.Flags().StringVarP(&stopFlagTime, "time", "t", "", "Stop timestamp (natural language)")
}

func runStop(cmd *cobra.Command, args []string) error {
	te, err := ctx.Session.Entries().Now(cmd.Context())
	if err != nil {
		return err
	}
	if te == nil {
		ctx.Formatter.Println("No time entry is running.")
		return nil
	}

	at, err := parseTimeFlag(stopFlagTime)
	if err != nil {
		return err
	}
	if err := te.Stop(cmd.Context(), at); err != nil {
		return err
	}

	elapsed, err := te.NormalizedDuration()
	if err != nil {
		return err
	}
	if ctx.Formatter.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{
			"stopped":  te.Description(),
			"duration": elapsed,
		})
	}
	ctx.Formatter.Printf("Stopped: %s (%s)\n", te.Description(), timeutil.FormatElapsed(elapsed))
	return nil
}
