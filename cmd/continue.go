package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/swcurran/toggl-cli/internal/api"
)

// Continue command flags.
var continueFlagTime string

// continueCmd represents the continue command.
var continueCmd = &cobra.Command{
	Use:     "continue [DESCRIPTION]",
	Aliases: []string{"c"},
	Short:   "Continue a recent time entry",
	Long: `Restart time tracking with the metadata of a recent entry. Without a
description the latest entry is continued. An entry started today is resumed
in place; an older entry (or any entry when continue_creates is set) spawns
a new one.

Examples:
  toggl continue
  toggl continue "writing the report"
  toggl continue --time "10 minutes ago"`,
	RunE: runContinue,
}

func init() {
	continueCmd.Flags().StringVarP(&continueFlagTime, "time", "t", "", "Continue timestamp (natural language)")
}

func runContinue(cmd *cobra.Command, args []string) error {
	entries := ctx.Session.Entries()

	var te *api.TimeEntry
	var err error
	if len(args) > 0 {
		te, err = entries.FindByDescription(cmd.Context(), strings.Join(args, " "))
	} else {
		te, err = entries.Latest(cmd.Context())
	}
	if err != nil {
		return err
	}

	at, err := parseTimeFlag(continueFlagTime)
	if err != nil {
		return err
	}

	entry, err := te.Continue(cmd.Context(), at)
	if err != nil {
		return err
	}

	if ctx.Formatter.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"continued": entry.Description()})
	}
	ctx.Formatter.Printf("Continued: %s\n", entry.Description())
	return nil
}
