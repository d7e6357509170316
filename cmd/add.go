package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/swcurran/toggl-cli/internal/api"
	"github.com/swcurran/toggl-cli/internal/parser"
)

// Add command flags.
var (
	addFlagProject   string
	addFlagWorkspace string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add DESCRIPTION START (END | DURATION)",
	Short: "Add a completed time entry",
	Long: `Add a completed time entry with an explicit interval. The third argument
is either an end timestamp or a duration such as 1h30m.

Examples:
  toggl add "writing the report" "9am" "11:30am"
  toggl add "writing the report" "2 hours ago" 1h30m
  toggl add "writing the report" "9am" 45m --project acme`,
	Args: cobra.ExactArgs(3),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFlagProject, "project", "p", "", "Project name")
	addCmd.Flags().StringVarP(&addFlagWorkspace, "workspace", "w", "", "Workspace name")
}

func runAdd(cmd *cobra.Command, args []string) error {
	description := args[0]

	start, err := parser.Timestamp(args[1], ctx.Clock.Now())
	if err != nil {
		return err
	}

	// The third argument is a duration when it parses as one, otherwise an
	// end timestamp.
	var seconds int64
	if d, derr := parser.Duration(args[2]); derr == nil {
		seconds = int64(d.Seconds())
	} else {
		end, err := parser.Timestamp(args[2], ctx.Clock.Now())
		if err != nil {
			return err
		}
		seconds = ctx.Clock.EpochSeconds(end) - ctx.Clock.EpochSeconds(start)
	}

	stopTime := start.Add(time.Duration(seconds) * time.Second)
	opts := api.NewEntryOptions{
		Description: description,
		StartTime:   &start,
		StopTime:    &stopTime,
		Duration:    &seconds,
		Project:     addFlagProject,
		Workspace:   addFlagWorkspace,
	}

	te, err := ctx.Session.NewTimeEntry(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if err := te.Add(cmd.Context()); err != nil {
		return err
	}

	if ctx.Formatter.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"added": description, "duration": seconds})
	}
	ctx.Formatter.Printf("Added: %s\n", description)
	return nil
}
