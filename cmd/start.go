package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/swcurran/toggl-cli/internal/api"
	"github.com/swcurran/toggl-cli/internal/parser"
)

// Start command flags.
var (
	startFlagProject   string
	startFlagWorkspace string
	startFlagTime      string
)

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:     "start [DESCRIPTION] [@PROJECT]",
	Aliases: []string{"s", "on"},
	Short:   "Start a new time entry",
	Long: `Start a new time entry. The entry keeps running until stopped.

Examples:
  toggl start "writing the report"
  toggl start "writing the report" @acme
  toggl start "writing the report" --time "10 minutes ago"`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startFlagProject, "project", "p", "", "Project name")
	startCmd.Flags().StringVarP(&startFlagWorkspace, "workspace", "w", "", "Workspace name")
	startCmd.Flags().StringVarP(&startFlagTime, "time", "t", "", "Start timestamp (natural language)")
}

// splitEntryArgs separates the description words from an @project argument.
func splitEntryArgs(args []string) (description, project string) {
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "@") && project == "" {
			project = strings.TrimPrefix(arg, "@")
			continue
		}
		words = append(words, arg)
	}
	return strings.Join(words, " "), project
}

func runStart(cmd *cobra.Command, args []string) error {
	description, project := splitEntryArgs(args)
	if project == "" {
		project = startFlagProject
	}

	opts := api.NewEntryOptions{
		Description: description,
		Project:     project,
		Workspace:   startFlagWorkspace,
	}

	if startFlagTime != "" {
		at, err := parser.Timestamp(startFlagTime, ctx.Clock.Now())
		if err != nil {
			return err
		}
		opts.StartTime = &at
	}

	te, err := ctx.Session.NewTimeEntry(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if err := te.Start(cmd.Context()); err != nil {
		return err
	}

	if ctx.Formatter.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"started": description})
	}
	ctx.Formatter.Printf("Started: %s\n", description)
	return nil
}

// parseTimeFlag parses an optional --time flag value.
func parseTimeFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	at, err := parser.Timestamp(value, ctx.Clock.Now())
	if err != nil {
		return nil, err
	}
	return &at, nil
}
