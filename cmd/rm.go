package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// rmCmd represents the rm command.
var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a time entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return err
	}

	te := ctx.Session.EntryWithID(id)
	if err := te.Delete(cmd.Context()); err != nil {
		return err
	}

	if ctx.Formatter.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"deleted": id})
	}
	ctx.Formatter.Printf("Deleted entry %d\n", id)
	return nil
}
