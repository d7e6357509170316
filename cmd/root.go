// Package cmd provides the CLI commands for the toggl CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swcurran/toggl-cli/internal/output"
	"github.com/swcurran/toggl-cli/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version = "dev"
	Commit  = "unknown"
)

// Global flags.
var (
	flagFormat  string
	flagColor   string
	flagConfig  string
	flagVerbose bool
	flagDebug   bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "toggl",
	Short: "A command-line interface for the Toggl time-tracking service",
	Long: `toggl is a command-line client for the Toggl time-tracking service.

Examples:
  toggl start "writing the report" @acme
  toggl now
  toggl stop
  toggl continue "writing the report"
  toggl ls`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		opts := runtime.DefaultOptions()
		if flagConfig != "" {
			opts.ConfigPath = flagConfig
		}
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Verbose = flagVerbose
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the running entry.
		return runNow(cmd, args)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version + " (" + Commit + ")"

	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "cli", "Output format (cli, json, plain)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output (auto, always, never)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show entry ids in listings")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(continueCmd)
	rootCmd.AddCommand(nowCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(workspacesCmd)
}
