// Package cmd implements the jsxtree command line.
package cmd

import (
	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/version"
	"github.com/spf13/cobra"
)

var (
	chdir   string
	verbose bool
)

// Root returns the jsxtree command.
func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "jsxtree",
		Short:         "Read and edit JSX sources as node trees",
		Long:          "jsxtree loads JSX components into node trees, prints them back losslessly and edits utility-class style properties.",
		Version:       version.GetFullVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.LevelDebug)
			}
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&chdir, "chdir", ".", "Project root holding package.json or .config/jsxtree.yaml.")
	pflags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr.")

	cmd.AddCommand(checkCmd())
	cmd.AddCommand(treeCmd())
	cmd.AddCommand(printCmd())
	cmd.AddCommand(getCmd())
	cmd.AddCommand(setCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(versionCmd())

	return &cmd
}
