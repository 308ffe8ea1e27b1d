package cmd

import (
	"bennypowers.dev/jsxtree/internal/version"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer func() { _ = enc.Close() }()
			return enc.Encode(version.Get())
		},
	}
}
