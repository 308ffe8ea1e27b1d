package cmd

import (
	"bennypowers.dev/jsxtree/lsp"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "serve",
		Short: "Run the language server over stdio.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := lsp.NewServer()
			if err != nil {
				return err
			}
			defer func() { _ = server.Close() }()

			// Run with stdio transport (for VSCode and other editors)
			return server.RunStdio()
		},
	}

	return &cmd
}
