package cmd

import (
	"fmt"

	"bennypowers.dev/jsxtree/internal/loader"
	"github.com/spf13/cobra"
)

func printCmd() *cobra.Command {
	var debugIDs bool

	cmd := cobra.Command{
		Use:   "print FILE",
		Short: "Print a file from its node tree.",
		Long:  "Print loads FILE into a node tree and stringifies it. Without --debug-ids the output equals the input.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := openFile(cfg, args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			root, err := p.session.Snapshot()
			if err != nil {
				return err
			}
			var opts []loader.StringifyOption
			if debugIDs || cfg.DebugIDs {
				opts = append(opts, loader.WithDebugIDs())
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), loader.Stringify(root, opts...))
			return err
		},
	}

	cmd.Flags().BoolVar(&debugIDs, "debug-ids", false, "Render each element's node id as a data-node-id attribute.")

	return &cmd
}
