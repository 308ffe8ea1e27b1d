package cmd

import (
	"fmt"
	"os"

	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"github.com/spf13/cobra"
)

// unsetValue is the VALUE argument that removes a property.
const unsetValue = "-"

func getCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "get FILE ELEMENT PROPERTY",
		Short: "Print a style property of an element.",
		Long:  "Get prints the value of PROPERTY for ELEMENT, followed by the CSS value it stands for. ELEMENT is a node id or the LINE:COLUMN location shown by `tree`.",
		Args:  cobra.ExactArgs(3),
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

			id, err := p.resolve(args[1])
			if err != nil {
				return err
			}
			v, ok, err := p.editor.Value(id, args[2])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case !ok:
				_, err = fmt.Fprintln(out, "unset")
			case tailwind.IsMixed(v):
				_, err = fmt.Fprintln(out, "mixed")
			default:
				_, err = fmt.Fprintf(out, "%s\t%s\n", v, tailwind.CSSValue(v))
			}
			return err
		},
	}

	return &cmd
}

func setCmd() *cobra.Command {
	var write bool

	cmd := cobra.Command{
		Use:   "set FILE ELEMENT PROPERTY VALUE",
		Short: "Set a style property of an element.",
		Long: "Set writes PROPERTY of ELEMENT and prints the edited source. " +
			"VALUE is a theme keyword such as red-500, or an arbitrary value such as [13px]; " +
			"\"-\" removes the property.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ref, property, input := args[0], args[1], args[2], args[3]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := openFile(cfg, path)
			if err != nil {
				return err
			}
			defer p.Close()

			id, err := p.resolve(ref)
			if err != nil {
				return err
			}

			var value tailwind.Value
			if input != unsetValue {
				if value, err = p.editor.Registry().ParseValue(property, input); err != nil {
					return err
				}
			}

			err = p.session.Edit(func(*store.Store) error {
				return p.editor.SetValue(id, property, value)
			})
			if err != nil {
				return err
			}
			source := p.session.Source()

			if write {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, []byte(source), info.Mode().Perm()); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				log.Info("Wrote %s", path)
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), source)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to FILE instead of stdout.")

	return &cmd
}
