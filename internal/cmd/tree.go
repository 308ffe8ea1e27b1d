package cmd

import (
	"bennypowers.dev/jsxtree/internal/tree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// dumpNode is the YAML shape of a node.
type dumpNode struct {
	ID       string         `yaml:"id"`
	Kind     string         `yaml:"kind"`
	Location string         `yaml:"location"`
	Fields   map[string]any `yaml:"fields,omitempty"`
	Children []*dumpNode    `yaml:"children,omitempty"`
}

func dump(n *tree.Node) *dumpNode {
	d := &dumpNode{
		ID:       n.ID,
		Kind:     n.Kind().String(),
		Location: n.Location.String(),
		Fields:   dumpFields(n.Payload),
	}
	for _, child := range n.Children {
		d.Children = append(d.Children, dump(child))
	}
	return d
}

// dumpFields keeps the fields that carry meaning; whitespace and raw
// delimiters are left out.
func dumpFields(p tree.Payload) map[string]any {
	switch p := p.(type) {
	case *tree.File:
		return map[string]any{tree.FieldFilePath: p.FilePath}
	case *tree.Component:
		return map[string]any{tree.FieldName: p.Name, tree.FieldIsDefaultExport: p.IsDefaultExport}
	case *tree.Element:
		fields := map[string]any{tree.FieldTagName: p.TagName}
		if p.SelfClosing {
			fields[tree.FieldSelfClosing] = true
		}
		var attrs []string
		for _, a := range p.Attributes {
			switch a := a.(type) {
			case tree.Attribute:
				if a.Value == nil {
					attrs = append(attrs, a.Name)
				} else {
					attrs = append(attrs, a.Name+"="+*a.Value)
				}
			case tree.SpreadAttribute:
				attrs = append(attrs, "{"+a.Spread+"}")
			}
		}
		if len(attrs) > 0 {
			fields[tree.FieldAttributes] = attrs
		}
		return fields
	case *tree.Text:
		return map[string]any{tree.FieldText: p.Text}
	case *tree.Expression:
		return map[string]any{tree.FieldCode: p.Code}
	case *tree.WrappingExpression:
		return map[string]any{tree.FieldHeader: p.Header, tree.FieldFooter: p.Footer}
	}
	return nil
}

func treeCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "tree FILE",
		Short: "Print the node tree of a file as YAML.",
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

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(dump(root)); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	return &cmd
}
