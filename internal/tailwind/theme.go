package tailwind

import (
	_ "embed"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

//go:embed theme.yaml
var defaultTheme []byte

// Theme holds the keyword dictionaries properties draw from, by scale name.
// Nested scales are flattened with "-", so colors.red.500 is "red-500".
type Theme map[string]map[string]string

// DefaultTheme returns a fresh copy of the built-in theme.
func DefaultTheme() Theme {
	t, err := ParseTheme(defaultTheme)
	if err != nil {
		panic(fmt.Sprintf("built-in theme: %v", err))
	}
	return t
}

// ParseTheme reads a theme from YAML. Keys are kept as written, so numeric
// keys such as 0.5 or 1/2 survive.
func ParseTheme(data []byte) (Theme, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	t := Theme{}
	if len(doc.Content) == 0 {
		return t, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse theme: expected a mapping at line %d", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, body := root.Content[i].Value, root.Content[i+1]
		scale := map[string]string{}
		if err := flatten(scale, "", body); err != nil {
			return nil, fmt.Errorf("parse theme: %s: %w", name, err)
		}
		t[name] = scale
	}
	return t, nil
}

func flatten(into map[string]string, prefix string, n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if prefix == "" {
			return fmt.Errorf("line %d: expected a mapping", n.Line)
		}
		into[prefix] = n.Value
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			switch {
			case prefix == "":
			case key == DefaultKeyword:
				// red: {DEFAULT: ..., 500: ...} gives "red" itself a value
				key = prefix
			default:
				key = prefix + "-" + key
			}
			if err := flatten(into, key, n.Content[i+1]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("line %d: unsupported value", n.Line)
	}
	return nil
}

// Scale returns the named scale, or an empty one.
func (t Theme) Scale(name string) map[string]string {
	if s, ok := t[name]; ok {
		return s
	}
	return map[string]string{}
}

// Clone returns a deep copy.
func (t Theme) Clone() Theme {
	out := make(Theme, len(t))
	for name, s := range t {
		out[name] = maps.Clone(s)
	}
	return out
}

// Extend returns a copy of t with the entries of other added, replacing
// keys present in both.
func (t Theme) Extend(other Theme) Theme {
	out := t.Clone()
	for name, s := range other {
		if out[name] == nil {
			out[name] = map[string]string{}
		}
		maps.Copy(out[name], s)
	}
	return out
}
