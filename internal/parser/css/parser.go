package css

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// ErrInvalid indicates CSS the parser could not read without errors.
var ErrInvalid = errors.New("invalid CSS")

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// ParseDeclarations parses the contents of a declaration block, such as
// `color: red; margin: 0 auto`.
func (p *Parser) ParseDeclarations(block string) ([]Declaration, error) {
	// Wrap in a dummy rule so tree-sitter-css sees a stylesheet
	source := []byte("x{" + block + "}")
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: %q", ErrInvalid, block)
	}

	var decls []Declaration
	walk(root, func(n *sitter.Node) bool {
		if n.Kind() != "declaration" {
			return true
		}
		if d, ok := declaration(n, source); ok {
			decls = append(decls, d)
		}
		return false
	})
	return decls, nil
}

func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if !fn(n) {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		walk(n.Child(i), fn)
	}
}

func declaration(n *sitter.Node, source []byte) (Declaration, bool) {
	var d Declaration
	var start, end uint
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "property_name":
			d.Property = string(source[child.StartByte():child.EndByte()])
		case ":", ";":
		default:
			if start == 0 {
				start = child.StartByte()
			}
			end = child.EndByte()
		}
	}
	if d.Property == "" {
		return d, false
	}
	if end > start {
		d.Value = string(source[start:end])
		walk(n, func(c *sitter.Node) bool {
			if c.Kind() == "call_expression" {
				if v := varName(c, source); v != "" {
					d.Vars = append(d.Vars, v)
				}
			}
			return true
		})
	}
	return d, true
}

// varName returns the custom property of a var() call, or "".
func varName(call *sitter.Node, source []byte) string {
	var name, args *sitter.Node
	for i := uint(0); i < call.ChildCount(); i++ {
		switch c := call.Child(i); c.Kind() {
		case "function_name":
			name = c
		case "arguments":
			args = c
		}
	}
	if name == nil || args == nil || string(source[name.StartByte():name.EndByte()]) != "var" {
		return ""
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		c := args.Child(i)
		switch c.Kind() {
		case "(", ")", ",":
			continue
		}
		return strings.TrimSpace(string(source[c.StartByte():c.EndByte()]))
	}
	return ""
}

// ValidDeclaration reports whether `property: value` parses as a single
// CSS declaration.
func ValidDeclaration(property, value string) bool {
	if strings.ContainsAny(value, "{};") || strings.TrimSpace(value) == "" {
		return false
	}
	p := AcquireParser()
	defer ReleaseParser(p)
	decls, err := p.ParseDeclarations(property + ":" + value)
	return err == nil && len(decls) == 1 && decls[0].Property == property
}
