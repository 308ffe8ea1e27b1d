package jsx

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser produces position-annotated syntax trees for JavaScript with JSX.
type Parser struct {
	parser *sitter.Parser
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JSX parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
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

// Parse parses source and returns its syntax tree. The caller owns the
// tree and must Close it. Source containing any syntax error yields a
// *SyntaxError and no tree.
func (p *Parser) Parse(source []byte) (*sitter.Tree, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree")
	}
	root := tree.RootNode()
	if root.HasError() {
		err := syntaxErrorAt(root, source)
		tree.Close()
		return nil, err
	}
	return tree, nil
}

// firstError returns the first ERROR or MISSING node in source order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}

func syntaxErrorAt(root *sitter.Node, source []byte) error {
	n := firstError(root)
	if n == nil {
		pos := root.StartPosition()
		return NewSyntaxError("invalid syntax", int(pos.Row), int(pos.Column))
	}
	pos := n.StartPosition()
	return NewSyntaxError(describe(n, source), int(pos.Row), int(pos.Column))
}

const snippetLimit = 24

func describe(n *sitter.Node, source []byte) string {
	if n.IsMissing() {
		return fmt.Sprintf("missing %q", n.Kind())
	}
	start, end := n.StartByte(), n.EndByte()
	if start >= uint(len(source)) {
		return "unexpected end of input"
	}
	if end > start+snippetLimit {
		end = start + snippetLimit
	}
	return fmt.Sprintf("unexpected %q", string(source[start:end]))
}
