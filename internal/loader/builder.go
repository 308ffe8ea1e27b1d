// Package loader converts JSX component source into a node tree and back.
package loader

import (
	"bennypowers.dev/jsxtree/internal/identity"
	"bennypowers.dev/jsxtree/internal/parser/jsx"
	"bennypowers.dev/jsxtree/internal/position"
	"bennypowers.dev/jsxtree/internal/tree"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

type buildOptions struct {
	filePath string
	previous *tree.Node
	reuser   *identity.Reuser
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithFilePath records the path of the source file on the File node.
func WithFilePath(path string) BuildOption {
	return func(o *buildOptions) {
		o.filePath = path
	}
}

// WithPrevious reuses the ids of a previous tree at matching positions.
func WithPrevious(previous *tree.Node) BuildOption {
	return func(o *buildOptions) {
		o.previous = previous
	}
}

// WithReuser resolves ids with r instead of a reuser built from the
// previous tree.
func WithReuser(r *identity.Reuser) BuildOption {
	return func(o *buildOptions) {
		o.reuser = r
	}
}

// Build parses source and returns its File node with every id assigned.
// A source the parser rejects yields a *jsx.SyntaxError and no tree.
func Build(source string, opts ...BuildOption) (*tree.Node, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	parser := jsx.AcquireParser()
	defer jsx.ReleaseParser(parser)

	syntax, err := parser.Parse([]byte(source))
	if err != nil {
		return nil, err
	}
	defer syntax.Close()

	b := &builder{source: source, index: position.NewIndex(source)}
	root := b.file(syntax.RootNode(), o.filePath)

	r := o.reuser
	if r == nil {
		r = identity.NewReuser(o.previous)
	}
	identity.Assign(root, r)
	return root, nil
}

type builder struct {
	source string
	index  *position.Index
}

// match is a top-level statement recognized as a component.
type match struct {
	statement *sitter.Node
	element   *sitter.Node
	name      string
	isDefault bool
}

func (b *builder) text(start, end uint) string {
	return Extract(b.source, int(start), int(end))
}

func (b *builder) location(n *sitter.Node) tree.Location {
	pos := n.StartPosition()
	return tree.Location{Line: int(pos.Row), Column: int(pos.Column)}
}

func (b *builder) locationAt(offset uint) tree.Location {
	line, col := b.index.Position(int(offset))
	return tree.Location{Line: line, Column: col}
}

func (b *builder) file(program *sitter.Node, filePath string) *tree.Node {
	var matches []match
	for i := uint(0); i < program.NamedChildCount(); i++ {
		if m, ok := b.component(program.NamedChild(i)); ok {
			matches = append(matches, m)
		}
	}

	header := b.source
	if len(matches) > 0 {
		header = b.text(0, matches[0].statement.StartByte())
	}
	root := &tree.Node{Payload: &tree.File{FilePath: filePath, Header: header}}

	for i, m := range matches {
		footerEnd := uint(len(b.source))
		if i+1 < len(matches) {
			footerEnd = matches[i+1].statement.StartByte()
		}
		root.Children = append(root.Children, &tree.Node{
			Location: b.location(m.statement),
			Payload: &tree.Component{
				Name:            m.name,
				Header:          b.text(m.statement.StartByte(), m.element.StartByte()),
				Footer:          b.text(m.element.EndByte(), footerEnd),
				IsDefaultExport: m.isDefault,
			},
			Children: []*tree.Node{b.element(m.element)},
		})
	}
	return root
}

// component recognizes `export [default] function Name(...) { ... return <jsx/>; }`.
func (b *builder) component(stmt *sitter.Node) (match, bool) {
	if stmt.Kind() != jsx.KindExportStatement {
		return match{}, false
	}
	fn := stmt.ChildByFieldName("declaration")
	if fn == nil {
		fn = stmt.ChildByFieldName("value")
	}
	if fn == nil {
		return match{}, false
	}
	switch fn.Kind() {
	case jsx.KindFunctionDeclaration, jsx.KindFunctionExpression, jsx.KindFunction:
	default:
		return match{}, false
	}

	m := match{statement: stmt, name: "default"}
	for i := uint(0); i < stmt.ChildCount(); i++ {
		if stmt.Child(i).Kind() == "default" {
			m.isDefault = true
		}
	}
	if name := fn.ChildByFieldName("name"); name != nil {
		m.name = b.text(name.StartByte(), name.EndByte())
	}

	body := fn.ChildByFieldName("body")
	if body == nil || body.Kind() != jsx.KindStatementBlock {
		return match{}, false
	}
	var ret *sitter.Node
	for i := uint(0); i < body.NamedChildCount(); i++ {
		if s := body.NamedChild(i); s.Kind() == jsx.KindReturnStatement {
			ret = s
		}
	}
	if ret == nil {
		return match{}, false
	}

	value := firstNamed(ret)
	for value != nil && value.Kind() == jsx.KindParenthesized {
		value = firstNamed(value)
	}
	if value == nil || !jsx.IsElement(value.Kind()) {
		return match{}, false
	}
	m.element = value
	return m, true
}

// firstNamed returns the first named child that is not a comment.
func firstNamed(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() != jsx.KindComment {
			return c
		}
	}
	return nil
}

func (b *builder) element(n *sitter.Node) *tree.Node {
	el := &tree.Element{}
	node := &tree.Node{Location: b.location(n), Payload: el}

	if n.Kind() == jsx.KindSelfClosingElement {
		el.SelfClosing = true
		b.openingTag(n, el)
		return node
	}

	open := n.ChildByFieldName("open_tag")
	closing := n.ChildByFieldName("close_tag")
	if open == nil || closing == nil {
		open, closing = n.Child(0), n.Child(n.ChildCount()-1)
	}
	b.openingTag(open, el)
	el.CloseTag = b.text(closing.StartByte(), closing.EndByte())

	cursor := open.EndByte()
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.StartByte() < open.EndByte() || child.EndByte() > closing.StartByte() {
			continue
		}
		var built *tree.Node
		switch {
		case jsx.IsElement(child.Kind()):
			built = b.element(child)
		case child.Kind() == jsx.KindExpression:
			built = b.expression(child)
		default:
			// text, character references and comments are covered by the
			// gaps between structural children
			continue
		}
		if child.StartByte() > cursor {
			node.Children = append(node.Children, b.textNode(cursor, child.StartByte()))
		}
		node.Children = append(node.Children, built)
		cursor = child.EndByte()
	}
	if closing.StartByte() > cursor {
		node.Children = append(node.Children, b.textNode(cursor, closing.StartByte()))
	}
	return node
}

func (b *builder) textNode(start, end uint) *tree.Node {
	return &tree.Node{
		Location: b.locationAt(start),
		Payload:  &tree.Text{Text: b.text(start, end)},
	}
}

// openingTag fills the literal fragments of an opening or self-closing tag.
func (b *builder) openingTag(tag *sitter.Node, el *tree.Element) {
	nameEnd := tag.StartByte() + 1
	marker := tag.EndByte()
	var attrs []*sitter.Node
	for i := uint(0); i < tag.ChildCount(); i++ {
		child := tag.Child(i)
		switch child.Kind() {
		case "<":
			nameEnd = child.EndByte()
		case "/", ">":
			marker = min(marker, child.StartByte())
		case jsx.KindAttribute, jsx.KindExpression:
			attrs = append(attrs, child)
		}
	}
	ltEnd := nameEnd

	if name := tag.ChildByFieldName("name"); name != nil {
		el.LeadingSpace = b.text(ltEnd, name.StartByte())
		el.TagName = b.text(name.StartByte(), name.EndByte())
		nameEnd = name.EndByte()
	}
	el.OpenEnd = b.text(marker, tag.EndByte())

	if len(attrs) == 0 {
		el.SpaceAfterTagName = b.text(nameEnd, marker)
		return
	}
	el.SpaceAfterTagName = b.text(nameEnd, attrs[0].StartByte())
	for i, a := range attrs {
		next := marker
		if i+1 < len(attrs) {
			next = attrs[i+1].StartByte()
		}
		trailing := b.text(a.EndByte(), next)
		el.Attributes = append(el.Attributes, b.attribute(a, trailing))
	}
}

func (b *builder) attribute(a *sitter.Node, trailing string) tree.Attr {
	if a.Kind() == jsx.KindExpression {
		return tree.SpreadAttribute{
			Spread:        b.text(a.StartByte()+1, a.EndByte()-1),
			TrailingSpace: trailing,
		}
	}
	name := a.Child(0)
	attr := tree.Attribute{
		Name:          b.text(name.StartByte(), name.EndByte()),
		TrailingSpace: trailing,
	}
	if a.ChildCount() > 1 {
		value := a.Child(a.ChildCount() - 1)
		literal := b.text(value.StartByte(), value.EndByte())
		attr.Separator = b.text(name.EndByte(), value.StartByte())
		attr.Value = &literal
	}
	return attr
}

// expression builds a {...} child. A container holding exactly one element
// becomes a WrappingExpression around that element.
func (b *builder) expression(n *sitter.Node) *tree.Node {
	var inner []*sitter.Node
	collectElements(n, &inner)
	if len(inner) == 1 {
		el := inner[0]
		return &tree.Node{
			Location: b.location(n),
			Payload: &tree.WrappingExpression{
				Header: b.text(n.StartByte(), el.StartByte()),
				Footer: b.text(el.EndByte(), n.EndByte()),
			},
			Children: []*tree.Node{b.element(el)},
		}
	}
	return &tree.Node{
		Location: b.location(n),
		Payload:  &tree.Expression{Code: b.text(n.StartByte()+1, n.EndByte()-1)},
	}
}

// collectElements appends the outermost JSX elements below n.
func collectElements(n *sitter.Node, out *[]*sitter.Node) {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if jsx.IsElement(child.Kind()) {
			*out = append(*out, child)
			continue
		}
		collectElements(child, out)
	}
}
