// Package tree defines the editable node tree built from JSX component source.
//
// A Node carries the header shared by every kind (id, location, children)
// and a kind-specific Payload. The set of payloads is closed: File,
// Component, Element, Text, Expression and WrappingExpression.
package tree

import "fmt"

// Kind identifies the payload variant of a node.
type Kind int

const (
	KindFile Kind = iota + 1
	KindComponent
	KindElement
	KindText
	KindExpression
	KindWrappingExpression
)

var kindNames = map[Kind]string{
	KindFile:               "file",
	KindComponent:          "component",
	KindElement:            "element",
	KindText:               "text",
	KindExpression:         "expression",
	KindWrappingExpression: "wrappingExpression",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// Location is the zero-based line and column of a node's defining syntax.
type Location struct {
	Line   int `yaml:"line" json:"line"`
	Column int `yaml:"column" json:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Node is one entry of the tree.
type Node struct {
	ID       string
	Location Location
	Children []*Node
	Payload  Payload
}

// Kind returns the kind of the node's payload.
func (n *Node) Kind() Kind {
	if n == nil || n.Payload == nil {
		return 0
	}
	return n.Payload.Kind()
}

// Payload is implemented by the kind-specific node data.
type Payload interface {
	Kind() Kind
	clone() Payload
}

// File is the root of a tree.
type File struct {
	FilePath string
	// Header is the literal text preceding the first component.
	Header string
}

// Component is an exported function declaration that returns one element.
type Component struct {
	Name string
	// Header runs from the export keyword up to the returned element.
	Header string
	// Footer runs from the end of the returned element up to the next
	// component, or the end of the file for the last one.
	Footer          string
	IsDefaultExport bool
}

// Element is a JSX element or fragment. Fragments have an empty TagName.
type Element struct {
	// LeadingSpace is any whitespace between "<" and the tag name.
	LeadingSpace      string
	TagName           string
	SpaceAfterTagName string
	Attributes        []Attr
	SelfClosing       bool
	// OpenEnd is the literal close marker of the opening tag, ">" or "/>".
	OpenEnd string
	// CloseTag is the literal closing tag, empty when self-closing.
	CloseTag string
}

// Text is verbatim JSX text between tags, including whitespace and
// character references.
type Text struct {
	Text string
}

// Expression is a {...} container that does not wrap a single element.
// Code excludes the braces.
type Expression struct {
	Code string
}

// WrappingExpression is a {...} container whose body holds exactly one
// element, which is the node's only child.
type WrappingExpression struct {
	Header string
	Footer string
}

func (*File) Kind() Kind               { return KindFile }
func (*Component) Kind() Kind          { return KindComponent }
func (*Element) Kind() Kind            { return KindElement }
func (*Text) Kind() Kind               { return KindText }
func (*Expression) Kind() Kind         { return KindExpression }
func (*WrappingExpression) Kind() Kind { return KindWrappingExpression }

func (p *File) clone() Payload               { c := *p; return &c }
func (p *Component) clone() Payload          { c := *p; return &c }
func (p *Text) clone() Payload               { c := *p; return &c }
func (p *Expression) clone() Payload         { c := *p; return &c }
func (p *WrappingExpression) clone() Payload { c := *p; return &c }

func (p *Element) clone() Payload {
	c := *p
	c.Attributes = CloneAttrs(p.Attributes)
	return &c
}

// NewPayload returns the zero payload for kind.
func NewPayload(kind Kind) (Payload, error) {
	switch kind {
	case KindFile:
		return &File{}, nil
	case KindComponent:
		return &Component{}, nil
	case KindElement:
		return &Element{OpenEnd: ">"}, nil
	case KindText:
		return &Text{}, nil
	case KindExpression:
		return &Expression{}, nil
	case KindWrappingExpression:
		return &WrappingExpression{}, nil
	}
	return nil, fmt.Errorf("unknown node kind %v", kind)
}

// ClonePayload returns a deep copy of p.
func ClonePayload(p Payload) Payload {
	if p == nil {
		return nil
	}
	return p.clone()
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{ID: n.ID, Location: n.Location, Payload: ClonePayload(n.Payload)}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Walk visits n and its descendants depth-first in pre-order. Returning
// false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Find returns the first node in pre-order with the given id.
func Find(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
