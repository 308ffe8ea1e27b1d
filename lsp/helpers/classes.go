// Package helpers locates class tokens of open documents for LSP handlers.
package helpers

import (

	"bennypowers.dev/jsxtree/internal/classname"
	"bennypowers.dev/jsxtree/internal/documents"
	"bennypowers.dev/jsxtree/internal/loader"
	"bennypowers.dev/jsxtree/internal/position"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/internal/tree"
	"bennypowers.dev/jsxtree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ErrStale is returned while the document text has not been rebuilt into a
// tree, typically because it does not parse.
var ErrStale = types.ErrStale

// ClassToken is one class token of a static class attribute.
type ClassToken struct {
	// NodeID is the id of the element holding the attribute.
	NodeID string
	Token  string
	// Start and End are byte offsets in the document text.
	Start int
	End   int
}

// Classes holds the class tokens of one document, in text order.
type Classes struct {
	Tokens []ClassToken
	Index  *position.Index
}

// DocumentClasses waits for pending rebuilds of doc and collects the class
// tokens of every element with a static class attribute.
func DocumentClasses(doc *documents.Document) (*Classes, error) {
	// A failed rebuild keeps the previous tree, which the text check below
	// rejects.
	_ = doc.Sync()

	root, err := doc.Session().Snapshot()
	if err != nil {
		return nil, err
	}
	r := loader.Render(root)
	if r.Text != doc.Content() {
		return nil, ErrStale
	}

	attribute := doc.Editor().Attribute()
	c := &Classes{Index: position.NewIndex(r.Text)}
	tree.Walk(root, func(n *tree.Node) bool {
		el, ok := n.Payload.(*tree.Element)
		if !ok {
			return true
		}
		i, attr := tree.FindAttribute(el.Attributes, attribute)
		spans := r.Attributes[n.ID]
		if i < 0 || attr.Value == nil || i >= len(spans) {
			return true
		}
		value := spans[i].Value
		start, end, ok := classname.ClassRange(r.Text[value.Start:value.End])
		if !ok {
			return true
		}
		c.Tokens = append(c.Tokens, split(n.ID, r.Text, value.Start+start, value.Start+end)...)
		return true
	})
	return c, nil
}

// split cuts text[start:end] into tokens the way the class codec does.
func split(id, text string, start, end int) []ClassToken {
	var out []ClassToken
	for _, r := range tailwind.TokenRanges(text[start:end]) {
		out = append(out, ClassToken{NodeID: id, Token: text[start+r.Start : start+r.End], Start: start + r.Start, End: start + r.End})
	}
	return out
}

// At returns the token under an LSP position. The position just after a
// token still counts as on it.
func (c *Classes) At(pos protocol.Position) (ClassToken, bool) {
	offset := c.Index.UTF16Offset(pos.Line, pos.Character)
	for _, t := range c.Tokens {
		if offset >= t.Start && offset <= t.End {
			return t, true
		}
	}
	return ClassToken{}, false
}

// Range converts a token's byte span to an LSP range.
func (c *Classes) Range(t ClassToken) protocol.Range {
	return ByteRange(c.Index, t.Start, t.End)
}

// ByteRange converts a byte span of the indexed text to an LSP range.
func ByteRange(ix *position.Index, start, end int) protocol.Range {
	sl, sc := ix.UTF16Position(start)
	el, ec := ix.UTF16Position(end)
	return protocol.Range{
		Start: protocol.Position{Line: sl, Character: sc},
		End:   protocol.Position{Line: el, Character: ec},
	}
}
