package loader

import (
	"strings"

	"bennypowers.dev/jsxtree/internal/tree"
)

// DebugIDAttribute is the synthetic attribute rendered by WithDebugIDs.
const DebugIDAttribute = "data-node-id"

type stringifyOptions struct {
	debugIDs bool
}

// StringifyOption configures Stringify and Render.
type StringifyOption func(*stringifyOptions)

// WithDebugIDs renders each element's id as an extra attribute. The
// attribute exists only in the output, never in the tree.
func WithDebugIDs() StringifyOption {
	return func(o *stringifyOptions) {
		o.debugIDs = true
	}
}

// Span is a half-open byte range of rendered output.
type Span struct {
	Start int
	End   int
}

// Contains reports whether offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// AttrSpan locates one rendered attribute and, when present, its value.
type AttrSpan struct {
	Span
	Value Span
}

// Rendering is the output of Render: the text plus where each node and
// attribute landed in it.
type Rendering struct {
	Text       string
	Nodes      map[string]Span
	Attributes map[string][]AttrSpan
}

// Stringify renders the subtree rooted at n back to source text. For a
// tree produced by Build and left unedited the result equals the source.
func Stringify(n *tree.Node, opts ...StringifyOption) string {
	w := newWriter(opts, false)
	w.node(n)
	return w.sb.String()
}

// Render is Stringify that also records output spans.
func Render(n *tree.Node, opts ...StringifyOption) *Rendering {
	w := newWriter(opts, true)
	w.node(n)
	w.r.Text = w.sb.String()
	return w.r
}

type writer struct {
	sb   strings.Builder
	opts stringifyOptions
	r    *Rendering
}

func newWriter(opts []StringifyOption, spans bool) *writer {
	w := &writer{}
	for _, opt := range opts {
		opt(&w.opts)
	}
	if spans {
		w.r = &Rendering{Nodes: map[string]Span{}, Attributes: map[string][]AttrSpan{}}
	}
	return w
}

func (w *writer) node(n *tree.Node) {
	if n == nil {
		return
	}
	start := w.sb.Len()
	switch p := n.Payload.(type) {
	case *tree.File:
		w.sb.WriteString(p.Header)
		w.children(n)
	case *tree.Component:
		w.sb.WriteString(p.Header)
		w.children(n)
		w.sb.WriteString(p.Footer)
	case *tree.Element:
		w.element(n, p)
	case *tree.Text:
		w.sb.WriteString(p.Text)
	case *tree.Expression:
		w.sb.WriteString("{")
		w.sb.WriteString(p.Code)
		w.sb.WriteString("}")
	case *tree.WrappingExpression:
		w.sb.WriteString(p.Header)
		w.children(n)
		w.sb.WriteString(p.Footer)
	}
	if w.r != nil && n.ID != "" {
		w.r.Nodes[n.ID] = Span{Start: start, End: w.sb.Len()}
	}
}

func (w *writer) children(n *tree.Node) {
	for _, child := range n.Children {
		w.node(child)
	}
}

func (w *writer) element(n *tree.Node, el *tree.Element) {
	debugID := w.opts.debugIDs && el.TagName != "" && n.ID != ""

	w.sb.WriteString("<")
	w.sb.WriteString(el.LeadingSpace)
	w.sb.WriteString(el.TagName)
	if debugID && len(el.Attributes) == 0 {
		w.debugAttribute(n.ID)
	}
	w.sb.WriteString(el.SpaceAfterTagName)

	var spans []AttrSpan
	for i, a := range el.Attributes {
		span := AttrSpan{Span: Span{Start: w.sb.Len()}}
		switch a := a.(type) {
		case tree.Attribute:
			w.sb.WriteString(a.Name)
			if a.Value != nil {
				w.sb.WriteString(a.Separator)
				span.Value.Start = w.sb.Len()
				w.sb.WriteString(*a.Value)
				span.Value.End = w.sb.Len()
			}
		case tree.SpreadAttribute:
			w.sb.WriteString("{")
			w.sb.WriteString(a.Spread)
			w.sb.WriteString("}")
		}
		span.End = w.sb.Len()
		spans = append(spans, span)
		if debugID && i == len(el.Attributes)-1 {
			w.debugAttribute(n.ID)
		}
		w.sb.WriteString(a.Trailing())
	}
	if w.r != nil && n.ID != "" {
		w.r.Attributes[n.ID] = spans
	}

	w.sb.WriteString(el.OpenEnd)
	w.children(n)
	w.sb.WriteString(el.CloseTag)
}

func (w *writer) debugAttribute(id string) {
	w.sb.WriteString(" ")
	w.sb.WriteString(DebugIDAttribute)
	w.sb.WriteString(`="`)
	w.sb.WriteString(id)
	w.sb.WriteString(`"`)
}
