// Package classname edits style properties through the utility-class
// attribute of elements held in a store.
package classname

import (
	"errors"
	"fmt"
	"slices"

	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/internal/tree"
)

// DefaultAttribute is the attribute holding class tokens in JSX.
const DefaultAttribute = "className"

var (
	// ErrDynamicClassName is returned when the class attribute is an
	// expression rather than a static string.
	ErrDynamicClassName = errors.New("class attribute is not a static string")
	// ErrNotElement is returned for ids that are not elements.
	ErrNotElement = errors.New("not an element")
)

// Editor reads and writes properties of elements in a store.
type Editor struct {
	store     *store.Store
	registry  *tailwind.Registry
	attribute string
	tokens    *store.Cache[[]string]
}

// Option configures an Editor.
type Option func(*Editor)

// WithAttribute edits attribute name instead of className.
func WithAttribute(name string) Option {
	return func(e *Editor) {
		if name != "" {
			e.attribute = name
		}
	}
}

// NewEditor returns an editor over s. Close releases its cache.
func NewEditor(s *store.Store, r *tailwind.Registry, opts ...Option) *Editor {
	e := &Editor{
		store:     s,
		registry:  r,
		attribute: DefaultAttribute,
		tokens:    store.NewCache[[]string](s),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Close stops tracking store changes.
func (e *Editor) Close() {
	e.tokens.Close()
}

// Attribute returns the name of the edited attribute.
func (e *Editor) Attribute() string {
	return e.attribute
}

// Registry returns the property registry.
func (e *Editor) Registry() *tailwind.Registry {
	return e.registry
}

func (e *Editor) element(id string) (*tree.Element, error) {
	rec, ok := e.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	el, ok := rec.Payload.(*tree.Element)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotElement, id, rec.Kind)
	}
	return el, nil
}

// Tokens returns the class tokens of element id. An element without the
// attribute has no tokens.
func (e *Editor) Tokens(id string) ([]string, error) {
	tokens, err := e.tokens.Get(id, func() ([]string, error) {
		el, err := e.element(id)
		if err != nil {
			return nil, err
		}
		i, attr := tree.FindAttribute(el.Attributes, e.attribute)
		if i < 0 {
			return []string{}, nil
		}
		lit, err := e.literal(id, attr)
		if err != nil {
			return nil, err
		}
		return tailwind.Tokens(lit.class), nil
	})
	return slices.Clone(tokens), err
}

func (e *Editor) literal(id string, attr tree.Attribute) (literal, error) {
	if attr.Value == nil {
		return literal{}, fmt.Errorf("%w: %s has a bare %s", ErrDynamicClassName, id, e.attribute)
	}
	lit, ok := parseLiteral(*attr.Value)
	if !ok {
		return literal{}, fmt.Errorf("%w: %s=%s", ErrDynamicClassName, e.attribute, *attr.Value)
	}
	return lit, nil
}

// Value returns the named property of element id. ok is false when the
// property is unset.
func (e *Editor) Value(id, property string) (v tailwind.Value, ok bool, err error) {
	a, err := e.registry.Lookup(property)
	if err != nil {
		return nil, false, err
	}
	tokens, err := e.Tokens(id)
	if err != nil {
		return nil, false, err
	}
	v, ok = a.Value(tokens)
	return v, ok, nil
}

// SetValue writes the named property of element id. A nil value removes
// it. The class attribute keeps its quoting and is appended when missing.
func (e *Editor) SetValue(id, property string, v tailwind.Value) error {
	a, err := e.registry.Lookup(property)
	if err != nil {
		return err
	}
	el, err := e.element(id)
	if err != nil {
		return err
	}

	attrs := tree.CloneAttrs(el.Attributes)
	i, attr := tree.FindAttribute(attrs, e.attribute)
	var lit literal
	if i >= 0 {
		if lit, err = e.literal(id, attr); err != nil {
			return err
		}
	} else {
		if v == nil {
			return nil
		}
		if el.TagName == "" {
			return fmt.Errorf("%w: %s is a fragment", ErrNotElement, id)
		}
		lit = literal{open: `"`, close: `"`}
	}

	tokens := a.SetValue(tailwind.Tokens(lit.class), v)
	lit.class = tailwind.Splice(lit.class, tokens)
	value := lit.String()

	if i >= 0 {
		attr.Value = &value
		attrs[i] = attr
		return e.store.SetField(id, tree.FieldAttributes, attrs)
	}

	added := tree.NewAttribute(e.attribute, value)
	if len(attrs) == 0 {
		added.TrailingSpace = el.SpaceAfterTagName
		if err := e.store.SetField(id, tree.FieldSpaceAfterTagName, " "); err != nil {
			return err
		}
	} else {
		last := len(attrs) - 1
		added.TrailingSpace = attrs[last].Trailing()
		attrs[last] = attrs[last].WithTrailing(" ")
	}
	return e.store.SetField(id, tree.FieldAttributes, append(attrs, added))
}

// Unset removes the named property of element id.
func (e *Editor) Unset(id, property string) error {
	return e.SetValue(id, property, nil)
}
