package tree

// Attr is an element attribute: Attribute or SpreadAttribute.
type Attr interface {
	// Trailing returns the literal text between this attribute and the next
	// attribute or the tag's close marker.
	Trailing() string
	WithTrailing(space string) Attr
}

// Attribute is a name with an optional value.
type Attribute struct {
	Name string
	// Value is the literal value, quotes or braces included. Nil for a
	// boolean attribute such as `disabled`.
	Value *string
	// Separator is the literal between name and value, normally "=".
	Separator     string
	TrailingSpace string
}

// SpreadAttribute is a {...props} attribute. Spread is the text between
// the braces.
type SpreadAttribute struct {
	Spread        string
	TrailingSpace string
}

func (a Attribute) Trailing() string       { return a.TrailingSpace }
func (a SpreadAttribute) Trailing() string { return a.TrailingSpace }

func (a Attribute) WithTrailing(space string) Attr {
	a.TrailingSpace = space
	return a
}

func (a SpreadAttribute) WithTrailing(space string) Attr {
	a.TrailingSpace = space
	return a
}

// NewAttribute returns an attribute with a literal value and "=" separator.
func NewAttribute(name, literal string) Attribute {
	return Attribute{Name: name, Value: &literal, Separator: "="}
}

// CloneAttrs copies attrs so value pointers are not shared.
func CloneAttrs(attrs []Attr) []Attr {
	if attrs == nil {
		return nil
	}
	out := make([]Attr, len(attrs))
	for i, a := range attrs {
		if attr, ok := a.(Attribute); ok && attr.Value != nil {
			v := *attr.Value
			attr.Value = &v
			a = attr
		}
		out[i] = a
	}
	return out
}

// FindAttribute returns the index and value of the first attribute named
// name, or -1.
func FindAttribute(attrs []Attr, name string) (int, Attribute) {
	for i, a := range attrs {
		if attr, ok := a.(Attribute); ok && attr.Name == name {
			return i, attr
		}
	}
	return -1, Attribute{}
}
