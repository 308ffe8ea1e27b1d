package tailwind

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	// ErrUnknownProperty is returned for names the registry does not declare.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrInvalidValue is returned when input is neither a keyword nor an
	// arbitrary value the property accepts.
	ErrInvalidValue = errors.New("invalid value")
)

// Registry is the set of properties and shorthands available for a theme.
type Registry struct {
	theme      Theme
	properties map[string]*Property
	accessors  map[string]Accessor
}

// NewRegistry declares the standard properties over theme.
func NewRegistry(theme Theme) *Registry {
	r := &Registry{
		theme:      theme,
		properties: map[string]*Property{},
		accessors:  map[string]Accessor{},
	}

	colors := theme.Scale("colors")
	spacing := theme.Scale("spacing")
	sizes := merge(spacing, theme.Scale("fractions"), map[string]string{"auto": "auto"})
	colorOrVar := AnyOf(ColorMatcher{}, Variable)
	lengthOrVar := AnyOf(Length, Variable)

	r.add(&Property{Name: "background", Prefix: "bg-", Tokens: colors, Pattern: colorOrVar})
	r.add(&Property{Name: "color", Prefix: "text-", Tokens: colors, Pattern: colorOrVar})
	r.add(&Property{Name: "borderColor", Prefix: "border-", Tokens: colors, Pattern: colorOrVar})
	r.add(&Property{Name: "borderWidth", Prefix: "border-", Tokens: theme.Scale("borderWidth"), Pattern: lengthOrVar})

	r.add(&Property{Name: "fontFamily", Prefix: "font-", Tokens: theme.Scale("fontFamily"), Pattern: FontFamily, Quote: true})
	r.add(&Property{Name: "fontWeight", Prefix: "font-", Tokens: theme.Scale("fontWeight"), Pattern: AnyOf(Integer, Variable)})
	r.add(&Property{Name: "fontSize", Prefix: "text-", Tokens: theme.Scale("fontSize"), Pattern: lengthOrVar})
	r.add(&Property{Name: "textAlign", Prefix: "text-", Tokens: map[string]string{
		"left": "left", "center": "center", "right": "right", "justify": "justify",
		"start": "start", "end": "end",
	}})

	r.add(&Property{Name: "position", Tokens: map[string]string{
		"static": "static", "relative": "relative", "absolute": "absolute",
		"fixed": "fixed", "sticky": "sticky",
	}})
	r.add(&Property{Name: "display", Tokens: map[string]string{
		"block": "block", "inline-block": "inline-block", "inline": "inline",
		"flex": "flex", "inline-flex": "inline-flex", "grid": "grid",
		"contents": "contents", "hidden": "none",
	}})
	r.add(&Property{Name: "flexDirection", Prefix: "flex-", Tokens: map[string]string{
		"row": "row", "row-reverse": "row-reverse", "col": "column", "col-reverse": "column-reverse",
	}})
	r.add(&Property{Name: "justifyContent", Prefix: "justify-", Tokens: map[string]string{
		"start": "flex-start", "end": "flex-end", "center": "center",
		"between": "space-between", "around": "space-around", "evenly": "space-evenly",
	}})
	r.add(&Property{Name: "alignItems", Prefix: "items-", Tokens: map[string]string{
		"start": "flex-start", "end": "flex-end", "center": "center",
		"baseline": "baseline", "stretch": "stretch",
	}})

	intrinsic := map[string]string{"min": "min-content", "max": "max-content", "fit": "fit-content"}
	r.add(&Property{Name: "width", Prefix: "w-", Tokens: merge(sizes, intrinsic, map[string]string{"screen": "100vw"}), Pattern: lengthOrVar})
	r.add(&Property{Name: "height", Prefix: "h-", Tokens: merge(sizes, intrinsic, map[string]string{"screen": "100vh"}), Pattern: lengthOrVar})
	r.add(&Property{Name: "minWidth", Prefix: "min-w-", Tokens: merge(intrinsic, map[string]string{"0": "0px", "full": "100%"}), Pattern: lengthOrVar})
	r.add(&Property{Name: "minHeight", Prefix: "min-h-", Tokens: map[string]string{"0": "0px", "full": "100%", "screen": "100vh"}, Pattern: lengthOrVar})
	r.add(&Property{Name: "maxWidth", Prefix: "max-w-", Tokens: merge(intrinsic, map[string]string{
		"none": "none", "xs": "20rem", "sm": "24rem", "md": "28rem", "lg": "32rem",
		"xl": "36rem", "2xl": "42rem", "full": "100%", "prose": "65ch",
	}), Pattern: lengthOrVar})
	r.add(&Property{Name: "maxHeight", Prefix: "max-h-", Tokens: merge(spacing, map[string]string{"full": "100%", "screen": "100vh", "none": "none"}), Pattern: lengthOrVar})

	withAuto := merge(spacing, map[string]string{"auto": "auto"})
	sides := func(name, prefix string, tokens map[string]string) []*Property {
		var ps []*Property
		for _, side := range []struct{ name, letter string }{
			{"Top", "t"}, {"Right", "r"}, {"Bottom", "b"}, {"Left", "l"},
		} {
			p := &Property{Name: name + side.name, Prefix: prefix + side.letter + "-", Tokens: tokens, Pattern: lengthOrVar}
			r.add(p)
			ps = append(ps, p)
		}
		return ps
	}
	margin := sides("margin", "m", withAuto)
	padding := sides("padding", "p", spacing)
	r.shorthand("marginX", margin[3], margin[1])
	r.shorthand("marginY", margin[0], margin[2])
	r.shorthand("margin", margin...)
	r.shorthand("paddingX", padding[3], padding[1])
	r.shorthand("paddingY", padding[0], padding[2])
	r.shorthand("padding", padding...)
	r.add(&Property{Name: "gap", Prefix: "gap-", Tokens: spacing, Pattern: lengthOrVar})

	r.add(&Property{Name: "borderRadius", Prefix: "rounded-", Tokens: theme.Scale("borderRadius"), Pattern: lengthOrVar})
	r.add(&Property{Name: "opacity", Prefix: "opacity-", Tokens: theme.Scale("opacity"), Pattern: AnyOf(Number, Variable)})
	r.add(&Property{Name: "zIndex", Prefix: "z-", Tokens: theme.Scale("zIndex"), Pattern: AnyOf(Integer, Variable)})
	r.add(&Property{Name: "boxShadow", Prefix: "shadow-", Tokens: theme.Scale("boxShadow"), Pattern: DeclarationMatcher{Property: "box-shadow"}})
	r.add(&Property{Name: "gridTemplateColumns", Prefix: "grid-cols-", Tokens: gridColumns(), Pattern: DeclarationMatcher{Property: "grid-template-columns"}})

	return r
}

func merge(scales ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, s := range scales {
		maps.Copy(out, s)
	}
	return out
}

func gridColumns() map[string]string {
	out := map[string]string{"none": "none"}
	for i := 1; i <= 12; i++ {
		out[fmt.Sprint(i)] = fmt.Sprintf("repeat(%d, minmax(0, 1fr))", i)
	}
	return out
}

func (r *Registry) add(p *Property) {
	r.properties[p.Name] = p
	r.accessors[p.Name] = p
}

func (r *Registry) shorthand(name string, ps ...*Property) {
	r.accessors[name] = &Shorthand{Name: name, Properties: ps}
}

// Theme returns the theme the registry was built from.
func (r *Registry) Theme() Theme { return r.theme }

// Lookup returns the property or shorthand named name.
func (r *Registry) Lookup(name string) (Accessor, error) {
	a, ok := r.accessors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return a, nil
}

// Property returns a single, non-shorthand property.
func (r *Registry) Property(name string) (*Property, bool) {
	p, ok := r.properties[name]
	return p, ok
}

// Names lists every property and shorthand, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.accessors))
}

// Resolved is a property a single token sets.
type Resolved struct {
	Property *Property
	Value    Value
}

// Resolve lists the properties token sets, in name order. A token like
// "text-red-500" resolves to color only, while "border" resolves to
// borderWidth.
func (r *Registry) Resolve(token string) []Resolved {
	var out []Resolved
	for _, name := range slices.Sorted(maps.Keys(r.properties)) {
		p := r.properties[name]
		if v, ok := p.Value([]string{token}); ok {
			out = append(out, Resolved{Property: p, Value: v})
		}
	}
	return out
}

// ParseValue reads user input for the named property. Input in brackets,
// or any input that is not a keyword, is taken as an arbitrary value and
// must satisfy the property's pattern.
func (r *Registry) ParseValue(name, input string) (Value, error) {
	a, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: empty value for %s", ErrInvalidValue, name)
	}

	var ps []*Property
	switch a := a.(type) {
	case *Property:
		ps = []*Property{a}
	case *Shorthand:
		ps = a.Properties
	}

	raw, bracket := bracketed(input)
	if bracket {
		raw = decodeArbitrary(raw)
	} else {
		if k, ok := ps[0].Keyword(input); ok {
			return k, nil
		}
		raw = input
	}
	for _, p := range ps {
		if p.Pattern == nil || !p.Pattern.MatchString(raw) {
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidValue, input, name)
		}
	}
	return Arbitrary{Raw: raw}, nil
}
