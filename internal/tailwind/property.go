package tailwind

import (
	"slices"
	"strings"
)

// Accessor reads and writes one named property of a token list.
type Accessor interface {
	PropertyName() string
	// Value returns the property's effective value. ok is false when the
	// property is unset.
	Value(tokens []string) (v Value, ok bool)
	// SetValue returns tokens with the property set to v, or removed when
	// v is nil. The input slice is not modified.
	SetValue(tokens []string, v Value) []string
}

// Property is a style property encoded by tokens sharing a prefix.
type Property struct {
	Name string
	// Prefix includes the trailing separator, as in "w-". The empty prefix
	// matches bare keywords such as "absolute".
	Prefix string
	// Tokens maps keyword suffixes to CSS values. A DEFAULT entry is the
	// value of the bare token, the prefix without its separator.
	Tokens map[string]string
	// Pattern validates arbitrary values. Nil disables them.
	Pattern Matcher
	// Quote wraps arbitrary values containing spaces in quotes when
	// writing, as font families need.
	Quote bool
}

func (p *Property) PropertyName() string { return p.Name }

func (p *Property) bare() string {
	return strings.TrimSuffix(p.Prefix, "-")
}

// Match returns the index and value of the token that determines the
// property, or -1.
func (p *Property) Match(tokens []string) (int, Value) {
	if resolved, ok := p.Tokens[DefaultKeyword]; ok {
		if bare := p.bare(); bare != "" {
			if i := slices.Index(tokens, bare); i >= 0 {
				return i, Keyword{Name: DefaultKeyword, Resolved: resolved}
			}
		}
	}

	for i := len(tokens) - 1; i >= 0; i-- {
		suffix, ok := strings.CutPrefix(tokens[i], p.Prefix)
		if !ok || suffix == "" {
			continue
		}
		if inner, ok := bracketed(suffix); ok && p.Pattern != nil {
			if raw := decodeArbitrary(inner); p.Pattern.MatchString(raw) {
				return i, Arbitrary{Raw: raw}
			}
			continue
		}
		if suffix == DefaultKeyword {
			continue
		}
		if resolved, ok := p.Tokens[suffix]; ok {
			return i, Keyword{Name: suffix, Resolved: resolved}
		}
	}
	return -1, nil
}

// Value returns the effective value of the property.
func (p *Property) Value(tokens []string) (Value, bool) {
	i, v := p.Match(tokens)
	return v, i >= 0
}

// Format returns the token that encodes v.
func (p *Property) Format(v Value) string {
	switch v := v.(type) {
	case Keyword:
		if v.Name == DefaultKeyword {
			return p.bare()
		}
		return p.Prefix + v.Name
	case Arbitrary:
		return p.Prefix + "[" + encodeArbitrary(v.Raw, p.Quote) + "]"
	}
	return ""
}

// SetValue replaces the matching token in place, appends a new token when
// none matched, or removes the match when v is nil. Mixed leaves tokens
// unchanged.
func (p *Property) SetValue(tokens []string, v Value) []string {
	out := slices.Clone(tokens)
	if IsMixed(v) {
		return out
	}
	i, _ := p.Match(tokens)
	if v == nil {
		if i >= 0 {
			out = slices.Delete(out, i, i+1)
		}
		return out
	}
	token := p.Format(v)
	if i >= 0 {
		out[i] = token
		return out
	}
	return append(out, token)
}

// Unset removes the property's matching token.
func (p *Property) Unset(tokens []string) []string {
	return p.SetValue(tokens, nil)
}

// Keyword returns the dictionary value for name.
func (p *Property) Keyword(name string) (Keyword, bool) {
	resolved, ok := p.Tokens[name]
	return Keyword{Name: name, Resolved: resolved}, ok
}

// Shorthand composes several properties written together, like marginX
// over marginLeft and marginRight.
type Shorthand struct {
	Name       string
	Properties []*Property
}

func (s *Shorthand) PropertyName() string { return s.Name }

// Value returns the common value of the constituents, Mixed when they
// disagree, or false when all are unset.
func (s *Shorthand) Value(tokens []string) (Value, bool) {
	var common Value
	set := 0
	for _, p := range s.Properties {
		v, ok := p.Value(tokens)
		if !ok {
			continue
		}
		if set > 0 && v != common {
			return Mixed, true
		}
		common = v
		set++
	}
	switch {
	case set == 0:
		return nil, false
	case set < len(s.Properties):
		return Mixed, true
	}
	return common, true
}

// SetValue writes v to every constituent.
func (s *Shorthand) SetValue(tokens []string, v Value) []string {
	out := slices.Clone(tokens)
	for _, p := range s.Properties {
		out = p.SetValue(out, v)
	}
	return out
}

// Tokens splits a class string on whitespace.
func Tokens(class string) []string {
	return strings.Fields(class)
}

// Join renders tokens as a class string.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
