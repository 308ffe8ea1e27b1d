// Package tailwind reads and writes style properties encoded as
// utility-class tokens in a class string.
//
// A property is declared by a token prefix, a keyword dictionary and an
// optional rule for bracketed arbitrary values. When several tokens match
// one property the last one wins, the way a later CSS rule of equal
// specificity would.
package tailwind

import "strings"

// DefaultKeyword names the value of a property's bare token, such as
// "rounded".
const DefaultKeyword = "DEFAULT"

// Value is a resolved property value: Arbitrary or Keyword. Shorthands may
// also return Mixed.
type Value interface {
	String() string
	isValue()
}

// Arbitrary is a bracketed literal such as bg-[#fff]. Raw is decoded:
// underscores are spaces and surrounding quotes are removed.
type Arbitrary struct {
	Raw string
}

// Keyword is a dictionary value such as red-500 -> #ef4444.
type Keyword struct {
	Name     string
	Resolved string
}

type mixed struct{}

// Mixed is returned by a shorthand whose constituents disagree.
var Mixed Value = mixed{}

func (Arbitrary) isValue() {}
func (Keyword) isValue()   {}
func (mixed) isValue()     {}

func (v Arbitrary) String() string { return "[" + v.Raw + "]" }
func (v Keyword) String() string   { return v.Name }
func (mixed) String() string       { return "mixed" }

// IsMixed reports whether v is the Mixed sentinel.
func IsMixed(v Value) bool {
	return v == Mixed
}

// CSSValue returns the CSS value v stands for: the resolved keyword or the
// arbitrary literal.
func CSSValue(v Value) string {
	switch v := v.(type) {
	case Keyword:
		return v.Resolved
	case Arbitrary:
		return v.Raw
	}
	return ""
}

// decodeArbitrary turns bracket contents into a CSS value: `_` becomes a
// space, `\_` a literal underscore, and one pair of matching surrounding
// quotes is dropped.
func decodeArbitrary(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '_':
			sb.WriteByte('_')
			i++
		case s[i] == '_':
			sb.WriteByte(' ')
		default:
			sb.WriteByte(s[i])
		}
	}
	out := sb.String()
	if len(out) >= 2 && (out[0] == '\'' || out[0] == '"') && out[len(out)-1] == out[0] &&
		!strings.ContainsRune(out[1:len(out)-1], rune(out[0])) {
		out = out[1 : len(out)-1]
	}
	return out
}

// encodeArbitrary is the inverse of decodeArbitrary. quote wraps values
// containing spaces in single quotes.
func encodeArbitrary(raw string, quote bool) string {
	if quote && strings.Contains(raw, " ") && !strings.ContainsAny(raw, `'",`) {
		raw = "'" + raw + "'"
	}
	raw = strings.ReplaceAll(raw, "_", `\_`)
	return strings.ReplaceAll(raw, " ", "_")
}

// bracketed returns the contents of "[...]".
func bracketed(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return s[1 : len(s)-1], true
	}
	return "", false
}
