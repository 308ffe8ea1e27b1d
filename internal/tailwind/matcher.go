package tailwind

import (
	"regexp"
	"strings"

	"bennypowers.dev/jsxtree/internal/parser/css"
	"github.com/mazznoer/csscolorparser"
)

// Matcher validates a decoded arbitrary value. *regexp.Regexp satisfies it.
type Matcher interface {
	MatchString(s string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(string) bool

func (f MatcherFunc) MatchString(s string) bool { return f(s) }

var (
	// Length accepts CSS lengths, percentages and calc/min/max/clamp.
	Length = regexp.MustCompile(`^(-?(\d+(\.\d+)?|\.\d+)(px|rem|em|%|vh|vw|svh|lvh|dvh|vmin|vmax|ch|ex|pt|cm|mm|in)?|(calc|min|max|clamp)\(.+\))$`)
	// Number accepts unitless numbers.
	Number = regexp.MustCompile(`^-?(\d+(\.\d+)?|\.\d+)$`)
	// Integer accepts whole numbers.
	Integer = regexp.MustCompile(`^-?\d+$`)
	// FontFamily accepts a comma separated list of family names.
	FontFamily = regexp.MustCompile(`^['"]?[A-Za-z][\w\- ]*['"]?(,\s*['"]?[A-Za-z][\w\- ]*['"]?)*$`)
	// Variable accepts var(--name) references.
	Variable = regexp.MustCompile(`^var\(--[\w-]+(,.*)?\)$`)
)

// ColorMatcher accepts any color csscolorparser understands.
type ColorMatcher struct{}

func (ColorMatcher) MatchString(s string) bool {
	if strings.EqualFold(s, "currentColor") {
		return true
	}
	_, err := csscolorparser.Parse(s)
	return err == nil
}

// DeclarationMatcher accepts values that parse as the CSS property's value.
type DeclarationMatcher struct {
	Property string
}

func (m DeclarationMatcher) MatchString(s string) bool {
	return css.ValidDeclaration(m.Property, s)
}

// AnyOf matches when any of ms does.
func AnyOf(ms ...Matcher) Matcher {
	return MatcherFunc(func(s string) bool {
		for _, m := range ms {
			if m.MatchString(s) {
				return true
			}
		}
		return false
	})
}
