package classname

import "strings"

// literal is a parsed static attribute value. open and close wrap the class
// string, as in `{"` and `"}`.
type literal struct {
	open, close string
	class       string
}

// parseLiteral reads a class string out of an attribute value literal.
// Template literals with interpolation and other expressions are dynamic.
func parseLiteral(s string) (literal, bool) {
	if inner, ok := quoted(s); ok {
		return literal{open: s[:1], close: s[:1], class: inner}, true
	}
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return literal{}, false
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	inner, ok := quoted(body)
	if !ok {
		if len(body) < 2 || body[0] != '`' || body[len(body)-1] != '`' {
			return literal{}, false
		}
		inner = body[1 : len(body)-1]
		if strings.Contains(inner, "${") || strings.ContainsAny(inner, "`\\") {
			return literal{}, false
		}
	}
	// Keep any whitespace inside the braces.
	open := s[:strings.Index(s, body)+1]
	close := s[strings.LastIndex(s, body)+len(body)-1:]
	return literal{open: open, close: close, class: inner}, true
}

func quoted(s string) (string, bool) {
	if len(s) < 2 || (s[0] != '"' && s[0] != '\'') || s[len(s)-1] != s[0] {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if strings.ContainsRune(inner, rune(s[0])) {
		return "", false
	}
	return inner, true
}

// String renders the literal. A class that contains the current quote
// character switches to a quote that can hold it.
func (l literal) String() string {
	q := l.open[len(l.open)-1:]
	if !strings.Contains(l.class, q) {
		return l.open + l.class + l.close
	}
	inBraces := strings.HasPrefix(l.open, "{")
	switch {
	case q != `"` && !strings.Contains(l.class, `"`) && !inBraces:
		return `"` + l.class + `"`
	case q != `'` && !strings.Contains(l.class, `'`) && !inBraces:
		return `'` + l.class + `'`
	case !strings.ContainsAny(l.class, "`\\") && !strings.Contains(l.class, "${"):
		return "{`" + l.class + "`}"
	}
	return "{" + jsString(l.class) + "}"
}

func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// ClassRange returns the byte range of the class string within a static
// attribute value literal such as `"p-2"` or `{'p-2'}`.
func ClassRange(value string) (start, end int, ok bool) {
	lit, ok := parseLiteral(value)
	if !ok {
		return 0, 0, false
	}
	return len(lit.open), len(value) - len(lit.close), true
}
