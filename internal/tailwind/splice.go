package tailwind

import (
	"strings"
	"unicode"
)

// Range is the byte range of one token within a class string.
type Range struct {
	Start, End int
}

// TokenRanges locates the tokens Tokens returns. It splits on the same
// whitespace as strings.Fields.
func TokenRanges(class string) []Range {
	var out []Range
	start := -1
	for i, r := range class {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, Range{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, Range{Start: start, End: len(class)})
	}
	return out
}

// Splice rewrites class so that it holds tokens, touching only the run of
// tokens that differs. Everything outside that run keeps its bytes,
// including irregular whitespace.
func Splice(class string, tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	ranges := TokenRanges(class)
	if len(ranges) == 0 {
		return Join(tokens)
	}
	old := make([]string, len(ranges))
	for i, r := range ranges {
		old[i] = class[r.Start:r.End]
	}

	p := 0
	for p < len(old) && p < len(tokens) && old[p] == tokens[p] {
		p++
	}
	q := 0
	for q < len(old)-p && q < len(tokens)-p && old[len(old)-1-q] == tokens[len(tokens)-1-q] {
		q++
	}
	was := ranges[p : len(ranges)-q]
	now := tokens[p : len(tokens)-q]

	switch {
	case len(was) == 0 && len(now) == 0:
		return class
	case len(was) == len(now):
		// one for one: each token is replaced where it stands
		var sb strings.Builder
		last := 0
		for i, r := range was {
			sb.WriteString(class[last:r.Start])
			sb.WriteString(now[i])
			last = r.End
		}
		sb.WriteString(class[last:])
		return sb.String()
	case len(was) == 0:
		if p > 0 {
			at := ranges[p-1].End
			return class[:at] + " " + Join(now) + class[at:]
		}
		at := ranges[0].Start
		return class[:at] + Join(now) + " " + class[at:]
	case len(now) == 0:
		end := was[len(was)-1].End
		if p > 0 {
			return class[:ranges[p-1].End] + class[end:]
		}
		return class[:was[0].Start] + class[ranges[len(ranges)-q].Start:]
	default:
		return class[:was[0].Start] + Join(now) + class[was[len(was)-1].End:]
	}
}
