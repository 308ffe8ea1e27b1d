package documentcolor

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/lsp/helpers"
	"bennypowers.dev/jsxtree/lsp/types"
	"github.com/mazznoer/csscolorparser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// properties whose values are colors
var colorProperties = map[string]bool{
	"background":  true,
	"color":       true,
	"borderColor": true,
}

// colorOf returns the color property a token sets, if any.
func colorOf(registry *tailwind.Registry, token string) (tailwind.Resolved, bool) {
	for _, r := range registry.Resolve(token) {
		if colorProperties[r.Property.Name] {
			return r, true
		}
	}
	return tailwind.Resolved{}, false
}

// DocumentColor handles the textDocument/documentColor request
func DocumentColor(req *types.RequestContext, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := params.TextDocument.URI

	log.Debug("DocumentColor requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	classes, err := helpers.DocumentClasses(doc)
	if errors.Is(err, helpers.ErrStale) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	registry := doc.Editor().Registry()
	var colors []protocol.ColorInformation
	for _, token := range classes.Tokens {
		r, ok := colorOf(registry, token.Token)
		if !ok {
			continue
		}
		value := tailwind.CSSValue(r.Value)
		color, err := parseColor(value)
		if err != nil {
			// inherit, currentColor and friends have no fixed color
			if _, arbitrary := r.Value.(tailwind.Arbitrary); arbitrary {
				req.AddWarning(fmt.Errorf("failed to parse color of %s (value: %s): %w", token.Token, value, err))
			}
			continue
		}
		colors = append(colors, protocol.ColorInformation{
			Range: classes.Range(token),
			Color: *color,
		})
	}

	log.Debug("Found %d colors", len(colors))
	return colors, nil
}

// ColorPresentation handles the textDocument/colorPresentation request.
// It offers the theme keywords with the requested color, then an
// arbitrary hex value.
func ColorPresentation(req *types.RequestContext, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := params.TextDocument.URI

	log.Debug("ColorPresentation requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}

	classes, err := helpers.DocumentClasses(doc)
	if errors.Is(err, helpers.ErrStale) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	token, ok := classes.At(params.Range.Start)
	if !ok {
		return nil, nil
	}
	r, ok := colorOf(doc.Editor().Registry(), token.Token)
	if !ok {
		return nil, nil
	}
	p := r.Property

	requested := csscolorparser.Color{
		R: float64(params.Color.Red),
		G: float64(params.Color.Green),
		B: float64(params.Color.Blue),
		A: float64(params.Color.Alpha),
	}
	hex := requested.HexString() // Includes alpha if < 1.0

	var presentations []protocol.ColorPresentation
	add := func(label string) {
		presentations = append(presentations, protocol.ColorPresentation{
			Label:    label,
			TextEdit: &protocol.TextEdit{Range: params.Range, NewText: label},
		})
	}

	for _, name := range slices.Sorted(maps.Keys(p.Tokens)) {
		if name == tailwind.DefaultKeyword {
			continue
		}
		parsed, err := csscolorparser.Parse(p.Tokens[name])
		if err != nil {
			continue
		}
		if parsed.HexString() == hex {
			add(p.Format(tailwind.Keyword{Name: name}))
		}
	}
	add(p.Format(tailwind.Arbitrary{Raw: hex}))

	log.Debug("Found %d color presentations", len(presentations))
	return presentations, nil
}

// parseColor parses a CSS color string and returns a protocol.Color
func parseColor(value string) (*protocol.Color, error) {
	value = strings.TrimSpace(value)

	parsed, err := csscolorparser.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("unsupported color format: %s", value)
	}

	return &protocol.Color{
		Red:   protocol.Decimal(parsed.R),
		Green: protocol.Decimal(parsed.G),
		Blue:  protocol.Decimal(parsed.B),
		Alpha: protocol.Decimal(parsed.A),
	}, nil
}
