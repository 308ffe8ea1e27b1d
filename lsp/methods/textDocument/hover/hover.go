package hover

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/lsp/helpers"
	"bennypowers.dev/jsxtree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// classHover is the data rendered for one class token.
type classHover struct {
	Token      string
	NodeID     string
	Properties []propertyValue
}

type propertyValue struct {
	Name      string
	Value     string
	Arbitrary bool
}

// Template for class token hover content
var classHoverTemplate = template.Must(template.New("classHover").Parse("# `{{.Token}}`\n" + `
| Property | Value |
| --- | --- |
{{range .Properties}}| ` + "`{{.Name}}`" + ` | ` + "`{{.Value}}`" + `{{if .Arbitrary}} *(arbitrary)*{{end}} |
{{end}}
*Element ` + "`{{.NodeID}}`" + `*
`))

func renderClassHover(h classHover) (string, error) {
	var buf bytes.Buffer
	if err := classHoverTemplate.Execute(&buf, h); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Hover handles the textDocument/hover request. Hovering a class token
// lists the properties it sets.
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	position := params.Position

	log.Debug("Hover requested: %s at line %d, char %d", uri, position.Line, position.Character)

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

	token, ok := classes.At(position)
	if !ok {
		return nil, nil
	}

	resolved := doc.Editor().Registry().Resolve(token.Token)
	if len(resolved) == 0 {
		return nil, nil
	}

	h := classHover{Token: token.Token, NodeID: token.NodeID}
	for _, r := range resolved {
		_, arbitrary := r.Value.(tailwind.Arbitrary)
		h.Properties = append(h.Properties, propertyValue{
			Name:      r.Property.Name,
			Value:     tailwind.CSSValue(r.Value),
			Arbitrary: arbitrary,
		})
	}

	content, err := renderClassHover(h)
	if err != nil {
		return nil, fmt.Errorf("failed to render class hover: %w", err)
	}

	r := classes.Range(token)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: content,
		},
		Range: &r,
	}, nil
}
