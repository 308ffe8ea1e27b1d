package textDocument_test

import (
	"testing"

	"bennypowers.dev/jsxtree/lsp/methods/textDocument"
	"bennypowers.dev/jsxtree/lsp/testutil"
	"bennypowers.dev/jsxtree/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = "file:///App.jsx"

const app = "export function App() {\n  return <div className=\"p-2\">hi</div>;\n}\n"

func open(t *testing.T, ctx *testutil.MockServerContext, text string) *types.RequestContext {
	t.Helper()
	req := types.NewRequestContext(ctx, &glsp.Context{})
	err := textDocument.DidOpen(req, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "javascriptreact",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
	return req
}

func TestDidOpen(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	req := open(t, ctx, app)

	doc := ctx.Document(uri)
	require.NotNil(t, doc)
	assert.Equal(t, app, doc.Content())
	assert.Equal(t, "javascriptreact", doc.LanguageID())
	assert.False(t, req.HasWarnings())
}

func TestDidOpenSyntaxError(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	req := open(t, ctx, "export function A() { return <div> }")

	assert.NotNil(t, ctx.Document(uri), "document stays open")
	assert.True(t, req.HasWarnings())
}

func TestDidChange(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	open(t, ctx, app)

	req := types.NewRequestContext(ctx, &glsp.Context{})
	err := textDocument.DidChange(req, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 1, Character: 25},
					End:   protocol.Position{Line: 1, Character: 28},
				},
				Text: "m-4",
			},
		},
	})
	require.NoError(t, err)

	doc := ctx.Document(uri)
	assert.Equal(t, 2, doc.Version())
	require.NoError(t, doc.Sync())
	assert.Contains(t, doc.Session().Source(), `className="m-4"`)
}

func TestDidClose(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	open(t, ctx, app)

	req := types.NewRequestContext(ctx, &glsp.Context{})
	params := &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}
	require.NoError(t, textDocument.DidClose(req, params))
	assert.Nil(t, ctx.Document(uri))

	assert.Error(t, textDocument.DidClose(req, params), "already closed")
}
