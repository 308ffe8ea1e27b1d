package workspace_test

import (
	"testing"

	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/internal/tree"
	"bennypowers.dev/jsxtree/lsp/methods/workspace"
	"bennypowers.dev/jsxtree/lsp/testutil"
	"bennypowers.dev/jsxtree/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = "file:///App.jsx"

const app = "export function App() {\n  return <div className=\"p-2 text-red-500\">😀 hi</div>;\n}\n"

type fixture struct {
	ctx *testutil.MockServerContext
	req *types.RequestContext
	id  string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := testutil.NewMockServerContext()
	require.NoError(t, ctx.DocumentManager().DidOpen(uri, "javascriptreact", 1, app))
	t.Cleanup(func() { _ = ctx.DocumentManager().DidClose(uri) })

	root, err := ctx.Document(uri).Session().Snapshot()
	require.NoError(t, err)
	var id string
	tree.Walk(root, func(n *tree.Node) bool {
		if n.Kind() == tree.KindElement && id == "" {
			id = n.ID
		}
		return id == ""
	})
	require.NotEmpty(t, id)

	return &fixture{ctx: ctx, req: types.NewRequestContext(ctx, &glsp.Context{}), id: id}
}

func (f *fixture) execute(command string, args ...any) (any, error) {
	return workspace.ExecuteCommand(f.req, &protocol.ExecuteCommandParams{
		Command:   command,
		Arguments: args,
	})
}

// apply feeds an edit back as the client would.
func (f *fixture) apply(t *testing.T, result any, version int) string {
	t.Helper()
	edit, ok := result.(protocol.WorkspaceEdit)
	require.True(t, ok)
	var changes []any
	for _, e := range edit.Changes[uri] {
		changes = append(changes, protocol.TextDocumentContentChangeEvent{Range: &e.Range, Text: e.NewText})
	}
	require.NoError(t, f.ctx.DocumentManager().DidChange(uri, version, changes))
	return f.ctx.Document(uri).Content()
}

func TestSetProperty(t *testing.T) {
	f := setup(t)

	result, err := f.execute(workspace.SetPropertyCommand, uri, f.id, "width", "4")
	require.NoError(t, err)

	edit := result.(protocol.WorkspaceEdit)
	require.Len(t, edit.Changes[uri], 1)
	assert.Equal(t, " w-4", edit.Changes[uri][0].NewText, "only the change is sent")

	content := f.apply(t, result, 2)
	assert.Equal(t, "export function App() {\n  return <div className=\"p-2 text-red-500 w-4\">😀 hi</div>;\n}\n", content)

	result, err = f.execute(workspace.SetPropertyCommand, uri, f.id, "color", "[#123456]")
	require.NoError(t, err)
	content = f.apply(t, result, 3)
	assert.Contains(t, content, `className="p-2 text-[#123456] w-4"`)

	// null unsets
	result, err = f.execute(workspace.SetPropertyCommand, uri, f.id, "width", nil)
	require.NoError(t, err)
	content = f.apply(t, result, 4)
	assert.Contains(t, content, `className="p-2 text-[#123456]"`)
}

func TestSetPropertyNoChange(t *testing.T) {
	f := setup(t)

	result, err := f.execute(workspace.SetPropertyCommand, uri, f.id, "color", "red-500")
	require.NoError(t, err)
	assert.Empty(t, result.(protocol.WorkspaceEdit).Changes)
}

func TestGetProperty(t *testing.T) {
	f := setup(t)

	result, err := f.execute(workspace.GetPropertyCommand, uri, f.id, "color")
	require.NoError(t, err)
	assert.Equal(t, workspace.PropertyResult{
		Property: "color",
		Set:      true,
		Value:    "red-500",
		CSS:      "#ef4444",
	}, result)

	result, err = f.execute(workspace.GetPropertyCommand, uri, f.id, "width")
	require.NoError(t, err)
	assert.Equal(t, workspace.PropertyResult{Property: "width"}, result)
}

func TestExecuteCommandErrors(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name    string
		command string
		args    []any
		target  error
	}{
		{"unknown command", "jsxtree.nope", nil, workspace.ErrUnknownCommand},
		{"missing arguments", workspace.SetPropertyCommand, []any{uri}, workspace.ErrArguments},
		{"wrong argument type", workspace.GetPropertyCommand, []any{uri, 4.0, "color"}, workspace.ErrArguments},
		{"unknown property", workspace.SetPropertyCommand, []any{uri, f.id, "nope", "4"}, tailwind.ErrUnknownProperty},
		{"invalid value", workspace.SetPropertyCommand, []any{uri, f.id, "width", "[red]"}, tailwind.ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.execute(tt.command, tt.args...)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, err := f.execute(workspace.GetPropertyCommand, "file:///missing.jsx", f.id, "color")
	assert.ErrorIs(t, err, types.ErrDocumentNotOpen)
}
