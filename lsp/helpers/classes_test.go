package helpers_test

import (
	"testing"

	"bennypowers.dev/jsxtree/internal/documents"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/lsp/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const app = `export function App() {
  return <div className="bg-red-500 p-2" id="x"><span className={'m-4'}>hi</span><p>no class</p></div>;
}
`

func open(t *testing.T, content string) *documents.Document {
	t.Helper()
	doc := documents.NewDocument("file:///App.jsx", "javascriptreact", 1, content)
	t.Cleanup(doc.Close)
	return doc
}

func TestDocumentClasses(t *testing.T) {
	doc := open(t, app)

	classes, err := helpers.DocumentClasses(doc)
	require.NoError(t, err)
	require.Len(t, classes.Tokens, 3)

	var names []string
	for _, tok := range classes.Tokens {
		names = append(names, tok.Token)
		assert.Equal(t, tok.Token, app[tok.Start:tok.End])
		assert.NotEmpty(t, tok.NodeID)
	}
	assert.Equal(t, []string{"bg-red-500", "p-2", "m-4"}, names)
	assert.Equal(t, classes.Tokens[0].NodeID, classes.Tokens[1].NodeID)
	assert.NotEqual(t, classes.Tokens[0].NodeID, classes.Tokens[2].NodeID)
}

func TestClassesAt(t *testing.T) {
	doc := open(t, app)
	classes, err := helpers.DocumentClasses(doc)
	require.NoError(t, err)

	tests := []struct {
		name      string
		character uint32
		want      string
		ok        bool
	}{
		{"token start", 25, "bg-red-500", true},
		{"inside token", 30, "bg-red-500", true},
		{"token end", 35, "bg-red-500", true},
		{"second token", 37, "p-2", true},
		{"attribute name", 16, "", false},
		{"id value", 45, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := classes.At(protocol.Position{Line: 1, Character: tt.character})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, tok.Token)
		})
	}

	r := classes.Range(classes.Tokens[0])
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 25},
		End:   protocol.Position{Line: 1, Character: 35},
	}, r)
}

func TestDocumentClassesUTF16(t *testing.T) {
	content := "export function App() {\n  return <p title=\"😀\" className=\"w-4\">x</p>;\n}\n"
	doc := open(t, content)

	classes, err := helpers.DocumentClasses(doc)
	require.NoError(t, err)
	require.Len(t, classes.Tokens, 1)

	// the emoji is two UTF-16 code units but four bytes
	r := classes.Range(classes.Tokens[0])
	assert.Equal(t, uint32(34), r.Start.Character)
	assert.Equal(t, uint32(37), r.End.Character)
}

func TestDocumentClassesStale(t *testing.T) {
	doc := open(t, app)
	require.NoError(t, doc.SetContent("export function A() { return <div> }", 2))

	_, err := helpers.DocumentClasses(doc)
	assert.ErrorIs(t, err, helpers.ErrStale)
}

func TestDocumentClassesUnicodeSpace(t *testing.T) {
	class := "p-2 m-4\vw-4\u0085flex"
	source := "export function App() {\n  return <div className=\"" + class + "\" />;\n}\n"
	doc := open(t, source)

	classes, err := helpers.DocumentClasses(doc)
	require.NoError(t, err)

	var names []string
	for _, tok := range classes.Tokens {
		names = append(names, tok.Token)
		assert.Equal(t, tok.Token, source[tok.Start:tok.End])
	}
	assert.Equal(t, tailwind.Tokens(class), names)
	assert.Equal(t, []string{"p-2", "m-4", "w-4", "flex"}, names)
}
