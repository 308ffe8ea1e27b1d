package classname_test

import (
	"errors"
	"testing"

	"bennypowers.dev/jsxtree/internal/classname"
	"bennypowers.dev/jsxtree/internal/crdt"
	"bennypowers.dev/jsxtree/internal/loader"
	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *store.Store
	editor *classname.Editor
	root   *tree.Node
}

func setup(t *testing.T, source string, opts ...classname.Option) *fixture {
	t.Helper()
	root, err := loader.Build(source, loader.WithFilePath("App.jsx"))
	require.NoError(t, err)

	s := store.New(crdt.New("test"))
	require.NoError(t, s.Replace(root))

	e := classname.NewEditor(s, tailwind.NewRegistry(tailwind.DefaultTheme()), opts...)
	t.Cleanup(e.Close)
	return &fixture{store: s, editor: e, root: root}
}

// element returns the id of the first element with tag.
func (f *fixture) element(t *testing.T, tag string) string {
	t.Helper()
	var id string
	tree.Walk(f.root, func(n *tree.Node) bool {
		if el, ok := n.Payload.(*tree.Element); ok && el.TagName == tag && id == "" {
			id = n.ID
		}
		return id == ""
	})
	require.NotEmpty(t, id, "no <%s>", tag)
	return id
}

func (f *fixture) source(t *testing.T) string {
	t.Helper()
	root, err := f.store.Snapshot()
	require.NoError(t, err)
	return loader.Stringify(root)
}

func wrap(jsx string) string {
	return "export function App() {\n  return " + jsx + ";\n}\n"
}

func TestTokensAndValue(t *testing.T) {
	f := setup(t, wrap(`<div className="w-1/2 h-1/2 text-red-500 text-xl text-center">hi</div>`))
	id := f.element(t, "div")

	tokens, err := f.editor.Tokens(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"w-1/2", "h-1/2", "text-red-500", "text-xl", "text-center"}, tokens)

	v, ok, err := f.editor.Value(id, "color")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tailwind.Keyword{Name: "red-500", Resolved: "#ef4444"}, v)

	_, ok, err = f.editor.Value(id, "background")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = f.editor.Value(id, "nope")
	assert.True(t, errors.Is(err, tailwind.ErrUnknownProperty))
}

func TestSetValueInPlace(t *testing.T) {
	f := setup(t, wrap(`<div className="w-1/2 h-1/2 text-red-500 text-xl text-center">hi</div>`))
	id := f.element(t, "div")

	require.NoError(t, f.editor.SetValue(id, "width", tailwind.Keyword{Name: "4"}))
	assert.Equal(t,
		wrap(`<div className="w-4 h-1/2 text-red-500 text-xl text-center">hi</div>`),
		f.source(t))

	require.NoError(t, f.editor.Unset(id, "height"))
	assert.Equal(t,
		wrap(`<div className="w-4 text-red-500 text-xl text-center">hi</div>`),
		f.source(t))

	tokens, err := f.editor.Tokens(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"w-4", "text-red-500", "text-xl", "text-center"}, tokens, "cache follows edits")
}

func TestQuoteStyles(t *testing.T) {
	tests := []struct {
		name     string
		attr     string
		property string
		value    tailwind.Value
		want     string
	}{
		{"double", `className="p-2"`, "width", tailwind.Keyword{Name: "4"}, `className="p-2 w-4"`},
		{"single", `className='p-2'`, "width", tailwind.Keyword{Name: "4"}, `className='p-2 w-4'`},
		{"braced string", `className={"p-2"}`, "width", tailwind.Keyword{Name: "4"}, `className={"p-2 w-4"}`},
		{"braced with space", `className={ 'p-2' }`, "width", tailwind.Keyword{Name: "4"}, `className={ 'p-2 w-4' }`},
		{"template", "className={`p-2`}", "width", tailwind.Keyword{Name: "4"}, "className={`p-2 w-4`}"},
		{"switches quote", `className='p-2'`, "fontFamily", tailwind.Arbitrary{Raw: "Open Sans"}, `className="p-2 font-['Open_Sans']"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, wrap(`<div `+tt.attr+` />`))
			id := f.element(t, "div")

			require.NoError(t, f.editor.SetValue(id, tt.property, tt.value))
			assert.Equal(t, wrap(`<div `+tt.want+` />`), f.source(t))
		})
	}
}

func TestAppendsMissingAttribute(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"no attributes", `<div>hi</div>`, `<div className="bg-red-500">hi</div>`},
		{"self closing", `<img />`, `<img className="bg-red-500" />`},
		{"after attributes", `<a href="/">hi</a>`, `<a href="/" className="bg-red-500">hi</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, wrap(tt.source))
			var id string
			tree.Walk(f.root, func(n *tree.Node) bool {
				if n.Kind() == tree.KindElement && id == "" {
					id = n.ID
				}
				return true
			})

			require.NoError(t, f.editor.SetValue(id, "background", tailwind.Keyword{Name: "red-500"}))
			assert.Equal(t, wrap(tt.want), f.source(t))
		})
	}
}

func TestUnsetWithoutAttributeIsNoop(t *testing.T) {
	f := setup(t, wrap(`<div>hi</div>`))
	require.NoError(t, f.editor.Unset(f.element(t, "div"), "width"))
	assert.Equal(t, wrap(`<div>hi</div>`), f.source(t))
}

func TestDynamicClassName(t *testing.T) {
	sources := []string{
		`<div className={styles.box} />`,
		"<div className={`p-${size}`} />",
		`<div className />`,
	}
	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			f := setup(t, wrap(source))
			id := f.element(t, "div")

			_, err := f.editor.Tokens(id)
			assert.True(t, errors.Is(err, classname.ErrDynamicClassName))

			err = f.editor.SetValue(id, "width", tailwind.Keyword{Name: "4"})
			assert.True(t, errors.Is(err, classname.ErrDynamicClassName))
			assert.Equal(t, wrap(source), f.source(t))
		})
	}
}

func TestNotAnElement(t *testing.T) {
	f := setup(t, wrap(`<div>hi</div>`))

	var textID string
	tree.Walk(f.root, func(n *tree.Node) bool {
		if n.Kind() == tree.KindText {
			textID = n.ID
		}
		return true
	})

	_, err := f.editor.Tokens(textID)
	assert.True(t, errors.Is(err, classname.ErrNotElement))

	_, err = f.editor.Tokens("missing")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestWithAttribute(t *testing.T) {
	f := setup(t, wrap(`<div class="pt-2 pb-2">hi</div>`), classname.WithAttribute("class"))
	id := f.element(t, "div")
	assert.Equal(t, "class", f.editor.Attribute())

	v, ok, err := f.editor.Value(id, "paddingY")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tailwind.Keyword{Name: "2", Resolved: "0.5rem"}, v)

	require.NoError(t, f.editor.SetValue(id, "paddingY", tailwind.Keyword{Name: "4"}))
	assert.Equal(t, wrap(`<div class="pt-4 pb-4">hi</div>`), f.source(t))
}

func TestShorthandThroughEditor(t *testing.T) {
	f := setup(t, wrap(`<div className="ml-4 mr-8">hi</div>`))
	id := f.element(t, "div")

	v, ok, err := f.editor.Value(id, "marginX")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, tailwind.IsMixed(v))

	require.NoError(t, f.editor.SetValue(id, "marginX", tailwind.Keyword{Name: "2"}))
	assert.Equal(t, wrap(`<div className="ml-2 mr-2">hi</div>`), f.source(t))
}

func TestSetValueKeepsWhitespace(t *testing.T) {
	f := setup(t, wrap("<div className=\"w-1/2  h-4\t text-red-500\">hi</div>"))
	id := f.element(t, "div")

	require.NoError(t, f.editor.SetValue(id, "width", tailwind.Keyword{Name: "4"}))
	assert.Equal(t, wrap("<div className=\"w-4  h-4\t text-red-500\">hi</div>"), f.source(t))

	require.NoError(t, f.editor.Unset(id, "height"))
	assert.Equal(t, wrap("<div className=\"w-4\t text-red-500\">hi</div>"), f.source(t))

	require.NoError(t, f.editor.SetValue(id, "background", tailwind.Keyword{Name: "white"}))
	assert.Equal(t, wrap("<div className=\"w-4\t text-red-500 bg-white\">hi</div>"), f.source(t))
}
