package store_test

import (
	"errors"
	"testing"

	"bennypowers.dev/jsxtree/internal/crdt"
	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *store.Store {
	return store.New(crdt.New("test"))
}

func sampleTree() *tree.Node {
	return &tree.Node{
		ID:      "f",
		Payload: &tree.File{FilePath: "App.jsx", Header: "// app\n"},
		Children: []*tree.Node{{
			ID:       "c",
			Location: tree.Location{Line: 1},
			Payload:  &tree.Component{Name: "App", Header: "export function App() { return ", Footer: "; }\n"},
			Children: []*tree.Node{{
				ID:       "e",
				Location: tree.Location{Line: 1, Column: 31},
				Payload: &tree.Element{
					TagName:    "div",
					Attributes: []tree.Attr{tree.NewAttribute("className", `"p-4"`)},
					OpenEnd:    ">",
					CloseTag:   "</div>",
				},
				Children: []*tree.Node{{ID: "t", Payload: &tree.Text{Text: "hi"}}},
			}},
		}},
	}
}

func TestCreateAndGet(t *testing.T) {
	s := newStore()
	rec, err := s.Create(tree.KindElement, "el")
	require.NoError(t, err)
	assert.Equal(t, tree.KindElement, rec.Kind)

	got, ok := s.Get("el")
	require.True(t, ok)
	assert.Equal(t, tree.KindElement, got.Kind)
	assert.Equal(t, ">", got.Payload.(*tree.Element).OpenEnd)
	assert.Empty(t, s.Children("el"))

	_, err = s.Create(tree.KindText, "el")
	assert.ErrorIs(t, err, store.ErrExists)

	_, err = s.Create(tree.KindText, "a/b")
	assert.Error(t, err)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestReplaceAndSnapshot(t *testing.T) {
	s := newStore()
	original := sampleTree()
	require.NoError(t, s.Replace(original))

	root, ok := s.Root()
	require.True(t, ok)
	assert.Equal(t, "f", root)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"c"}, s.Children("f"))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, original, snap)

	next := &tree.Node{ID: "g", Payload: &tree.File{}}
	require.NoError(t, s.Replace(next))
	assert.Equal(t, 1, s.Len())
	_, ok = s.Get("e")
	assert.False(t, ok, "replace drops nodes of the previous tree")
}

func TestReplaceRejectsMissingIDs(t *testing.T) {
	s := newStore()
	root := sampleTree()
	root.Children[0].ID = ""
	assert.Error(t, s.Replace(root))
	assert.Equal(t, 0, s.Len())
}

func TestSnapshotEmpty(t *testing.T) {
	snap, err := newStore().Snapshot()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSetField(t *testing.T) {
	s := newStore()
	require.NoError(t, s.Replace(sampleTree()))

	attrs := []tree.Attr{tree.NewAttribute("className", `"m-2"`)}
	require.NoError(t, s.SetField("e", tree.FieldAttributes, attrs))

	*attrs[0].(tree.Attribute).Value = `"mutated"`
	rec, _ := s.Get("e")
	got := rec.Payload.(*tree.Element).Attributes[0].(tree.Attribute)
	assert.Equal(t, `"m-2"`, *got.Value, "stored attributes are copied")

	require.NoError(t, s.SetField("t", tree.FieldText, "bye"))
	rec, _ = s.Get("t")
	assert.Equal(t, "bye", rec.Payload.(*tree.Text).Text)

	require.NoError(t, s.SetField("e", store.FieldLocation, tree.Location{Line: 9}))
	rec, _ = s.Get("e")
	assert.Equal(t, 9, rec.Location.Line)

	assert.ErrorIs(t, s.SetField("t", tree.FieldTagName, "p"), tree.ErrUnknownField)
	assert.ErrorIs(t, s.SetField("t", tree.FieldText, 3), tree.ErrFieldType)
	assert.ErrorIs(t, s.SetField("nope", tree.FieldText, "x"), store.ErrNotFound)
	assert.Error(t, s.SetField("t", store.FieldKind, "element"))
}

func TestSetChildren(t *testing.T) {
	s := newStore()
	require.NoError(t, s.Replace(sampleTree()))
	_, err := s.Create(tree.KindText, "t2")
	require.NoError(t, err)

	require.NoError(t, s.SetField("e", store.FieldChildren, []string{"t2", "t"}))
	assert.Equal(t, []string{"t2", "t"}, s.Children("e"))

	err = s.SetField("e", store.FieldChildren, []string{"ghost"})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestSubscribe(t *testing.T) {
	s := newStore()
	var batches [][]store.Change
	unsubscribe := s.Subscribe(func(c []store.Change) { batches = append(batches, c) })

	require.NoError(t, s.Replace(sampleTree()))
	require.Len(t, batches, 1, "replace is one transaction")

	require.NoError(t, s.SetField("t", tree.FieldText, "x"))
	require.Len(t, batches, 2)
	assert.Equal(t, []store.Change{{ID: "t", Field: tree.FieldText}}, batches[1])

	unsubscribe()
	require.NoError(t, s.SetField("t", tree.FieldText, "y"))
	assert.Len(t, batches, 2)
}

func TestMergeReplicas(t *testing.T) {
	docA, docB := crdt.New("a"), crdt.New("b")
	a, b := store.New(docA), store.New(docB)
	require.NoError(t, a.Replace(sampleTree()))
	docB.Merge(docA)

	require.NoError(t, a.SetField("t", tree.FieldText, "from a"))
	require.NoError(t, b.SetField("c", tree.FieldName, "Renamed"))

	var remote []store.Change
	b.Subscribe(func(c []store.Change) { remote = append(remote, c...) })

	docA.Merge(docB)
	docB.Merge(docA)

	for _, s := range []*store.Store{a, b} {
		text, _ := s.Get("t")
		comp, _ := s.Get("c")
		assert.Equal(t, "from a", text.Payload.(*tree.Text).Text)
		assert.Equal(t, "Renamed", comp.Payload.(*tree.Component).Name)
	}
	require.NotEmpty(t, remote)
	assert.True(t, remote[0].Remote)
}

func TestCacheInvalidation(t *testing.T) {
	s := newStore()
	require.NoError(t, s.Replace(sampleTree()))
	cache := store.NewCache[string](s)
	defer cache.Close()

	calls := 0
	compute := func() (string, error) {
		calls++
		rec, _ := s.Get("t")
		return rec.Payload.(*tree.Text).Text, nil
	}

	v, err := cache.Get("t", compute)
	require.NoError(t, err)
	assert.Equal(t, "hi", v)
	_, _ = cache.Get("t", compute)
	assert.Equal(t, 1, calls)

	require.NoError(t, s.SetField("e", tree.FieldTagName, "p"))
	_, _ = cache.Get("t", compute)
	assert.Equal(t, 1, calls, "unrelated node change keeps the entry")

	require.NoError(t, s.SetField("t", tree.FieldText, "changed"))
	v, _ = cache.Get("t", compute)
	assert.Equal(t, "changed", v)
	assert.Equal(t, 2, calls)

	require.NoError(t, s.Replace(sampleTree()))
	assert.Equal(t, 0, cache.Len())

	cache.Invalidate("t")
	_, err = cache.Get("x", func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len(), "errors are not cached")
}

func TestCacheDropsValueComputedDuringChange(t *testing.T) {
	s := newStore()
	require.NoError(t, s.Replace(sampleTree()))
	cache := store.NewCache[string](s)
	defer cache.Close()

	text := func() (string, error) {
		rec, _ := s.Get("t")
		return rec.Payload.(*tree.Text).Text, nil
	}

	v, err := cache.Get("t", func() (string, error) {
		v, err := text()
		require.NoError(t, s.SetField("t", tree.FieldText, "changed"))
		return v, err
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", v, "the caller still gets what it computed")
	assert.Equal(t, 0, cache.Len())

	v, err = cache.Get("t", text)
	require.NoError(t, err)
	assert.Equal(t, "changed", v)
	assert.Equal(t, 1, cache.Len())
}
