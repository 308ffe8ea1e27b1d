package loader

import (
	"errors"
	"testing"

	"bennypowers.dev/jsxtree/internal/crdt"
	"bennypowers.dev/jsxtree/internal/parser/jsx"
	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v1 = "export function A() {\n  return <p className=\"p-4\">one</p>;\n}\n"
const v2 = "export function A() {\n  return <p className=\"p-4\">two</p>;\n}\n"
const v3 = "export function A() {\n  return <p className=\"p-4\">three</p>;\n}\n"

func newSession() *Session {
	return NewSession(store.New(crdt.New("test")), "A.jsx")
}

func ids(t *testing.T, s *Session) []string {
	t.Helper()
	root, err := s.Snapshot()
	require.NoError(t, err)
	var out []string
	tree.Walk(root, func(n *tree.Node) bool {
		out = append(out, n.ID)
		return true
	})
	return out
}

func TestSessionLoadKeepsIDs(t *testing.T) {
	s := newSession()
	require.NoError(t, s.Load(v1))
	before := ids(t, s)

	require.NoError(t, s.Load(v2))
	assert.Equal(t, before, ids(t, s))
	assert.Equal(t, v2, s.Source())

	root, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, v2, Stringify(root))
	assert.Equal(t, "A.jsx", root.Payload.(*tree.File).FilePath)
}

func TestSessionSyntaxErrorKeepsTree(t *testing.T) {
	s := newSession()
	require.NoError(t, s.Load(v1))

	err := s.Load("export function A() { return <p>; }")
	assert.True(t, errors.Is(err, jsx.ErrSyntax))
	assert.Equal(t, v1, s.Source())

	root, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, v1, Stringify(root))
}

func TestScheduleCoalesces(t *testing.T) {
	s := newSession()
	require.NoError(t, s.Load(v1))

	started := make(chan struct{})
	release := make(chan struct{})
	first := true
	s.beforeRebuild = func() {
		if first {
			first = false
			close(started)
			<-release
		}
	}

	s.Schedule(v2)
	<-started
	s.Schedule(v2)
	s.Schedule(v3)
	s.Schedule(v3)
	close(release)

	require.NoError(t, s.Flush())
	assert.Equal(t, 2, s.Builds(), "one load plus one coalesced rebuild")
	assert.Equal(t, v3, s.Source())
}

func TestScheduleReportsError(t *testing.T) {
	s := newSession()
	s.Schedule("export function A() { return <p>; }")
	err := s.Flush()
	assert.True(t, errors.Is(err, jsx.ErrSyntax))
	assert.Equal(t, err, s.Err())

	s.Schedule(v1)
	assert.NoError(t, s.Flush())
}

func TestFlushWithoutSchedule(t *testing.T) {
	assert.NoError(t, newSession().Flush())
}

func TestSessionEdit(t *testing.T) {
	s := newSession()
	require.NoError(t, s.Load(v1))
	root, _ := s.Snapshot()
	textID := root.Children[0].Children[0].Children[0].ID

	require.NoError(t, s.Edit(func(st *store.Store) error {
		return st.SetField(textID, tree.FieldText, "edited")
	}))
	assert.Contains(t, s.Source(), ">edited<")

	err := s.Edit(func(*store.Store) error { return errors.New("nope") })
	assert.Error(t, err)
}
