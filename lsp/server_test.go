package lsp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{
  "jsxtree": {"classAttribute": "class", "theme": {"colors": {"brand": "#0055ff"}}}
}`), 0o644))

	s := newServer(t)
	require.NoError(t, s.DocumentManager().DidOpen("file:///a.jsx", "javascriptreact", 1, ""))
	s.SetRootPath(root)

	require.NoError(t, s.LoadConfig())
	assert.Equal(t, "class", s.Config().ClassAttribute)
	assert.Equal(t, "#0055ff", s.Registry().Theme().Scale("colors")["brand"])

	doc := s.Document("file:///a.jsx")
	assert.Equal(t, "class", doc.Editor().Attribute(), "open documents are reconfigured")
	assert.Same(t, s.Registry(), doc.Editor().Registry())
}

func TestLoadConfigTokenErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"),
		[]byte(`{"jsxtree": {"tokensFiles": ["missing.json"]}}`), 0o644))

	s := newServer(t)
	s.SetRootPath(root)

	assert.Error(t, s.LoadConfig())
	v, ok := s.Registry().Property("color")
	require.True(t, ok)
	_, hasRed := v.Keyword("red-500")
	assert.True(t, hasRed, "the theme without token files still applies")
}

func TestRegisterFileWatchersWithoutClient(t *testing.T) {
	s := newServer(t)
	assert.NoError(t, s.RegisterFileWatchers(nil))
	assert.NoError(t, s.RegisterFileWatchers(&glsp.Context{}))
}

func TestServerRoot(t *testing.T) {
	s := newServer(t)
	s.SetRootURI("file:///workspace")
	s.SetRootPath("/workspace")
	assert.Equal(t, "file:///workspace", s.RootURI())
	assert.Equal(t, "/workspace", s.RootPath())

	ctx := &glsp.Context{}
	s.SetGLSPContext(ctx)
	assert.Same(t, ctx, s.GLSPContext())
}

func TestMiddleware(t *testing.T) {
	s := newServer(t)

	t.Run("method returns result", func(t *testing.T) {
		h := method(s, "test", func(req *types.RequestContext, p int) (int, error) {
			return p * 2, nil
		})
		got, err := h(nil, 21)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("method wraps errors and drops results", func(t *testing.T) {
		boom := errors.New("boom")
		h := method(s, "test", func(req *types.RequestContext, p int) (int, error) {
			return p, boom
		})
		got, err := h(nil, 1)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "test: boom")
		assert.Zero(t, got)
	})

	t.Run("method recovers panics", func(t *testing.T) {
		h := method(s, "test", func(req *types.RequestContext, p int) (int, error) {
			panic("kaboom")
		})
		got, err := h(nil, 1)
		assert.EqualError(t, err, "internal error in test")
		assert.Zero(t, got)
	})

	t.Run("notify recovers panics", func(t *testing.T) {
		h := notify(s, "note", func(req *types.RequestContext, p *struct{}) error {
			panic("kaboom")
		})
		assert.EqualError(t, h(nil, nil), "internal error in note")
	})

	t.Run("noParam passes warnings through", func(t *testing.T) {
		h := noParam(s, "bare", func(req *types.RequestContext) error {
			req.AddWarning(errors.New("careful"))
			assert.Same(t, s, req.Server)
			return nil
		})
		assert.NoError(t, h(nil))
	})
}

func TestDefaultRegistry(t *testing.T) {
	s := newServer(t)
	assert.Equal(t, tailwind.NewRegistry(tailwind.DefaultTheme()).Names(), s.Registry().Names())
}
