package workspace_test

import (
	"errors"
	"testing"

	"bennypowers.dev/jsxtree/lsp/methods/workspace"
	"bennypowers.dev/jsxtree/lsp/testutil"
	"bennypowers.dev/jsxtree/lsp/types"
	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDidChangeWatchedFiles(t *testing.T) {
	t.Run("reloads configuration", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		req := types.NewRequestContext(ctx, nil)

		err := workspace.DidChangeWatchedFiles(req, &protocol.DidChangeWatchedFilesParams{
			Changes: []protocol.FileEvent{{URI: "file:///workspace/package.json", Type: 2}},
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, ctx.LoadConfigCalled)
	})

	t.Run("ignores empty notifications", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		req := types.NewRequestContext(ctx, nil)

		assert.NoError(t, workspace.DidChangeWatchedFiles(req, &protocol.DidChangeWatchedFilesParams{}))
		assert.Zero(t, ctx.LoadConfigCalled)
	})

	t.Run("reports load errors as warnings", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		ctx.LoadConfigFunc = func() error { return errors.New("bad tokens") }
		req := types.NewRequestContext(ctx, nil)

		err := workspace.DidChangeWatchedFiles(req, &protocol.DidChangeWatchedFilesParams{
			Changes: []protocol.FileEvent{{URI: "file:///workspace/tokens.json", Type: 3}},
		})
		assert.NoError(t, err)
		assert.True(t, req.HasWarnings())
	})
}
