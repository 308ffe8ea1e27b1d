package workspace

import (
	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification. Any change to a watched configuration or token file reloads
// the configuration.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	if len(params.Changes) == 0 {
		return nil
	}
	for _, change := range params.Changes {
		log.Info("Watched file changed: %s (type %d)", change.URI, change.Type)
	}
	if err := req.Server.LoadConfig(); err != nil {
		ShowMessage(req.GLSP, protocol.MessageTypeWarning, "jsxtree: failed to reload configuration: %v", err)
		req.AddWarning(err)
	}
	return nil
}
