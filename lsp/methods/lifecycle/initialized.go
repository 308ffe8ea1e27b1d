package lifecycle

import (
	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Store context for server-initiated requests
	req.Server.SetGLSPContext(req.GLSP)

	// Configuration problems are reported, not fatal
	if err := req.Server.LoadConfig(); err != nil {
		log.Warn("Failed to load configuration: %v", err)
		req.AddWarning(err)
	}

	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		log.Warn("Failed to register file watchers: %v", err)
	}

	return nil
}
