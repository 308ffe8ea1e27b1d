package lifecycle

import (
	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/lsp/types"
)

// Shutdown handles the LSP shutdown request. Open documents are closed;
// parser pools are released by the server's Close.
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	manager := req.Server.DocumentManager()
	for _, doc := range manager.GetAll() {
		if err := manager.DidClose(doc.URI()); err != nil {
			req.AddWarning(err)
		}
	}
	log.Flush()
	return nil
}
