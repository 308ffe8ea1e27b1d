package lifecycle

import (
	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification. "verbose" enables debug
// logging.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Info("Trace level set to: %s", params.Value)
	switch params.Value {
	case "verbose":
		log.SetLevel(log.LevelDebug)
	default:
		log.SetLevel(log.LevelInfo)
	}
	return nil
}
