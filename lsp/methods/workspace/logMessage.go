package workspace

import (
	"fmt"

	"bennypowers.dev/jsxtree/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// notify sends a window notification without blocking the handler. A nil
// context (tests, CLI) only logs locally.
func notify(context *glsp.Context, method string, params any) {
	if context == nil || context.Notify == nil {
		return
	}
	go context.Notify(method, params)
}

// LogError writes to stderr and to the client's log.
func LogError(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	notify(context, protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}

// LogWarning writes to stderr and to the client's log.
func LogWarning(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	notify(context, protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeWarning,
		Message: message,
	})
}

// ShowMessage pops a message up in the editor, for problems the user has to
// fix, such as a broken jsxtree configuration.
func ShowMessage(context *glsp.Context, messageType protocol.MessageType, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Info("%s", message)
	notify(context, protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
		Type:    messageType,
		Message: message,
	})
}
