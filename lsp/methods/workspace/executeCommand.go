package workspace

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/position"
	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/lsp/helpers"
	"bennypowers.dev/jsxtree/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	// SetPropertyCommand sets or unsets one style property of an element.
	// Arguments: document URI, node id, property name, value. A null or
	// empty value unsets the property.
	SetPropertyCommand = "jsxtree.setProperty"
	// GetPropertyCommand reads one style property of an element.
	// Arguments: document URI, node id, property name.
	GetPropertyCommand = "jsxtree.getProperty"
)

var (
	// ErrUnknownCommand is returned for commands not in Commands.
	ErrUnknownCommand = errors.New("unknown command")
	ErrArguments      = errors.New("invalid command arguments")
)

// Commands lists the commands ExecuteCommand accepts.
func Commands() []string {
	return []string{GetPropertyCommand, SetPropertyCommand}
}

// PropertyResult is the result of GetPropertyCommand. Set is false when
// the property is unset.
type PropertyResult struct {
	Property string `json:"property"`
	Set      bool   `json:"set"`
	Value    string `json:"value,omitempty"`
	CSS      string `json:"css,omitempty"`
	Mixed    bool   `json:"mixed,omitempty"`
}

// ExecuteCommand handles the workspace/executeCommand request
func ExecuteCommand(req *types.RequestContext, params *protocol.ExecuteCommandParams) (any, error) {
	log.Info("Executing %s", params.Command)
	switch params.Command {
	case GetPropertyCommand:
		return getProperty(req, params.Arguments)
	case SetPropertyCommand:
		return setProperty(req, params.Arguments)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, params.Command)
}

// stringArgs reads the first n arguments as strings. Missing or null
// arguments beyond required are empty.
func stringArgs(args []any, required, n int) ([]string, error) {
	if len(args) < required {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrArguments, required, len(args))
	}
	out := make([]string, n)
	for i := 0; i < n && i < len(args); i++ {
		if args[i] == nil && i >= required {
			continue
		}
		s, ok := args[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d must be a string", ErrArguments, i)
		}
		out[i] = s
	}
	return out, nil
}

func getProperty(req *types.RequestContext, args []any) (any, error) {
	a, err := stringArgs(args, 3, 3)
	if err != nil {
		return nil, err
	}
	doc, err := req.SyncedDocument(a[0])
	if err != nil {
		return nil, err
	}
	v, ok, err := doc.Editor().Value(a[1], a[2])
	if err != nil {
		return nil, err
	}
	result := PropertyResult{Property: a[2], Set: ok}
	if ok {
		result.Value = v.String()
		result.CSS = tailwind.CSSValue(v)
		result.Mixed = tailwind.IsMixed(v)
	}
	return result, nil
}

func setProperty(req *types.RequestContext, args []any) (any, error) {
	a, err := stringArgs(args, 3, 4)
	if err != nil {
		return nil, err
	}
	uri, id, property, input := a[0], a[1], a[2], a[3]

	doc, err := req.SyncedDocument(uri)
	if err != nil {
		return nil, err
	}
	editor := doc.Editor()

	var value tailwind.Value
	if input != "" {
		if value, err = editor.Registry().ParseValue(property, input); err != nil {
			return nil, err
		}
	}

	before := doc.Content()
	err = doc.Session().Edit(func(*store.Store) error {
		return editor.SetValue(id, property, value)
	})
	if err != nil {
		return nil, err
	}
	after := doc.Session().Source()

	edit := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{},
	}
	if before != after {
		edit.Changes[uri] = []protocol.TextEdit{textEdit(before, after)}
	}
	applyEdit(req.GLSP, fmt.Sprintf("Set %s", property), edit)
	return edit, nil
}

// textEdit returns one edit turning before into after, covering only the
// changed middle.
func textEdit(before, after string) protocol.TextEdit {
	start := 0
	for start < len(before) && start < len(after) && before[start] == after[start] {
		start++
	}
	for start > 0 && start < len(before) && !utf8.RuneStart(before[start]) {
		start--
	}

	end, newEnd := len(before), len(after)
	for end > start && newEnd > start && before[end-1] == after[newEnd-1] {
		end--
		newEnd--
	}
	for end < len(before) && !utf8.RuneStart(before[end]) {
		end++
		newEnd++
	}

	return protocol.TextEdit{
		Range:   helpers.ByteRange(position.NewIndex(before), start, end),
		NewText: after[start:newEnd],
	}
}

// applyEdit asks the client to apply edit.
func applyEdit(context *glsp.Context, label string, edit protocol.WorkspaceEdit) {
	if context == nil || context.Call == nil {
		log.Debug("Skipping workspace/applyEdit (no client context)")
		return
	}
	params := protocol.ApplyWorkspaceEditParams{
		Label: &label,
		Edit:  edit,
	}
	// Calling synchronously would block the message loop that reads the
	// response.
	go func() {
		var result struct {
			Applied bool `json:"applied"`
		}
		context.Call("workspace/applyEdit", params, &result)
		if !result.Applied {
			LogWarning(context, "Client did not apply %q", label)
		}
	}()
}
