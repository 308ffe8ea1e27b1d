package documents

import (
	"fmt"
	"sync"

	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager manages text documents for the language server
type Manager struct {
	documents map[string]*Document
	opts      []Option
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager(opts ...Option) *Manager {
	return &Manager{
		documents: make(map[string]*Document),
		opts:      opts,
	}
}

// Configure sets the document options and applies them to open
// documents.
func (m *Manager) Configure(opts ...Option) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = opts
	for _, doc := range m.documents {
		doc.Configure(opts...)
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all managed documents
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// DidOpen handles the textDocument/didOpen notification. The tree is built
// before DidOpen returns.
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.documents[uri]; ok {
		old.Close()
	}
	doc := NewDocument(uri, languageID, version, content, m.opts...)
	if err := doc.Session().Err(); err != nil {
		log.Debug("Opened %s with errors: %v", uri, err)
	}
	m.documents[uri] = doc
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("document not found: %s", uri)
	}
	doc.Close()
	delete(m.documents, uri)
	return nil
}

// DidChange handles the textDocument/didChange notification. changes holds
// protocol.TextDocumentContentChangeEvent or
// protocol.TextDocumentContentChangeEventWhole values, applied in order.
// The tree rebuild is scheduled, not awaited.
func (m *Manager) DidChange(uri string, version int, changes []any) error {
	m.mu.RLock()
	doc, exists := m.documents[uri]
	m.mu.RUnlock()
	if !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	newContent, err := applyChanges(doc.Content(), changes)
	if err != nil {
		return fmt.Errorf("failed to apply changes: %w", err)
	}
	if err := doc.SetContent(newContent, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyChanges applies a list of content changes to the document
func applyChanges(content string, changes []any) (string, error) {
	result := content
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			result = c.Text
		case protocol.TextDocumentContentChangeEvent:
			// If no range is provided, this is a full document update
			if c.Range == nil {
				result = c.Text
				continue
			}
			next, err := applyIncrementalChange(result, *c.Range, c.Text)
			if err != nil {
				return "", err
			}
			result = next
		default:
			return "", fmt.Errorf("unsupported change event %T", change)
		}
	}
	return result, nil
}

// applyIncrementalChange replaces a range given in UTF-16 positions.
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	ix := position.NewIndex(content)
	if int(r.Start.Line) > ix.Lines() || int(r.End.Line) > ix.Lines() {
		return "", fmt.Errorf("range %d-%d out of bounds (total lines: %d)", r.Start.Line, r.End.Line, ix.Lines())
	}
	start := ix.UTF16Offset(r.Start.Line, r.Start.Character)
	end := ix.UTF16Offset(r.End.Line, r.End.Character)
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	return content[:start] + text + content[end:], nil
}
