package types

import (
	"errors"
	"fmt"

	"bennypowers.dev/jsxtree/internal/documents"
	"github.com/tliron/glsp"
)

var (
	// ErrDocumentNotOpen is returned for a URI the client never opened or
	// already closed.
	ErrDocumentNotOpen = errors.New("document not open")

	// ErrStale is returned while a document's text has not been rebuilt into
	// its tree, usually because the text does not parse.
	ErrStale = errors.New("document tree does not match its text")
)

// RequestContext carries one LSP call: the server it reached, the glsp
// connection it arrived on (nil in tests), and the non-fatal problems the
// handler ran into.
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context
	warnings []error // logged by the middleware once the handler returns
}

// NewRequestContext creates a request context
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	return &RequestContext{
		Server: server,
		GLSP:   glsp,
	}
}

// Document returns the open document for uri.
func (r *RequestContext) Document(uri string) (*documents.Document, error) {
	doc := r.Server.Document(uri)
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotOpen, uri)
	}
	return doc, nil
}

// SyncedDocument returns the open document for uri after rebuilding any
// pending text, so that node ids and class tokens describe the text the
// client sees. A document whose latest text does not parse is ErrStale.
func (r *RequestContext) SyncedDocument(uri string) (*documents.Document, error) {
	doc, err := r.Document(uri)
	if err != nil {
		return nil, err
	}
	if err := doc.Sync(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStale, uri, err)
	}
	if doc.Session().Source() != doc.Content() {
		return nil, fmt.Errorf("%w: %s", ErrStale, uri)
	}
	return doc, nil
}

// AddWarning records a problem that does not fail the request, such as an
// arbitrary color value csscolorparser cannot read. nil is ignored.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns the recorded warnings, nil when there are none.
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings reports whether any warning was recorded.
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}
