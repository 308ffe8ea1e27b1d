package documents

import (
	"fmt"
	"sync"

	"bennypowers.dev/jsxtree/internal/classname"
	"bennypowers.dev/jsxtree/internal/crdt"
	"bennypowers.dev/jsxtree/internal/loader"
	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/internal/uriutil"
)

type options struct {
	registry  *tailwind.Registry
	attribute string
}

// Option configures documents.
type Option func(*options)

// WithRegistry sets the property registry class editors use.
func WithRegistry(r *tailwind.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithClassAttribute sets the attribute class editors edit.
func WithClassAttribute(name string) Option {
	return func(o *options) { o.attribute = name }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = tailwind.NewRegistry(tailwind.DefaultTheme())
	}
	return o
}

// Document is an open JSX source. Its node tree lives in a store kept in
// step with the text by a loader session.
type Document struct {
	uri        string
	languageID string

	mu      sync.RWMutex
	content string
	version int

	session *loader.Session
	editor  *classname.Editor
}

// NewDocument creates a document and loads its tree. A syntax error leaves
// the tree empty and is reported by Err.
func NewDocument(uri, languageID string, version int, content string, opts ...Option) *Document {
	o := newOptions(opts)
	s := store.New(crdt.New(uri))
	d := &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
		session:    loader.NewSession(s, uriutil.URIToPath(uri)),
	}
	d.editor = classname.NewEditor(s, o.registry, classname.WithAttribute(o.attribute))
	_ = d.session.Load(content)
	return d
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Content returns the document's current text, which may be ahead of the
// tree while a rebuild is pending.
func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// SetContent updates the text and schedules a rebuild of the tree.
// Returns an error if the provided version is older than the current document version,
// preventing stale updates from being applied.
func (d *Document) SetContent(content string, version int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	d.session.Schedule(content)
	return nil
}

// Session returns the loader session holding the tree.
func (d *Document) Session() *loader.Session {
	return d.session
}

// Editor returns the class editor over the document's tree.
func (d *Document) Editor() *classname.Editor {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.editor
}

// Configure replaces the class editor with one built from opts.
func (d *Document) Configure(opts ...Option) {
	o := newOptions(opts)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editor.Close()
	d.editor = classname.NewEditor(d.session.Store(), o.registry, classname.WithAttribute(o.attribute))
}

// Sync waits for pending rebuilds and returns the latest rebuild error.
func (d *Document) Sync() error {
	return d.session.Flush()
}

// Close releases the document's caches.
func (d *Document) Close() {
	_ = d.session.Flush()
	d.Editor().Close()
}
