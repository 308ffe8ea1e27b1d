// Package testutil provides a ServerContext for handler tests.
package testutil

import (
	"bennypowers.dev/jsxtree/internal/config"
	"bennypowers.dev/jsxtree/internal/documents"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"github.com/tliron/glsp"
)

// MockServerContext implements types.ServerContext for testing.
// It provides a minimal implementation with configurable behavior via callback functions.
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      *config.Config
	registry    *tailwind.Registry
	glspContext *glsp.Context

	// Optional callbacks for custom behavior in tests
	LoadConfigFunc       func() error
	RegisterWatchersFunc func(*glsp.Context) error

	// Tracking flags for tests that need to verify methods were called
	LoadConfigCalled       int
	RegisterWatchersCalled bool
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:     documents.NewManager(),
		config:   config.Default(),
		registry: tailwind.NewRegistry(tailwind.DefaultTheme()),
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// Config returns the project configuration
func (m *MockServerContext) Config() *config.Config {
	return m.config
}

// SetConfig replaces the configuration and reconfigures documents.
func (m *MockServerContext) SetConfig(cfg *config.Config) {
	m.config = cfg
	m.docs.Configure(documents.WithRegistry(m.registry), documents.WithClassAttribute(cfg.ClassAttribute))
}

// Registry returns the property registry
func (m *MockServerContext) Registry() *tailwind.Registry {
	return m.registry
}

// LoadConfig records the call and runs LoadConfigFunc, if set
func (m *MockServerContext) LoadConfig() error {
	m.LoadConfigCalled++
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc()
	}
	return nil
}

// RegisterFileWatchers registers file watchers with the client
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}
