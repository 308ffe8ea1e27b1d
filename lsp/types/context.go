package types

import (
	"bennypowers.dev/jsxtree/internal/config"
	"bennypowers.dev/jsxtree/internal/documents"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface so tests can supply a mock.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	Config() *config.Config
	Registry() *tailwind.Registry
	LoadConfig() error
	RegisterFileWatchers(ctx *glsp.Context) error

	// LSP context (for server-initiated requests)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)
}
