package lsp

import (
	"path/filepath"
	"sync"

	"bennypowers.dev/jsxtree/internal/config"
	"bennypowers.dev/jsxtree/internal/documents"
	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/parser/css"
	"bennypowers.dev/jsxtree/internal/parser/jsx"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/lsp/methods/lifecycle"
	"bennypowers.dev/jsxtree/lsp/methods/textDocument"
	documentcolor "bennypowers.dev/jsxtree/lsp/methods/textDocument/documentColor"
	"bennypowers.dev/jsxtree/lsp/methods/textDocument/hover"
	"bennypowers.dev/jsxtree/lsp/methods/workspace"
	"bennypowers.dev/jsxtree/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Name is the server name reported to clients.
const Name = lifecycle.ServerName

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server represents the JSX tree language server
type Server struct {
	documents  *documents.Manager
	glspServer *server.Server
	context    *glsp.Context
	rootURI    string             // Workspace root URI
	rootPath   string             // Workspace root path (file system)
	config     *config.Config     // Project configuration
	registry   *tailwind.Registry // Properties over the configured theme
	configMu   sync.RWMutex       // Protects root, config, registry and context
}

// NewServer creates a new language server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		config:    config.Default(),
		registry:  tailwind.NewRegistry(tailwind.DefaultTheme()),
	}

	// Create the GLSP server with our handlers wrapped with middleware
	handler := protocol.Handler{
		Initialize:                     method(s, "initialize", lifecycle.Initialize),
		Initialized:                    notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                       noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                       notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeWatchedFiles: notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		WorkspaceExecuteCommand:        method(s, "workspace/executeCommand", workspace.ExecuteCommand),
		TextDocumentDidOpen:            notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:          notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:           notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:              method(s, "textDocument/hover", hover.Hover),
		TextDocumentColor:              method(s, "textDocument/documentColor", documentcolor.DocumentColor),
		TextDocumentColorPresentation:  method(s, "textDocument/colorPresentation", documentcolor.ColorPresentation),
	}

	s.glspServer = server.NewServer(&handler, Name, false)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases server resources including the parser pools.
// It is safe to call Close multiple times.
func (s *Server) Close() error {
	for _, doc := range s.documents.GetAll() {
		_ = s.documents.DidClose(doc.URI())
	}
	jsx.ClosePool()
	css.ClosePool()
	return nil
}

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// Config returns the project configuration
func (s *Server) Config() *config.Config {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// Registry returns the property registry for the configured theme
func (s *Server) Registry() *tailwind.Registry {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.registry
}

// LoadConfig reads the workspace configuration and rebuilds the registry.
// Open documents switch to the new registry. Token file errors are
// returned, but the theme without them still applies.
func (s *Server) LoadConfig() error {
	cfg, err := config.Load(s.RootPath())
	if err != nil {
		return err
	}
	theme, themeErr := cfg.ResolveTheme()
	registry := tailwind.NewRegistry(theme)

	s.configMu.Lock()
	s.config = cfg
	s.registry = registry
	s.configMu.Unlock()

	s.documents.Configure(
		documents.WithRegistry(registry),
		documents.WithClassAttribute(cfg.ClassAttribute),
	)
	log.Info("Configuration loaded: class attribute %q, %d properties", cfg.ClassAttribute, len(registry.Names()))
	return themeErr
}

// RegisterFileWatchers asks the client to report changes to configuration
// and token files.
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// An empty context (created with &glsp.Context{}) won't have Call initialized
	if context == nil || context.Call == nil {
		log.Info("Skipping file watcher registration (no client context)")
		return nil
	}

	patterns := []string{
		"**/package.json",
		"**/.config/jsxtree.{yaml,yml,json}",
		"**/.config/design-tokens.{yaml,yml,json}",
	}
	cfg := s.Config()
	for _, f := range cfg.TokensFiles {
		patterns = append(patterns, filepath.ToSlash(cfg.Path(f)))
	}

	watchers := make([]protocol.FileSystemWatcher, 0, len(patterns))
	for _, p := range patterns {
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: p})
	}
	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     "jsxtree-config-watcher",
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request. Calling it synchronously would
	// block the message loop that reads the response.
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call("client/registerCapability", params, &result)
		log.Info("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}

// GLSPContext returns the GLSP context.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}
