package cmd

import (
	"fmt"
	"os"

	"bennypowers.dev/jsxtree/internal/classname"
	"bennypowers.dev/jsxtree/internal/config"
	"bennypowers.dev/jsxtree/internal/crdt"
	"bennypowers.dev/jsxtree/internal/loader"
	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tailwind"
	"bennypowers.dev/jsxtree/internal/tree"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(chdir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// registry builds the property registry for cfg. Token file problems are
// logged; the rest of the theme still applies.
func registry(cfg *config.Config) *tailwind.Registry {
	theme, err := cfg.ResolveTheme()
	if err != nil {
		log.Warn("Theme: %v", err)
	}
	return tailwind.NewRegistry(theme)
}

// project is one source file loaded into a store.
type project struct {
	path    string
	session *loader.Session
	editor  *classname.Editor
}

func openFile(cfg *config.Config, path string) (*project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-named source file
	if err != nil {
		return nil, err
	}
	s := store.New(crdt.New(path))
	session := loader.NewSession(s, path)
	if err := session.Load(string(data)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &project{
		path:    path,
		session: session,
		editor:  classname.NewEditor(s, registry(cfg), classname.WithAttribute(cfg.ClassAttribute)),
	}, nil
}

func (p *project) Close() {
	p.editor.Close()
}

// resolve maps an element reference to a node id. A reference is a node id
// or the zero-based LINE:COLUMN location `tree` prints, since ids are not
// kept between runs.
func (p *project) resolve(ref string) (string, error) {
	if _, ok := p.session.Store().Get(ref); ok {
		return ref, nil
	}
	root, err := p.session.Snapshot()
	if err != nil {
		return "", err
	}
	var id string
	tree.Walk(root, func(n *tree.Node) bool {
		if id == "" && n.Kind() == tree.KindElement && n.Location.String() == ref {
			id = n.ID
		}
		return id == ""
	})
	if id == "" {
		return "", fmt.Errorf("%w: no node or element at %q", store.ErrNotFound, ref)
	}
	return id, nil
}
