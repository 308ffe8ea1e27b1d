// Package store keeps a node tree in a mergeable key-value document.
//
// Each node field lives under its own key, "node/<id>/<field>", so
// concurrent edits to different fields of one node never conflict and
// edits to the same field resolve last-writer-wins in the backend. Node ids
// must not contain "/".
package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/jsxtree/internal/crdt"
	"bennypowers.dev/jsxtree/internal/tree"
)

const (
	rootKey    = "root"
	nodePrefix = "node/"

	// FieldKind, FieldLocation and FieldChildren are the header fields
	// shared by every kind.
	FieldKind     = "$kind"
	FieldLocation = "$location"
	FieldChildren = "$children"
)

var (
	// ErrNotFound is returned for an id the store does not hold.
	ErrNotFound = errors.New("node not found")
	// ErrExists is returned when creating an id that is already present.
	ErrExists = errors.New("node already exists")
)

// Backend is the contract of the mergeable document primitive.
type Backend interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Keys(prefix string) []string
	Transact(fn func())
	Observe(fn func([]crdt.Change)) func()
}

// Record is the stored form of one node: children are ids, not nodes.
type Record struct {
	ID       string
	Kind     tree.Kind
	Location tree.Location
	Children []string
	Payload  tree.Payload
}

// Change names one mutated field. A change of the root pointer has an
// empty ID and Field "root".
type Change struct {
	ID     string
	Field  string
	Remote bool
}

// Store maps ids to node records.
type Store struct {
	doc Backend
}

// New returns a store over doc.
func New(doc Backend) *Store {
	return &Store{doc: doc}
}

func key(id, field string) string {
	return nodePrefix + id + "/" + field
}

// Create adds an empty node of kind. Payload fields take their zero values.
func (s *Store) Create(kind tree.Kind, id string) (*Record, error) {
	payload, err := tree.NewPayload(kind)
	if err != nil {
		return nil, err
	}
	if id == "" || strings.Contains(id, "/") {
		return nil, fmt.Errorf("invalid node id %q", id)
	}
	if _, ok := s.doc.Get(key(id, FieldKind)); ok {
		return nil, fmt.Errorf("%w: %s", ErrExists, id)
	}
	rec := &Record{ID: id, Kind: kind, Payload: payload}
	s.doc.Transact(func() {
		s.write(rec)
	})
	return rec, nil
}

func (s *Store) write(rec *Record) {
	s.doc.Set(key(rec.ID, FieldKind), rec.Kind.String())
	s.doc.Set(key(rec.ID, FieldLocation), rec.Location)
	s.doc.Set(key(rec.ID, FieldChildren), slices.Clone(rec.Children))
	for name, value := range tree.Fields(rec.Payload) {
		s.doc.Set(key(rec.ID, name), value)
	}
}

// Get returns a copy of the record for id.
func (s *Store) Get(id string) (*Record, bool) {
	v, ok := s.doc.Get(key(id, FieldKind))
	if !ok {
		return nil, false
	}
	kind, err := tree.ParseKind(v.(string))
	if err != nil {
		return nil, false
	}
	rec := &Record{ID: id, Kind: kind, Children: s.Children(id)}
	if loc, ok := s.doc.Get(key(id, FieldLocation)); ok {
		rec.Location, _ = loc.(tree.Location)
	}

	fields := make(map[string]any)
	prefix := key(id, "")
	for _, k := range s.doc.Keys(prefix) {
		name := strings.TrimPrefix(k, prefix)
		if strings.HasPrefix(name, "$") {
			continue
		}
		if value, ok := s.doc.Get(k); ok {
			fields[name] = value
		}
	}
	payload, err := tree.Decode(kind, fields)
	if err != nil {
		return nil, false
	}
	rec.Payload = payload
	return rec, true
}

// Children returns the child ids of id in order.
func (s *Store) Children(id string) []string {
	v, ok := s.doc.Get(key(id, FieldChildren))
	if !ok {
		return nil
	}
	children, _ := v.([]string)
	return slices.Clone(children)
}

// SetField writes one field of id. Payload fields are checked against the
// node's kind; FieldLocation takes a tree.Location and FieldChildren a
// []string of existing ids.
func (s *Store) SetField(id, field string, value any) error {
	rec, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	switch field {
	case FieldKind:
		return fmt.Errorf("kind of %s is immutable", id)
	case FieldLocation:
		loc, ok := value.(tree.Location)
		if !ok {
			return fmt.Errorf("%w: %s cannot hold %T", tree.ErrFieldType, field, value)
		}
		s.doc.Set(key(id, field), loc)
		return nil
	case FieldChildren:
		children, ok := value.([]string)
		if !ok {
			return fmt.Errorf("%w: %s cannot hold %T", tree.ErrFieldType, field, value)
		}
		for _, child := range children {
			if _, ok := s.doc.Get(key(child, FieldKind)); !ok {
				return fmt.Errorf("%w: child %s", ErrNotFound, child)
			}
		}
		s.doc.Set(key(id, field), slices.Clone(children))
		return nil
	}

	if err := tree.SetField(rec.Payload, field, value); err != nil {
		return err
	}
	s.doc.Set(key(id, field), tree.Fields(rec.Payload)[field])
	return nil
}

// Subscribe calls fn with every batch of changes. The returned function
// unsubscribes.
func (s *Store) Subscribe(fn func([]Change)) func() {
	return s.doc.Observe(func(changes []crdt.Change) {
		out := make([]Change, 0, len(changes))
		for _, c := range changes {
			if c.Key == rootKey {
				out = append(out, Change{Field: rootKey, Remote: c.Remote})
				continue
			}
			rest, ok := strings.CutPrefix(c.Key, nodePrefix)
			if !ok {
				continue
			}
			id, field, _ := strings.Cut(rest, "/")
			out = append(out, Change{ID: id, Field: field, Remote: c.Remote})
		}
		if len(out) > 0 {
			fn(out)
		}
	})
}

// Root returns the id of the File node.
func (s *Store) Root() (string, bool) {
	v, ok := s.doc.Get(rootKey)
	if !ok {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}

// Len returns the number of stored nodes.
func (s *Store) Len() int {
	n := 0
	for _, k := range s.doc.Keys(nodePrefix) {
		if strings.HasSuffix(k, "/"+FieldKind) {
			n++
		}
	}
	return n
}

// Clear removes every node and the root pointer.
func (s *Store) Clear() {
	s.doc.Transact(s.clear)
}

func (s *Store) clear() {
	for _, k := range s.doc.Keys(nodePrefix) {
		s.doc.Delete(k)
	}
	s.doc.Delete(rootKey)
}

// Replace swaps the store's contents for the tree rooted at root in one
// transaction. Ids must already be assigned.
func (s *Store) Replace(root *tree.Node) error {
	var err error
	tree.Walk(root, func(n *tree.Node) bool {
		if n.ID == "" || strings.Contains(n.ID, "/") {
			err = fmt.Errorf("invalid node id %q", n.ID)
		}
		return err == nil
	})
	if err != nil {
		return err
	}

	s.doc.Transact(func() {
		s.clear()
		tree.Walk(root, func(n *tree.Node) bool {
			rec := &Record{ID: n.ID, Kind: n.Kind(), Location: n.Location, Payload: n.Payload}
			for _, child := range n.Children {
				rec.Children = append(rec.Children, child.ID)
			}
			s.write(rec)
			return true
		})
		s.doc.Set(rootKey, root.ID)
	})
	return nil
}

// Tree materializes the subtree rooted at id.
func (s *Store) Tree(id string) (*tree.Node, error) {
	rec, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	n := &tree.Node{ID: rec.ID, Location: rec.Location, Payload: rec.Payload}
	for _, childID := range rec.Children {
		child, err := s.Tree(childID)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// Snapshot materializes the whole tree, or returns nil when the store is
// empty.
func (s *Store) Snapshot() (*tree.Node, error) {
	id, ok := s.Root()
	if !ok {
		return nil, nil
	}
	return s.Tree(id)
}
