// Package identity keeps node ids stable across re-parses.
//
// Ids are resolved in two passes kept apart from tree construction:
// NewReuser records the (kind, path) -> id table of the previous tree, and
// Assign walks a freshly built tree and resolves each node against it.
package identity

import (
	"fmt"
	"strconv"

	"bennypowers.dev/jsxtree/internal/tree"
	"bennypowers.dev/jsxtree/internal/ulid"
)

const rootPath = "/"

// Key identifies a structural position.
type Key struct {
	Kind tree.Kind
	Path string
}

func (k Key) String() string {
	return k.Kind.String() + "@" + k.Path
}

// Reuser resolves keys to ids, reusing those of a previous tree.
type Reuser struct {
	ids    map[Key]string
	mint   func() string
	reused int
	minted int
}

// Option configures a Reuser.
type Option func(*Reuser)

// WithGenerator replaces the id generator used on a miss.
func WithGenerator(fn func() string) Option {
	return func(r *Reuser) {
		r.mint = fn
	}
}

// NewReuser records the ids of previous. A nil previous tree makes every
// resolution mint a fresh id.
func NewReuser(previous *tree.Node, opts ...Option) *Reuser {
	r := &Reuser{
		ids:  make(map[Key]string),
		mint: ulid.GenerateID,
	}
	for _, opt := range opts {
		opt(r)
	}
	walk(previous, func(n *tree.Node, key Key) {
		if n.ID != "" {
			r.ids[key] = n.ID
		}
	})
	return r
}

// Len returns the number of recorded positions.
func (r *Reuser) Len() int {
	return len(r.ids)
}

// Resolve returns the previous id at key, or a fresh one.
func (r *Reuser) Resolve(kind tree.Kind, path string) string {
	if id, ok := r.ids[Key{Kind: kind, Path: path}]; ok {
		r.reused++
		return id
	}
	r.minted++
	return r.mint()
}

// Stats returns how many resolutions were reused and minted.
func (r *Reuser) Stats() (reused, minted int) {
	return r.reused, r.minted
}

// Assign sets the id of every node under root.
func Assign(root *tree.Node, r *Reuser) {
	walk(root, func(n *tree.Node, key Key) {
		n.ID = r.Resolve(key.Kind, key.Path)
	})
}

// Keys returns the structural key of every node under root, in pre-order.
func Keys(root *tree.Node) []Key {
	var keys []Key
	walk(root, func(_ *tree.Node, key Key) {
		keys = append(keys, key)
	})
	return keys
}

// walk visits nodes in pre-order with their structural key. Components are
// keyed by name; a repeated name gets an occurrence suffix. Every other node
// is keyed by its child indices below the nearest component.
func walk(root *tree.Node, fn func(*tree.Node, Key)) {
	if root == nil {
		return
	}
	fn(root, Key{Kind: root.Kind(), Path: rootPath})

	seen := make(map[string]int)
	for i, child := range root.Children {
		path := rootPath + strconv.Itoa(i)
		if c, ok := child.Payload.(*tree.Component); ok {
			path = "component:" + c.Name
			if n := seen[c.Name]; n > 0 {
				path += fmt.Sprintf("#%d", n)
			}
			seen[c.Name]++
		}
		walkPath(child, path, fn)
	}
}

func walkPath(n *tree.Node, path string, fn func(*tree.Node, Key)) {
	fn(n, Key{Kind: n.Kind(), Path: path})
	for i, child := range n.Children {
		walkPath(child, path+"/"+strconv.Itoa(i), fn)
	}
}
