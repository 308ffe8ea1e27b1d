// Package crdt implements a last-writer-wins map that replicas can merge in
// any order and converge.
//
// Every write carries a Lamport stamp (counter, replica). A write replaces
// the current entry only when its stamp is greater, so concurrent writes to
// the same key resolve identically on every replica. Deletes leave
// tombstones so they win against older writes that arrive later.
package crdt

import (
	"slices"
	"strings"
	"sync"
)

// Stamp orders writes across replicas.
type Stamp struct {
	Counter uint64
	Replica string
}

// After reports whether s wins over o.
func (s Stamp) After(o Stamp) bool {
	if s.Counter != o.Counter {
		return s.Counter > o.Counter
	}
	return s.Replica > o.Replica
}

// Op is one replicated write.
type Op struct {
	Key     string
	Value   any
	Deleted bool
	Stamp   Stamp
}

// Change describes an observed mutation.
type Change struct {
	Key     string
	Value   any
	Deleted bool
	// Remote is set for changes that arrived through Apply.
	Remote bool
}

// Map is a replica of an LWW map. It is safe for concurrent use.
type Map struct {
	mu        sync.Mutex
	replica   string
	clock     uint64
	entries   map[string]Op
	observers map[int]func([]Change)
	nextObs   int
	depth     int
	pending   []Change
}

// New returns an empty replica. Replica ids must differ between replicas
// that merge with each other.
func New(replica string) *Map {
	return &Map{
		replica:   replica,
		entries:   make(map[string]Op),
		observers: make(map[int]func([]Change)),
	}
}

// Replica returns the replica id.
func (m *Map) Replica() string {
	return m.replica
}

// Get returns the live value at key.
func (m *Map) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	op, ok := m.entries[key]
	if !ok || op.Deleted {
		return nil, false
	}
	return op.Value, true
}

// Set writes value at key.
func (m *Map) Set(key string, value any) {
	m.local(key, value, false)
}

// Delete removes key.
func (m *Map) Delete(key string) {
	m.mu.Lock()
	op, ok := m.entries[key]
	m.mu.Unlock()
	if !ok || op.Deleted {
		return
	}
	m.local(key, nil, true)
}

func (m *Map) local(key string, value any, deleted bool) {
	m.mu.Lock()
	m.clock++
	m.entries[key] = Op{Key: key, Value: value, Deleted: deleted, Stamp: Stamp{Counter: m.clock, Replica: m.replica}}
	m.mu.Unlock()
	m.emit([]Change{{Key: key, Value: value, Deleted: deleted}})
}

// Keys returns the live keys starting with prefix, sorted.
func (m *Map) Keys(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k, op := range m.entries {
		if !op.Deleted && strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of live keys.
func (m *Map) Len() int {
	return len(m.Keys(""))
}

// Transact runs fn and delivers every change it makes to observers as a
// single batch. Transactions nest.
func (m *Map) Transact(fn func()) {
	m.mu.Lock()
	m.depth++
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.depth--
		var batch []Change
		if m.depth == 0 {
			batch, m.pending = m.pending, nil
		}
		m.mu.Unlock()
		if len(batch) > 0 {
			m.notify(batch)
		}
	}()
	fn()
}

// Observe registers fn for change batches and returns a function that
// removes it.
func (m *Map) Observe(fn func([]Change)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// Ops returns every entry, tombstones included, for shipping to another
// replica.
func (m *Map) Ops() []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	ops := make([]Op, 0, len(m.entries))
	for _, op := range m.entries {
		ops = append(ops, op)
	}
	slices.SortFunc(ops, func(a, b Op) int { return strings.Compare(a.Key, b.Key) })
	return ops
}

// Apply merges ops from another replica. Only ops that win against the
// local entry take effect and are observed.
func (m *Map) Apply(ops []Op) {
	var changes []Change
	m.mu.Lock()
	for _, op := range ops {
		m.clock = max(m.clock, op.Stamp.Counter)
		cur, ok := m.entries[op.Key]
		if ok && !op.Stamp.After(cur.Stamp) {
			continue
		}
		m.entries[op.Key] = op
		if !ok && op.Deleted {
			continue
		}
		changes = append(changes, Change{Key: op.Key, Value: op.Value, Deleted: op.Deleted, Remote: true})
	}
	m.mu.Unlock()
	m.emit(changes)
}

// Merge applies every op of other.
func (m *Map) Merge(other *Map) {
	m.Apply(other.Ops())
}

func (m *Map) emit(changes []Change) {
	if len(changes) == 0 {
		return
	}
	m.mu.Lock()
	if m.depth > 0 {
		m.pending = append(m.pending, changes...)
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.notify(changes)
}

func (m *Map) notify(changes []Change) {
	m.mu.Lock()
	ids := make([]int, 0, len(m.observers))
	for id := range m.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func([]Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.observers[id])
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(changes)
	}
}
