package loader

import (
	"sync"

	"bennypowers.dev/jsxtree/internal/log"
	"bennypowers.dev/jsxtree/internal/store"
	"bennypowers.dev/jsxtree/internal/tree"
)

// Session keeps one source file loaded into a store. Rebuilds reuse the ids
// of the tree currently in the store.
type Session struct {
	store    *store.Store
	filePath string

	mu      sync.RWMutex // guards the store across a rebuild
	source  string
	err     error
	builds  int
	pending *string
	running bool
	idle    chan struct{}

	beforeRebuild func() // test hook
}

// NewSession returns a session that loads into s.
func NewSession(s *store.Store, filePath string) *Session {
	return &Session{store: s, filePath: filePath}
}

// Store returns the session's store.
func (s *Session) Store() *store.Store {
	return s.store
}

// Load rebuilds synchronously from source. On a syntax error the store
// keeps the previous tree.
func (s *Session) Load(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuild(source)
}

func (s *Session) rebuild(source string) error {
	previous, err := s.store.Snapshot()
	if err != nil {
		log.Warn("Discarding unreadable tree for %s: %v", s.filePath, err)
		previous = nil
	}

	root, err := Build(source, WithFilePath(s.filePath), WithPrevious(previous))
	s.builds++
	if err != nil {
		s.err = err
		return err
	}
	if err := s.store.Replace(root); err != nil {
		s.err = err
		return err
	}
	s.source = source
	s.err = nil
	log.Debug("Rebuilt %s (build %d)", s.filePath, s.builds)
	return nil
}

// Schedule queues a rebuild from source. Calls that arrive while a rebuild
// is queued or running collapse into one rebuild of the latest source.
func (s *Session) Schedule(source string) {
	s.mu.Lock()
	s.pending = &source
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.idle = make(chan struct{})
	s.mu.Unlock()

	go s.drain()
}

func (s *Session) drain() {
	for {
		if s.beforeRebuild != nil {
			s.beforeRebuild()
		}
		s.mu.Lock()
		next := s.pending
		s.pending = nil
		if next == nil {
			s.running = false
			close(s.idle)
			s.mu.Unlock()
			return
		}
		if err := s.rebuild(*next); err != nil {
			log.Debug("Rebuild of %s failed: %v", s.filePath, err)
		}
		s.mu.Unlock()
	}
}

// Flush waits for queued rebuilds and returns the error of the latest one.
func (s *Session) Flush() error {
	s.mu.RLock()
	idle, running := s.idle, s.running
	s.mu.RUnlock()
	if running {
		<-idle
	}
	return s.Err()
}

// Err returns the error of the latest rebuild.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Source returns the text of the latest successful rebuild.
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Builds returns the number of rebuilds attempted.
func (s *Session) Builds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builds
}

// Snapshot materializes the current tree.
func (s *Session) Snapshot() (*tree.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Snapshot()
}

// Edit runs fn with exclusive access to the store, then stores the
// stringified result as the session source.
func (s *Session) Edit(fn func(*store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.store); err != nil {
		return err
	}
	root, err := s.store.Snapshot()
	if err != nil {
		return err
	}
	if root != nil {
		s.source = Stringify(root)
	}
	return nil
}
