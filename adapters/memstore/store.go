// Package memstore provides an in-process TreeStore for tests and local
// development.
package memstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"myregistry/interfaces"
)

var (
	errNotStarted = errors.New("memstore: not started")
	errNotEmpty   = errors.New("memstore: node has children")
	errBadPath    = errors.New("memstore: invalid path")
)

// Store is a TreeStore backed by process memory. The root "/" always exists
// and cannot hold data. Goroutine-safe.
type Store struct {
	mu       sync.RWMutex
	started  bool
	data     map[string][]byte          // node path -> payload
	children map[string]map[string]bool // node path -> set of child names
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data:     make(map[string][]byte),
		children: make(map[string]map[string]bool),
	}
}

var _ interfaces.TreeStore = (*Store)(nil)

func (s *Store) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}

func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	if err := checkPath(path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return errNotStarted
	}

	s.materializeLocked(path)
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[path] = cp
	return nil
}

func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, errNotStarted
	}

	data, ok := s.data[path]
	if !ok {
		return nil, interfaces.ErrNoNode
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *Store) ListChildren(ctx context.Context, path string) ([]string, error) {
	if path != "/" {
		if err := checkPath(path); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, errNotStarted
	}

	if path != "/" {
		if _, ok := s.data[path]; !ok {
			return nil, interfaces.ErrNoNode
		}
	}
	names := make([]string, 0, len(s.children[path]))
	for name := range s.children[path] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	if err := checkPath(path); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return errNotStarted
	}

	if _, ok := s.data[path]; !ok {
		return interfaces.ErrNoNode
	}
	if len(s.children[path]) > 0 {
		return errNotEmpty
	}

	delete(s.data, path)
	delete(s.children, path)
	parent, name := splitPath(path)
	if set := s.children[parent]; set != nil {
		delete(set, name)
	}
	return nil
}

// materializeLocked creates the node's ancestors as empty nodes and links
// every segment into its parent's child set.
func (s *Store) materializeLocked(path string) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	current := ""
	for i, segment := range segments {
		parent := current
		if parent == "" {
			parent = "/"
		}
		if s.children[parent] == nil {
			s.children[parent] = make(map[string]bool)
		}
		s.children[parent][segment] = true

		current += "/" + segment
		if i < len(segments)-1 {
			if _, ok := s.data[current]; !ok {
				s.data[current] = nil
			}
		}
	}
}

func splitPath(path string) (parent, name string) {
	idx := strings.LastIndex(path, "/")
	parent = path[:idx]
	if parent == "" {
		parent = "/"
	}
	return parent, path[idx+1:]
}

func checkPath(path string) error {
	if !strings.HasPrefix(path, "/") || path == "/" {
		return errBadPath
	}
	if strings.HasSuffix(path, "/") || strings.Contains(path, "//") {
		return errBadPath
	}
	return nil
}
