// Package zkstore provides the ZooKeeper implementation of the TreeStore
// interface. The store maps one tree node to one znode; instance nodes are
// persistent, so registrations outlive the session that wrote them.
package zkstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-zookeeper/zk"

	"myregistry/interfaces"
)

const defaultSessionTimeout = 10 * time.Second

var errNotStarted = errors.New("zkstore: not started")

// Config holds ZooKeeper connection settings.
type Config struct {
	// Servers lists ensemble members as host:port.
	Servers []string
	// SessionTimeout bounds how long the session survives a broken
	// connection. Zero selects the default.
	SessionTimeout time.Duration
}

// Store is a TreeStore backed by a ZooKeeper ensemble. Request contexts are
// accepted for interface compatibility; the client manages its own deadlines
// through the session timeout.
type Store struct {
	servers        []string
	sessionTimeout time.Duration
	logger         log.Logger

	mu   sync.RWMutex
	conn *zk.Conn
}

// New creates a store for the given ensemble. No connection is opened until
// Start.
func New(config Config, logger log.Logger) *Store {
	timeout := config.SessionTimeout
	if timeout <= 0 {
		timeout = defaultSessionTimeout
	}
	return &Store{
		servers:        config.Servers,
		sessionTimeout: timeout,
		logger:         log.WithPrefix(logger, "component", "zkstore"),
	}
}

var _ interfaces.TreeStore = (*Store)(nil)

// Start dials the ensemble. Session establishment continues in the
// background; operations issued before the session is live block inside the
// client until it is.
func (s *Store) Start() error {
	conn, events, err := zk.Connect(s.servers, s.sessionTimeout, zk.WithLogInfo(false))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	go s.logSessionEvents(events)
	return nil
}

// Close tears down the session. Safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	return nil
}

func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	conn, err := s.connection()
	if err != nil {
		return err
	}

	if err := ensureParents(conn, path); err != nil {
		return err
	}
	_, err = conn.Create(path, data, 0, zk.WorldACL(zk.PermAll))
	if errors.Is(err, zk.ErrNodeExists) {
		_, err = conn.Set(path, data, -1)
	}
	return translateErr(err)
}

func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	conn, err := s.connection()
	if err != nil {
		return nil, err
	}

	data, _, err := conn.Get(path)
	if err != nil {
		return nil, translateErr(err)
	}
	return data, nil
}

func (s *Store) ListChildren(ctx context.Context, path string) ([]string, error) {
	conn, err := s.connection()
	if err != nil {
		return nil, err
	}

	children, _, err := conn.Children(path)
	if err != nil {
		return nil, translateErr(err)
	}
	sort.Strings(children)
	return children, nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	conn, err := s.connection()
	if err != nil {
		return err
	}
	return translateErr(conn.Delete(path, -1))
}

func (s *Store) connection() (*zk.Conn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.conn == nil {
		return nil, errNotStarted
	}
	return s.conn, nil
}

func (s *Store) logSessionEvents(events <-chan zk.Event) {
	for event := range events {
		if event.Type == zk.EventSession {
			level.Debug(s.logger).Log("msg", "session state changed", "state", event.State.String())
		}
	}
}

// ensureParents creates the missing ancestors of path as empty persistent
// znodes. Racing creators are fine: ErrNodeExists just means someone else
// won.
func ensureParents(conn *zk.Conn, path string) error {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	current := ""
	for _, segment := range segments[:len(segments)-1] {
		current += "/" + segment
		_, err := conn.Create(current, nil, 0, zk.WorldACL(zk.PermAll))
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return translateErr(err)
		}
	}
	return nil
}

// translateErr maps the client's not-found error to the TreeStore sentinel
// and passes everything else through.
func translateErr(err error) error {
	if errors.Is(err, zk.ErrNoNode) {
		return interfaces.ErrNoNode
	}
	return err
}
