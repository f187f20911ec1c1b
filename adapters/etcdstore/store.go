// Package etcdstore provides the etcd implementation of the TreeStore
// interface, emulating a node tree over etcd's flat keyspace. Every tree
// node is one key named by its full path; parent nodes are materialized as
// empty keys so that existence checks and child listings behave like a
// hierarchy.
package etcdstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	clientv3 "go.etcd.io/etcd/client/v3"

	"myregistry/interfaces"
)

const defaultDialTimeout = 5 * time.Second

var errNotStarted = errors.New("etcdstore: not started")

// Config holds etcd connection settings.
type Config struct {
	Endpoints   []string
	DialTimeout time.Duration
}

// Store is a TreeStore backed by etcd v3.
type Store struct {
	endpoints   []string
	dialTimeout time.Duration
	logger      log.Logger

	mu     sync.RWMutex
	client *clientv3.Client
}

// New creates a store for the given endpoints. No connection is opened until
// Start.
func New(config Config, logger log.Logger) *Store {
	timeout := config.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return &Store{
		endpoints:   config.Endpoints,
		dialTimeout: timeout,
		logger:      log.WithPrefix(logger, "component", "etcdstore"),
	}
}

var _ interfaces.TreeStore = (*Store)(nil)

func (s *Store) Start() error {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   s.endpoints,
		DialTimeout: s.dialTimeout,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.client = client
	s.mu.Unlock()

	level.Info(s.logger).Log("msg", "etcd client ready", "endpoints", strings.Join(s.endpoints, ","))
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func (s *Store) Write(ctx context.Context, path string, data []byte) error {
	client, err := s.connection()
	if err != nil {
		return err
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	current := ""
	for _, segment := range segments[:len(segments)-1] {
		current += "/" + segment
		// Create the parent key only when absent so data already stored
		// there stays untouched.
		_, err := client.Txn(ctx).
			If(clientv3.Compare(clientv3.CreateRevision(current), "=", 0)).
			Then(clientv3.OpPut(current, "")).
			Commit()
		if err != nil {
			return err
		}
	}

	_, err = client.Put(ctx, path, string(data))
	return err
}

func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	client, err := s.connection()
	if err != nil {
		return nil, err
	}

	resp, err := client.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.Count == 0 {
		return nil, interfaces.ErrNoNode
	}
	return resp.Kvs[0].Value, nil
}

func (s *Store) ListChildren(ctx context.Context, path string) ([]string, error) {
	client, err := s.connection()
	if err != nil {
		return nil, err
	}

	prefix := path + "/"
	if path == "/" {
		prefix = "/"
	}
	resp, err := client.Get(ctx, prefix, clientv3.WithPrefix(), clientv3.WithKeysOnly())
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, kv := range resp.Kvs {
		rest := strings.TrimPrefix(string(kv.Key), prefix)
		name, _, _ := strings.Cut(rest, "/")
		if name != "" {
			seen[name] = true
		}
	}

	// No keys under the prefix: distinguish a leaf node from a missing one.
	if len(seen) == 0 && path != "/" {
		node, err := client.Get(ctx, path, clientv3.WithCountOnly())
		if err != nil {
			return nil, err
		}
		if node.Count == 0 {
			return nil, interfaces.ErrNoNode
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	client, err := s.connection()
	if err != nil {
		return err
	}

	resp, err := client.Delete(ctx, path)
	if err != nil {
		return err
	}
	if resp.Deleted == 0 {
		return interfaces.ErrNoNode
	}
	return nil
}

func (s *Store) connection() (*clientv3.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		return nil, errNotStarted
	}
	return s.client, nil
}
