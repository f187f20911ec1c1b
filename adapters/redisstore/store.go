// Package redisstore provides the Redis implementation of the TreeStore
// interface. Every tree node is one Redis key named by its full path;
// children are discovered by prefix scan, so the hierarchy is implicit in
// the key names.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-redis/redis/v8"

	"myregistry/interfaces"
)

const startPingTimeout = 5 * time.Second

var errNotStarted = errors.New("redisstore: not started")

// Store is a TreeStore backed by Redis. Keys never expire; deregistration is
// the only way an instance node disappears.
type Store struct {
	addr   string
	logger log.Logger

	mu     sync.RWMutex
	client redis.UniversalClient
}

// New creates a store for the Redis at addr, a redis:// URL. No connection
// is opened until Start.
func New(addr string, logger log.Logger) *Store {
	return &Store{
		addr:   addr,
		logger: log.WithPrefix(logger, "component", "redisstore"),
	}
}

var _ interfaces.TreeStore = (*Store)(nil)

// Start connects and verifies the server is reachable.
func (s *Store) Start() error {
	client, err := newRedisUniversalClient(s.addr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}

	s.mu.Lock()
	s.client = client
	s.mu.Unlock()

	level.Info(s.logger).Log("msg", "connected to redis")
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
		// SetNX keeps data already stored at the parent.
		if err := client.SetNX(ctx, current, "", 0).Err(); err != nil {
			return err
		}
	}
	return client.Set(ctx, path, data, 0).Err()
}

func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	client, err := s.connection()
	if err != nil {
		return nil, err
	}

	data, err := client.Get(ctx, path).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, interfaces.ErrNoNode
	}
	if err != nil {
		return nil, err
	}
	return data, nil
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
	keys, err := client.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, key := range keys {
		rest := strings.TrimPrefix(key, prefix)
		name, _, _ := strings.Cut(rest, "/")
		if name != "" {
			seen[name] = true
		}
	}

	if len(seen) == 0 && path != "/" {
		n, err := client.Exists(ctx, path).Result()
		if err != nil {
			return nil, err
		}
		if n == 0 {
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

	n, err := client.Del(ctx, path).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return interfaces.ErrNoNode
	}
	return nil
}

func (s *Store) connection() (redis.UniversalClient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		return nil, errNotStarted
	}
	return s.client, nil
}

// newRedisUniversalClient creates and configures an instance of the redis
// universal client from a redis:// URL.
func newRedisUniversalClient(redisAddr string) (redis.UniversalClient, error) {
	options, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	return redis.NewUniversalClient(universalOptions(options)), nil
}

func universalOptions(options *redis.Options) *redis.UniversalOptions {
	return &redis.UniversalOptions{
		Addrs:              []string{options.Addr},
		DB:                 options.DB,
		Username:           options.Username,
		Password:           options.Password,
		ReadOnly:           false,
		MasterName:         "",
		WriteTimeout:       options.WriteTimeout,
		ReadTimeout:        options.ReadTimeout,
		DialTimeout:        options.DialTimeout,
		MaxRetries:         options.MaxRetries,
		PoolSize:           options.PoolSize,
		PoolTimeout:        options.PoolTimeout,
		MinIdleConns:       options.MinIdleConns,
		IdleTimeout:        options.IdleTimeout,
		IdleCheckFrequency: options.IdleCheckFrequency,
	}
}
