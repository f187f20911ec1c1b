package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"myregistry/interfaces"
)

const defaultTypeRefreshInterval = 30 * time.Second

var errIndexClosed = errors.New("service type index is closed")

// typeIndex is a secondary view of the service types under the base path,
// rebuilt from the store on an interval and bumped eagerly by local
// registrations. Reads never touch the store, so the view may lag it by up
// to one refresh interval.
type typeIndex struct {
	store    interfaces.TreeStore
	basePath string
	interval time.Duration
	logger   log.Logger

	mu      sync.RWMutex
	types   map[string]struct{}
	started bool
	closed  bool

	stop chan struct{}
	done chan struct{}
}

func newTypeIndex(store interfaces.TreeStore, basePath string, interval time.Duration, logger log.Logger) *typeIndex {
	if interval <= 0 {
		interval = defaultTypeRefreshInterval
	}
	return &typeIndex{
		store:    store,
		basePath: basePath,
		interval: interval,
		logger:   log.WithPrefix(logger, "component", "typeIndex"),
		types:    make(map[string]struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start primes the index and launches the refresh loop. The initial refresh
// is best effort: an unreachable store logs a warning and leaves the index
// empty until a later refresh succeeds.
func (ix *typeIndex) Start() error {
	ix.mu.Lock()
	if ix.started || ix.closed {
		ix.mu.Unlock()
		return nil
	}
	ix.started = true
	ix.mu.Unlock()

	ix.refresh()
	go ix.refreshLoop()
	return nil
}

func (ix *typeIndex) refreshLoop() {
	defer close(ix.done)

	ticker := time.NewTicker(ix.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ix.stop:
			return
		case <-ticker.C:
			ix.refresh()
		}
	}
}

func (ix *typeIndex) refresh() {
	names, err := ix.store.ListChildren(context.Background(), ix.basePath)
	if err != nil && !errors.Is(err, interfaces.ErrNoNode) {
		level.Warn(ix.logger).Log("msg", "service type refresh failed", "err", err)
		return
	}

	next := make(map[string]struct{}, len(names))
	for _, name := range names {
		next[name] = struct{}{}
	}

	ix.mu.Lock()
	if !ix.closed {
		ix.types = next
	}
	ix.mu.Unlock()
}

// note records a service type a local registration just wrote, so the index
// reflects it ahead of the next refresh.
func (ix *typeIndex) note(serviceType string) {
	ix.mu.Lock()
	if !ix.closed {
		ix.types[serviceType] = struct{}{}
	}
	ix.mu.Unlock()
}

// ServiceTypes returns the indexed service types in lexical order.
func (ix *typeIndex) ServiceTypes() ([]string, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.closed {
		return nil, errIndexClosed
	}
	out := make([]string, 0, len(ix.types))
	for name := range ix.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Close stops the refresh loop and waits for it to exit. Safe to call more
// than once, and before Start.
func (ix *typeIndex) Close() error {
	ix.mu.Lock()
	if ix.closed {
		ix.mu.Unlock()
		return nil
	}
	ix.closed = true
	started := ix.started
	ix.mu.Unlock()

	close(ix.stop)
	if started {
		<-ix.done
	}
	return nil
}
