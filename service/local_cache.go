package service

import (
	"sort"
	"sync"

	"myregistry/domain"
)

// instanceCache remembers what this process has registered, keyed by
// instance id. It exists for local introspection only; the store remains
// the source of truth, so a remote deletion leaves a stale entry here until
// the instance re-registers or the registry stops.
type instanceCache[P any] struct {
	mu      sync.Mutex
	entries map[string]domain.Instance[P]
}

func newInstanceCache[P any]() *instanceCache[P] {
	return &instanceCache[P]{entries: make(map[string]domain.Instance[P])}
}

func (c *instanceCache[P]) put(inst domain.Instance[P]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[inst.InstanceID] = inst
}

func (c *instanceCache[P]) remove(instanceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, instanceID)
}

func (c *instanceCache[P]) snapshot() []domain.Instance[P] {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Instance[P], 0, len(c.entries))
	for _, inst := range c.entries {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstanceID < out[j].InstanceID })
	return out
}

func (c *instanceCache[P]) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]domain.Instance[P])
}
