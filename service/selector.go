package service

import (
	"sync/atomic"

	"myregistry/domain"
)

// Selector hands out instances of a service type in round-robin order.
// The cursor is a single atomic counter, so a Selector may be shared by any
// number of goroutines.
type Selector[P any] struct {
	next atomic.Uint64
}

// Pick returns the next instance in rotation. An empty candidate list is an
// entity_not_found error.
func (s *Selector[P]) Pick(instances []domain.Instance[P]) (domain.Instance[P], error) {
	if len(instances) == 0 {
		return domain.Instance[P]{}, NewEntityNotFoundError("no instances to pick from", nil)
	}
	idx := (s.next.Add(1) - 1) % uint64(len(instances))
	return instances[idx], nil
}
