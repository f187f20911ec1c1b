package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myregistry/domain"
)

func TestSelector_RoundRobin(t *testing.T) {
	s := &Selector[string]{}
	instances := []domain.Instance[string]{
		{InstanceID: "a"},
		{InstanceID: "b"},
		{InstanceID: "c"},
	}

	var got []string
	for i := 0; i < 6; i++ {
		inst, err := s.Pick(instances)
		require.NoError(t, err)
		got = append(got, inst.InstanceID)
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, got)
}

func TestSelector_EmptyIsNotFound(t *testing.T) {
	s := &Selector[string]{}
	_, err := s.Pick(nil)
	require.Error(t, err)
	assert.True(t, IsEntityNotFoundError(err))
}

func TestSelector_ConcurrentPicksCoverAllInstances(t *testing.T) {
	s := &Selector[int]{}
	instances := []domain.Instance[int]{{InstanceID: "a"}, {InstanceID: "b"}}

	const picks = 100
	counts := make(map[string]int)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < picks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst, err := s.Pick(instances)
			if err != nil {
				return
			}
			mu.Lock()
			counts[inst.InstanceID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, picks/2, counts["a"])
	assert.Equal(t, picks/2, counts["b"])
}
