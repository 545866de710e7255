package storage

import (
	"fmt"
	"sync"
)

// MemoryDeltaStore keeps per-key running sums in memory. It enforces the
// per-key ordering contract within the current block: a delta carrying
// an ordinal lower than the last one applied to the same key since
// BeginBlock is rejected. Sums survive block boundaries, ordinals do
// not.
type MemoryDeltaStore struct {
	mu          sync.Mutex
	sums        map[string]int64
	lastOrdinal map[string]uint64
}

func NewMemoryDeltaStore() *MemoryDeltaStore {
	return &MemoryDeltaStore{
		sums:        make(map[string]int64),
		lastOrdinal: make(map[string]uint64),
	}
}

// BeginBlock resets the per-key ordinal window. Log indices restart from
// zero in every block, so a lower ordinal after a block boundary is
// ordinary, not a regression.
func (s *MemoryDeltaStore) BeginBlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastOrdinal = make(map[string]uint64)
}

func (s *MemoryDeltaStore) Add(ordinal uint64, key string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, seen := s.lastOrdinal[key]; seen && ordinal < last {
		return fmt.Errorf("ordinal %d for key %s is behind last applied ordinal %d", ordinal, key, last)
	}
	s.lastOrdinal[key] = ordinal
	s.sums[key] += delta
	return nil
}

// Get returns the algebraic sum of all deltas applied to a key.
func (s *MemoryDeltaStore) Get(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sums[key]
}

// Keys returns every key that has received at least one delta.
func (s *MemoryDeltaStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.sums))
	for key := range s.sums {
		keys = append(keys, key)
	}
	return keys
}

func (s *MemoryDeltaStore) Close() error {
	return nil
}
