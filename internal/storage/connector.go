package storage

import (
	config "github.com/thirdweb-dev/token-streams/configs"
)

// DeltaStore is an additive key-value store: the only mutation primitive
// is adding a delta to a key's current value. Applications to independent
// keys are unordered; applications to the same key must arrive in
// increasing ordinal order within a block. Ordinals are log indices and
// restart from zero at every block, so BeginBlock marks the boundary
// where the ordering window resets.
type DeltaStore interface {
	BeginBlock()
	Add(ordinal uint64, key string, delta int64) error
	Close() error
}

func NewDeltaStore(cfg *config.StoreConfig) (DeltaStore, error) {
	if cfg != nil && cfg.Redis != nil && cfg.Redis.Addr != "" {
		return NewRedisDeltaStore(cfg.Redis)
	}
	return NewMemoryDeltaStore(), nil
}
