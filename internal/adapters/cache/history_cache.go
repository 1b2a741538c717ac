package cache

import (
	"fmt"

	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoHistoryCache memoizes history reads between sync runs. A run that
// writes new snapshots purges the whole cache rather than tracking keys.
type RistrettoHistoryCache struct {
	cache *ristretto.Cache
}

func NewHistoryCache(maxItems int64) (*RistrettoHistoryCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create history cache failed: %w", err)
	}
	return &RistrettoHistoryCache{cache: c}, nil
}

func (c *RistrettoHistoryCache) Get(key string) ([]domain.RateSnapshot, bool) {
	if v, ok := c.cache.Get(key); ok {
		snapshots, ok := v.([]domain.RateSnapshot)
		return snapshots, ok
	}
	return nil, false
}

func (c *RistrettoHistoryCache) Set(key string, snapshots []domain.RateSnapshot) {
	c.cache.Set(key, snapshots, 1)
}

func (c *RistrettoHistoryCache) Purge() { c.cache.Clear() }

func (c *RistrettoHistoryCache) Close() { c.cache.Close() }
