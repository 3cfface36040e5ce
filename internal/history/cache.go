package history

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"

	"portfolio-engine/internal/model"
)

// Store is the persistence capability the cache needs. Implemented by
// repository.HistoryCacheRepository.
type Store interface {
	GetSeries(scopeType, scopeID string) ([]model.HistoryPoint, error)
	ReplaceSeries(scopeType, scopeID string, points []model.HistoryPoint) error
}

// Rebuilder produces a fresh series for a scope from live data.
type Rebuilder func(ctx context.Context, scope Scope) ([]model.HistoryPoint, error)

// Cache serves reconstructed series under the two-phase read protocol.
//
// Phase one (useCache true) answers from the stored series alone, empty
// included; it never reaches the provider. Phase two (useCache false)
// forces a live rebuild; concurrent forced rebuilds of the same scope are
// coalesced into a single flight, and a failed rebuild falls back to the
// previous stored series rather than erasing it.
type Cache struct {
	store Store
	group singleflight.Group
}

// NewCache creates a Cache over the given store.
func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// Get returns the series for a scope.
func (c *Cache) Get(ctx context.Context, scope Scope, useCache bool, rebuild Rebuilder) ([]model.HistoryPoint, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	if useCache {
		cached, err := c.store.GetSeries(string(scope.Type), scope.ID())
		if err != nil {
			return nil, err
		}
		if cached == nil {
			cached = []model.HistoryPoint{}
		}
		return cached, nil
	}

	points, err, _ := c.group.Do(scope.Key(), func() (any, error) {
		return c.rebuildAndStore(ctx, scope, rebuild)
	})
	if err != nil {
		// A stale series beats an empty chart; surface the error only
		// when there is nothing to fall back to.
		cached, cacheErr := c.store.GetSeries(string(scope.Type), scope.ID())
		if cacheErr == nil && len(cached) > 0 {
			log.Printf("history rebuild failed for %s, serving cached series: %v", scope.Key(), err)
			return cached, nil
		}
		return nil, err
	}

	return points.([]model.HistoryPoint), nil
}

// Invalidate drops the stored series for a scope. Called when the scope's
// positions change.
func (c *Cache) Invalidate(scope Scope) error {
	type deleter interface {
		DeleteSeries(scopeType, scopeID string) error
	}
	if d, ok := c.store.(deleter); ok {
		return d.DeleteSeries(string(scope.Type), scope.ID())
	}
	return c.store.ReplaceSeries(string(scope.Type), scope.ID(), nil)
}

func (c *Cache) rebuildAndStore(ctx context.Context, scope Scope, rebuild Rebuilder) ([]model.HistoryPoint, error) {
	points, err := rebuild(ctx, scope)
	if err != nil {
		return nil, err
	}

	// Overwrite unconditionally so a scope that emptied out does not keep
	// serving its old curve on the fast path.
	if err := c.store.ReplaceSeries(string(scope.Type), scope.ID(), points); err != nil {
		// The series is still good; a write failure only costs the
		// next reader a rebuild.
		log.Printf("failed to store history series for %s: %v", scope.Key(), err)
	}

	return points, nil
}
