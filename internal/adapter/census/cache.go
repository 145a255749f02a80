package census

import (
	"context"
	"sync"

	"github.com/couchcryptid/boom-loudness-etl/internal/domain"
	"github.com/couchcryptid/boom-loudness-etl/internal/observability"
)

// CachedSource wraps a PopulationSource with an in-memory LRU cache. County
// populations are static for a given vintage, so entries never expire.
type CachedSource struct {
	inner   domain.PopulationSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a population source.
func NewCachedSource(inner domain.PopulationSource, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedSource) CountyPopulation(ctx context.Context, stateFIPS, countyFIPS string) (domain.PopulationEstimate, error) {
	key := stateFIPS + "|" + countyFIPS
	if est, ok := c.cache.get(key); ok {
		c.metrics.CensusCache.WithLabelValues("hit").Inc()
		return est, nil
	}
	c.metrics.CensusCache.WithLabelValues("miss").Inc()

	est, err := c.inner.CountyPopulation(ctx, stateFIPS, countyFIPS)
	if err != nil {
		return est, err
	}
	// Only cache non-empty results so transient "not found" responses can be retried.
	if est.Population > 0 {
		c.cache.put(key, est)
	}
	return est, nil
}

// lruCache is a simple thread-safe LRU cache for population estimates.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.PopulationEstimate
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.PopulationEstimate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.PopulationEstimate{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.PopulationEstimate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
