package answercache

import (
	"sync"
	"sync/atomic"

	"github.com/haukened/rr-query/internal/dns/common/clock"
	"github.com/haukened/rr-query/internal/dns/common/log"
	"github.com/haukened/rr-query/internal/dns/domain"
	"github.com/haukened/rr-query/internal/dns/services/lookup"
)

// DefaultBloomCapacity sizes the first filter when the store is empty.
const DefaultBloomCapacity = 1024

// Options configures a Repository.
type Options struct {
	Store   Store
	Cache   ResponseCache
	Factory BloomFactory
	// FPRate is the target false-positive rate used whenever the filter is (re)built.
	FPRate float64
	Clock  clock.Clock
	Logger log.Logger
}

// repository implements Repository by composing a ResponseCache, a Bloom
// filter (via factory) and a Store. Reads go cache → bloom → store; writes
// go through to every tier.
type repository struct {
	mu       sync.RWMutex
	store    Store
	cache    ResponseCache
	bloom    BloomFilter
	factory  BloomFactory
	fpRate   float64
	capacity uint64 // keys the current filter was sized for
	inserts  uint64 // keys added to the current filter
	clock    clock.Clock
	logger   log.Logger

	hits, misses, bloomRejects, expired, rebuilds atomic.Uint64
}

// NewRepository constructs a Repository and warms its Bloom filter from the
// keys already in the store. A nil Store selects NopStore.
func NewRepository(opts Options) (Repository, error) {
	if opts.Store == nil {
		opts.Store = NopStore{}
	}
	if opts.Clock == nil {
		opts.Clock = &clock.RealClock{}
	}
	r := &repository{
		store:   opts.Store,
		cache:   opts.Cache,
		factory: opts.Factory,
		fpRate:  opts.FPRate,
		clock:   opts.Clock,
		logger:  log.WithComponent(opts.Logger, "answercache"),
	}
	if err := r.rebuildBloom(); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns a live response for key. Expired entries are evicted from
// every tier on the way out.
func (r *repository) Get(key string) (domain.CachedResponse, bool) {
	now := r.clock.Now()

	// 1) checkCache
	if resp, ok := r.cache.Get(key); ok {
		if !resp.IsExpired(now) {
			r.hits.Add(1)
			return resp, true
		}
		r.evict(key)
		r.misses.Add(1)
		return domain.CachedResponse{}, false
	}

	// 2) checkBloom: definite negatives skip the store
	if !r.checkBloom(key) {
		r.bloomRejects.Add(1)
		r.misses.Add(1)
		return domain.CachedResponse{}, false
	}

	// 3) checkStore
	resp, ok, err := r.store.Get(key)
	if err != nil {
		r.logger.Warn(map[string]any{"key": key, "error": err.Error()}, "store read failed")
		r.misses.Add(1)
		return domain.CachedResponse{}, false
	}
	if !ok {
		r.misses.Add(1)
		return domain.CachedResponse{}, false
	}
	if resp.IsExpired(now) {
		r.evict(key)
		r.misses.Add(1)
		return domain.CachedResponse{}, false
	}

	// 4) updateCache
	r.cache.Put(key, resp)
	r.hits.Add(1)
	return resp, true
}

// Put writes resp under key to the store, the Bloom filter and the cache.
func (r *repository) Put(key string, resp domain.CachedResponse) error {
	if err := r.store.Put(key, resp); err != nil {
		return err
	}
	r.cache.Put(key, resp)

	r.mu.Lock()
	r.bloom.Add([]byte(key))
	r.inserts++
	grow := r.inserts > r.capacity
	r.mu.Unlock()

	if grow {
		if err := r.rebuildBloom(); err != nil {
			r.logger.Warn(map[string]any{"error": err.Error()}, "bloom rebuild failed")
		}
	}
	return nil
}

// Stats returns repository counters with the tier snapshots.
func (r *repository) Stats() RepoStats {
	return RepoStats{
		Hits:          r.hits.Load(),
		Misses:        r.misses.Load(),
		BloomRejects:  r.bloomRejects.Load(),
		Expired:       r.expired.Load(),
		BloomRebuilds: r.rebuilds.Load(),
		Cache:         r.cache.Stats(),
		Store:         r.store.Stats(),
	}
}

// Close releases the store.
func (r *repository) Close() error {
	r.cache.Purge()
	return r.store.Close()
}

// checkBloom returns true if we should consult the store (maybe-positive),
// or false if the key is definitely absent.
func (r *repository) checkBloom(key string) bool {
	r.mu.RLock()
	bf := r.bloom
	r.mu.RUnlock()
	if bf == nil {
		return true
	}
	return bf.MightContain([]byte(key))
}

func (r *repository) evict(key string) {
	r.expired.Add(1)
	r.cache.Remove(key)
	if err := r.store.Delete(key); err != nil {
		r.logger.Warn(map[string]any{"key": key, "error": err.Error()}, "store delete failed")
	}
}

// rebuildBloom sizes a fresh filter for twice the stored key count, fills it
// from the store and swaps it in.
func (r *repository) rebuildBloom() error {
	var keys [][]byte
	if err := r.store.VisitKeys(func(key []byte) bool {
		keys = append(keys, key)
		return true
	}); err != nil {
		return err
	}

	capacity := max(uint64(DefaultBloomCapacity), 2*uint64(len(keys)))
	bf := r.factory.New(capacity, r.fpRate)
	for _, k := range keys {
		bf.Add(k)
	}

	r.mu.Lock()
	r.bloom = bf
	r.capacity = capacity
	r.inserts = uint64(len(keys))
	r.mu.Unlock()

	r.rebuilds.Add(1)
	r.logger.Debug(map[string]any{"keys": len(keys), "capacity": capacity}, "bloom filter rebuilt")
	return nil
}

var _ lookup.AnswerCache = (*repository)(nil)
