package answercache

import "github.com/haukened/rr-query/internal/dns/domain"

// BloomSizer computes Bloom filter parameters from capacity (n) and target FP rate (p).
// It returns m (number of bits) and k (number of hash functions).
type BloomSizer interface {
	Size(n uint64, p float64) (m uint64, k uint8)
}

// BloomFilter is the minimal interface the repository needs from Bloom filters.
type BloomFilter interface {
	Add(key []byte)
	MightContain(key []byte) bool
}

// BloomFactory builds filters sized for a capacity and false-positive rate.
type BloomFactory interface {
	New(capacity uint64, fpRate float64) BloomFilter
}

// ResponseCache is the in-memory tier, keyed by cache key, with basic metrics.
type ResponseCache interface {
	Get(key string) (domain.CachedResponse, bool)
	Put(key string, resp domain.CachedResponse)
	Remove(key string)
	Len() int
	Purge()
	Stats() CacheStats
}

// Store abstracts the persistent tier.
// - Get: the stored response for key, if any
// - VisitKeys: iterate all keys; stop when visit returns false
// - Stats: counts; Close: release resources
type Store interface {
	Get(key string) (domain.CachedResponse, bool, error)
	Put(key string, resp domain.CachedResponse) error
	Delete(key string) error
	VisitKeys(visit func(key []byte) bool) error
	Stats() StoreStats
	Close() error
}

// Repository is the composition layer that wires cache → bloom → store.
type Repository interface {
	Get(key string) (domain.CachedResponse, bool)
	Put(key string, resp domain.CachedResponse) error
	Stats() RepoStats
	Close() error
}
