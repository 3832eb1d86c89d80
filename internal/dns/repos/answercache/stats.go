package answercache

// CacheStats reports lightweight cache metrics.
// All fields are best-effort snapshots and may be updated concurrently.
type CacheStats struct {
	Capacity  int    // configured capacity (0 for disabled cache)
	Size      int    // current number of entries
	Hits      uint64 // total cache hits since construction
	Misses    uint64 // total cache misses since construction
	Evictions uint64 // total evictions since construction
}

// StoreStats reports lightweight store metrics.
type StoreStats struct {
	Keys uint64 // number of stored responses, live or not
}

// RepoStats exposes repository-level counters plus the tier stats.
type RepoStats struct {
	Hits          uint64 // served from memory or store
	Misses        uint64
	BloomRejects  uint64 // misses answered by the bloom filter alone
	Expired       uint64 // entries dropped on read because their TTL ran out
	BloomRebuilds uint64
	Cache         CacheStats
	Store         StoreStats
}
