package answercache_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/haukened/rr-query/internal/dns/common/clock"
	"github.com/haukened/rr-query/internal/dns/domain"
	"github.com/haukened/rr-query/internal/dns/repos/answercache"
	"github.com/haukened/rr-query/internal/dns/repos/answercache/bloom"
	"github.com/haukened/rr-query/internal/dns/repos/answercache/bolt"
	"github.com/haukened/rr-query/internal/dns/repos/answercache/lru"
)

var t0 = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

const keyA = "example.com|www.example.com|A|IN"

func newRepo(t *testing.T, store answercache.Store, cacheSize int, clk clock.Clock) answercache.Repository {
	t.Helper()
	cache, err := lru.New(cacheSize)
	if err != nil {
		t.Fatalf("lru.New: %v", err)
	}
	repo, err := answercache.NewRepository(answercache.Options{
		Store:   store,
		Cache:   cache,
		Factory: bloom.NewFactory(),
		FPRate:  0.01,
		Clock:   clk,
	})
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	return repo
}

func newBolt(t *testing.T, path string) answercache.Store {
	t.Helper()
	st, err := bolt.New(path)
	if err != nil {
		t.Fatalf("bolt.New: %v", err)
	}
	return st
}

func TestRepository_PutGetExpire(t *testing.T) {
	clk := clock.NewMockClock(t0)
	repo := newRepo(t, newBolt(t, filepath.Join(t.TempDir(), "c.db")), 16, clk)
	t.Cleanup(func() { _ = repo.Close() })

	if _, ok := repo.Get(keyA); ok {
		t.Fatalf("expected miss on empty repo")
	}

	if err := repo.Put(keyA, domain.NewCachedResponse([]byte{1, 2, 3}, 60, clk.Now())); err != nil {
		t.Fatalf("Put: %v", err)
	}

	clk.Advance(59 * time.Second)
	got, ok := repo.Get(keyA)
	if !ok || string(got.Wire) != "\x01\x02\x03" {
		t.Fatalf("expected live hit, got ok=%v %+v", ok, got)
	}
	if age := got.Age(clk.Now()); age != 59*time.Second {
		t.Fatalf("age=%v want 59s", age)
	}

	clk.Advance(time.Second)
	if _, ok := repo.Get(keyA); ok {
		t.Fatalf("expected miss at expiry")
	}

	st := repo.Stats()
	if st.Hits != 1 || st.Misses != 2 || st.Expired != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if st.Store.Keys != 0 {
		t.Fatalf("expired entry left in store: %+v", st.Store)
	}
}

func TestRepository_StoreServesAfterRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.db")
	clk := clock.NewMockClock(t0)

	repo := newRepo(t, newBolt(t, path), 16, clk)
	if err := repo.Put(keyA, domain.NewCachedResponse([]byte{0xAA}, 300, clk.Now())); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// fresh memory tier; the bloom filter is warmed from the store
	clk.Advance(10 * time.Second)
	repo = newRepo(t, newBolt(t, path), 16, clk)
	t.Cleanup(func() { _ = repo.Close() })

	got, ok := repo.Get(keyA)
	if !ok || len(got.Wire) != 1 || got.Wire[0] != 0xAA {
		t.Fatalf("expected store hit after restart, got ok=%v %+v", ok, got)
	}
	// second read is served from memory
	if _, ok := repo.Get(keyA); !ok {
		t.Fatalf("expected cache hit")
	}
	if hits := repo.Stats().Cache.Hits; hits != 1 {
		t.Fatalf("cache hits=%d want 1", hits)
	}
}

func TestRepository_BloomRejectsUnknownKeys(t *testing.T) {
	store := &countingStore{Store: answercache.NopStore{}}
	repo := newRepo(t, store, 0, clock.NewMockClock(t0))

	for range 100 {
		repo.Get("nowhere.test|nowhere.test|A|IN")
	}
	st := repo.Stats()
	if st.BloomRejects != 100 {
		t.Fatalf("bloom rejects=%d want 100", st.BloomRejects)
	}
	if store.gets != 0 {
		t.Fatalf("store consulted %d times for definite negatives", store.gets)
	}
}

func TestRepository_BloomGrowsWithInserts(t *testing.T) {
	clk := clock.NewMockClock(t0)
	repo := newRepo(t, mapStore{}, 0, clk)

	initial := repo.Stats().BloomRebuilds
	for i := range answercache.DefaultBloomCapacity + 1 {
		key := string(rune('a'+i%26)) + "|" + time.Duration(i).String()
		if err := repo.Put(key, domain.NewCachedResponse([]byte{1}, 60, clk.Now())); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	if got := repo.Stats().BloomRebuilds; got != initial+1 {
		t.Fatalf("rebuilds=%d want %d", got, initial+1)
	}
	// every stored key survives the rebuild
	if _, ok := repo.Get("a|0s"); !ok {
		t.Fatalf("expected hit for first key after rebuild")
	}
}

func TestRepository_MemoryOnly(t *testing.T) {
	clk := clock.NewMockClock(t0)
	repo := newRepo(t, nil, 4, clk)

	if err := repo.Put(keyA, domain.NewCachedResponse([]byte{5}, 30, clk.Now())); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok := repo.Get(keyA); !ok {
		t.Fatalf("expected memory hit")
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestRepository_StoreErrors(t *testing.T) {
	clk := clock.NewMockClock(t0)
	boom := errors.New("disk on fire")

	store := &countingStore{Store: answercache.NopStore{}, putErr: boom}
	repo := newRepo(t, store, 4, clk)
	if err := repo.Put(keyA, domain.NewCachedResponse([]byte{1}, 30, clk.Now())); !errors.Is(err, boom) {
		t.Fatalf("expected put error, got %v", err)
	}
	if _, ok := repo.Get(keyA); ok {
		t.Fatalf("failed write must not populate the cache")
	}

	visitFail := &countingStore{Store: answercache.NopStore{}, visitErr: boom}
	cache, _ := lru.New(1)
	if _, err := answercache.NewRepository(answercache.Options{
		Store: visitFail, Cache: cache, Factory: bloom.NewFactory(),
	}); !errors.Is(err, boom) {
		t.Fatalf("expected warm-up error, got %v", err)
	}
}

// countingStore wraps a Store and records or injects failures.
type countingStore struct {
	answercache.Store
	gets     int
	putErr   error
	visitErr error
}

func (s *countingStore) Get(key string) (domain.CachedResponse, bool, error) {
	s.gets++
	return s.Store.Get(key)
}

func (s *countingStore) Put(key string, resp domain.CachedResponse) error {
	if s.putErr != nil {
		return s.putErr
	}
	return s.Store.Put(key, resp)
}

func (s *countingStore) VisitKeys(visit func([]byte) bool) error {
	if s.visitErr != nil {
		return s.visitErr
	}
	return s.Store.VisitKeys(visit)
}

// mapStore is an in-memory Store for tests that write many keys.
type mapStore map[string]domain.CachedResponse

func (m mapStore) Get(key string) (domain.CachedResponse, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapStore) Put(key string, resp domain.CachedResponse) error {
	m[key] = resp
	return nil
}

func (m mapStore) Delete(key string) error {
	delete(m, key)
	return nil
}

func (m mapStore) VisitKeys(visit func([]byte) bool) error {
	for k := range m {
		if !visit([]byte(k)) {
			break
		}
	}
	return nil
}

func (m mapStore) Stats() answercache.StoreStats { return answercache.StoreStats{Keys: uint64(len(m))} }

func (m mapStore) Close() error { return nil }
