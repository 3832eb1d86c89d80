package answercache

import "github.com/haukened/rr-query/internal/dns/domain"

// NopStore is a Store that keeps nothing. It backs memory-only operation.
type NopStore struct{}

func (NopStore) Get(string) (domain.CachedResponse, bool, error) {
	return domain.CachedResponse{}, false, nil
}

func (NopStore) Put(string, domain.CachedResponse) error { return nil }

func (NopStore) Delete(string) error { return nil }

func (NopStore) VisitKeys(func(key []byte) bool) error { return nil }

func (NopStore) Stats() StoreStats { return StoreStats{} }

func (NopStore) Close() error { return nil }

var _ Store = NopStore{}
