package lookup

import (
	"context"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// QueryBuilder produces the wire bytes of a single-question query.
type QueryBuilder interface {
	BuildQuery(name string, rrtype domain.RRType, class domain.RRClass) ([]byte, error)
}

// Exchanger sends an encoded query and returns the raw response.
type Exchanger interface {
	Exchange(ctx context.Context, query []byte) ([]byte, error)
}

// AnswerCache holds encoded responses by cache key.
type AnswerCache interface {
	Get(key string) (domain.CachedResponse, bool)
	Put(key string, resp domain.CachedResponse) error
}
