package wire

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/haukened/rr-query/internal/dns/common/log"
	"github.com/haukened/rr-query/internal/dns/domain"
)

// BuilderOptions configures a QueryBuilder.
type BuilderOptions struct {
	// Rand supplies transaction ids. Defaults to crypto/rand.Reader; tests
	// pin it to a fixed or seeded reader.
	Rand io.Reader
	// Logger receives a debug entry per built query. Defaults to a no-op.
	Logger log.Logger
}

// QueryBuilder assembles single-question recursive queries.
type QueryBuilder struct {
	mu     sync.Mutex
	rand   io.Reader
	logger log.Logger
}

// NewQueryBuilder returns a QueryBuilder with defaults applied to opts.
func NewQueryBuilder(opts BuilderOptions) *QueryBuilder {
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	return &QueryBuilder{
		rand:   opts.Rand,
		logger: log.WithComponent(opts.Logger, "wire"),
	}
}

// NewQuery returns the entity form of a query for name/rrtype/class with a
// fresh transaction id and the RD flag set.
func (b *QueryBuilder) NewQuery(name string, rrtype domain.RRType, class domain.RRClass) (domain.Message, error) {
	encoded, err := EncodeName(name)
	if err != nil {
		return domain.Message{}, fmt.Errorf("encode query name: %w", err)
	}
	id, err := b.nextID()
	if err != nil {
		return domain.Message{}, err
	}
	return domain.NewQueryMessage(id, domain.NewQuestion(encoded, rrtype, class)), nil
}

// BuildQuery returns the wire bytes of a query for name/rrtype/class:
// a 12-byte header with QDCOUNT=1 followed by a single question.
func (b *QueryBuilder) BuildQuery(name string, rrtype domain.RRType, class domain.RRClass) ([]byte, error) {
	msg, err := b.NewQuery(name, rrtype, class)
	if err != nil {
		return nil, err
	}
	q := msg.Questions[0]
	buf := make([]byte, 0, domain.HeaderSize+len(q.Name)+4)
	buf = appendHeader(buf, msg.Header)
	buf = appendQuestion(buf, q)

	b.logger.Debug(map[string]any{
		"id":    msg.Header.ID,
		"name":  q.Name.String(),
		"type":  rrtype.String(),
		"class": class.String(),
		"bytes": len(buf),
	}, "built query")
	return buf, nil
}

func (b *QueryBuilder) nextID() (uint16, error) {
	var raw [2]byte
	b.mu.Lock()
	_, err := io.ReadFull(b.rand, raw[:])
	b.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("read transaction id: %w", err)
	}
	return binary.BigEndian.Uint16(raw[:]), nil
}
