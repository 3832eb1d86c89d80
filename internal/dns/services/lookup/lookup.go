// Package lookup answers one question end to end: cache, build, exchange,
// decode, validate, cache again.
package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/haukened/rr-query/internal/dns/common/clock"
	"github.com/haukened/rr-query/internal/dns/common/log"
	"github.com/haukened/rr-query/internal/dns/domain"
	"github.com/haukened/rr-query/internal/dns/gateways/wire"
)

type Service struct {
	builder  QueryBuilder
	upstream Exchanger
	cache    AnswerCache
	clock    clock.Clock
	logger   log.Logger
}

type Options struct {
	Builder  QueryBuilder
	Upstream Exchanger
	// Cache is optional; nil disables caching.
	Cache  AnswerCache
	Clock  clock.Clock
	Logger log.Logger
}

func NewService(opts Options) (*Service, error) {
	if opts.Builder == nil {
		return nil, errors.New("query builder is required")
	}
	if opts.Upstream == nil {
		return nil, errors.New("upstream exchanger is required")
	}
	if opts.Clock == nil {
		opts.Clock = &clock.RealClock{}
	}
	return &Service{
		builder:  opts.Builder,
		upstream: opts.Upstream,
		cache:    opts.Cache,
		clock:    opts.Clock,
		logger:   log.WithComponent(opts.Logger, "lookup"),
	}, nil
}

// Lookup resolves name/rrtype/class through the upstream servers, serving
// from and filling the answer cache when one is configured. Cached answers
// come back with their TTLs reduced by the time spent in cache.
func (s *Service) Lookup(ctx context.Context, name string, rrtype domain.RRType, class domain.RRClass) (domain.Message, error) {
	// The key comes from the encoded name so that input the encoder
	// rejects never matches a cached entry.
	qname, err := wire.EncodeName(name)
	if err != nil {
		return domain.Message{}, fmt.Errorf("build query: %w", err)
	}
	key := domain.GenerateCacheKey(qname.String(), rrtype, class)
	if msg, ok := s.fromCache(key); ok {
		return msg, nil
	}

	query, err := s.builder.BuildQuery(name, rrtype, class)
	if err != nil {
		return domain.Message{}, fmt.Errorf("build query: %w", err)
	}
	sent, err := wire.DecodeMessage(query)
	if err != nil {
		return domain.Message{}, fmt.Errorf("decode own query: %w", err)
	}

	raw, err := s.upstream.Exchange(ctx, query)
	if err != nil {
		return domain.Message{}, fmt.Errorf("exchange: %w", err)
	}
	resp, err := wire.DecodeMessage(raw)
	if err != nil {
		return domain.Message{}, fmt.Errorf("decode response: %w", err)
	}
	if err := validateResponse(sent, resp); err != nil {
		return domain.Message{}, err
	}

	fields := map[string]any{
		"key":     key,
		"id":      resp.Header.ID,
		"rcode":   resp.RCode().String(),
		"answers": len(resp.Answers),
	}
	if resp.Header.Truncated() {
		s.logger.Warn(fields, "response truncated")
	} else {
		s.logger.Debug(fields, "response received")
	}

	s.store(key, raw, resp)
	return resp, nil
}

func (s *Service) fromCache(key string) (domain.Message, bool) {
	if s.cache == nil {
		return domain.Message{}, false
	}
	cached, ok := s.cache.Get(key)
	if !ok {
		return domain.Message{}, false
	}
	msg, err := wire.DecodeMessage(cached.Wire)
	if err != nil {
		s.logger.Warn(map[string]any{"key": key, "error": err.Error()}, "discarding undecodable cache entry")
		return domain.Message{}, false
	}
	age := cached.Age(s.clock.Now())
	s.logger.Debug(map[string]any{"key": key, "age": age.String()}, "cache hit")
	return msg.Aged(age), true
}

// store caches successful, complete answers for their smallest TTL.
func (s *Service) store(key string, raw []byte, resp domain.Message) {
	if s.cache == nil || resp.RCode() != domain.RCodeNoError || resp.Header.Truncated() {
		return
	}
	ttl, ok := resp.MinTTL()
	if !ok || ttl == 0 {
		return
	}
	if err := s.cache.Put(key, domain.NewCachedResponse(raw, ttl, s.clock.Now())); err != nil {
		s.logger.Warn(map[string]any{"key": key, "error": err.Error()}, "cache write failed")
	}
}

// validateResponse checks that resp answers the query that was sent.
func validateResponse(sent, resp domain.Message) error {
	if resp.Header.ID != sent.Header.ID {
		return fmt.Errorf("%w: id %d, sent %d", domain.ErrResponseMismatch, resp.Header.ID, sent.Header.ID)
	}
	if !resp.Header.IsResponse() {
		return fmt.Errorf("%w: QR bit not set", domain.ErrResponseMismatch)
	}
	if resp.Header.Opcode() != sent.Header.Opcode() {
		return fmt.Errorf("%w: opcode %d, sent %d", domain.ErrResponseMismatch, resp.Header.Opcode(), sent.Header.Opcode())
	}
	// servers may omit the question on some errors
	if len(resp.Questions) == 0 {
		return nil
	}
	if len(resp.Questions) != 1 || !resp.Questions[0].Matches(sent.Questions[0]) {
		return fmt.Errorf("%w: question %v, sent %v", domain.ErrResponseMismatch, resp.Questions, sent.Questions[0])
	}
	return nil
}
