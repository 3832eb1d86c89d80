package domain

import "time"

// CachedResponse is a response held in wire form together with its lifetime.
type CachedResponse struct {
	Wire      []byte
	StoredAt  time.Time
	ExpiresAt time.Time
}

// NewCachedResponse stores wire with a lifetime of ttl seconds starting at now.
func NewCachedResponse(wire []byte, ttl uint32, now time.Time) CachedResponse {
	return CachedResponse{
		Wire:      wire,
		StoredAt:  now,
		ExpiresAt: now.Add(time.Duration(ttl) * time.Second),
	}
}

// IsExpired reports whether the entry has outlived its TTL at now.
func (c CachedResponse) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Age returns how long the entry has been cached at now.
func (c CachedResponse) Age(now time.Time) time.Duration {
	if now.Before(c.StoredAt) {
		return 0
	}
	return now.Sub(c.StoredAt)
}
