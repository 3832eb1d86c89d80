package domain

import (
	"github.com/haukened/rr-query/internal/dns/common/utils"
)

// GenerateCacheKey returns a consistent cache key derived from a DNS name, type, and class.
// Format: "apex|name|type|class" (e.g., "example.com|www.example.com|A|IN").
// Leading with the apex keeps answers under one registrable domain adjacent
// in the ordered bolt store.
func GenerateCacheKey(name string, t RRType, c RRClass) string {
	name = utils.CanonicalDNSName(name)
	apexDomain := utils.GetApexDomain(name)
	return apexDomain + "|" + name + "|" + t.String() + "|" + c.String()
}

