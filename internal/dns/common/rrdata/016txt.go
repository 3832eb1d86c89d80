package rrdata

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// decodeTXTData decodes one or more length-prefixed character-strings
// (RFC 1035 Section 3.3.14) into space separated quoted strings.
func decodeTXTData(b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("%w: TXT record has no strings", domain.ErrTruncatedMessage)
	}
	var parts []string
	for i := 0; i < len(b); {
		n := int(b[i])
		i++
		if i+n > len(b) {
			return "", fmt.Errorf("%w: TXT string of %d bytes at offset %d", domain.ErrTruncatedMessage, n, i-1)
		}
		parts = append(parts, quote(b[i:i+n]))
		i += n
	}
	return strings.Join(parts, " "), nil
}
