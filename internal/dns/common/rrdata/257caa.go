package rrdata

import (
	"fmt"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// decodeCAAData decodes "flag tag value" (RFC 8659).
func decodeCAAData(data []byte) (string, error) {
	if len(data) < 2 {
		return "", fmt.Errorf("%w: CAA record of %d bytes", domain.ErrTruncatedMessage, len(data))
	}
	flag := data[0]
	tagLen := int(data[1])
	if tagLen == 0 || len(data) < 2+tagLen {
		return "", fmt.Errorf("invalid CAA tag length: %d", tagLen)
	}
	tag := string(data[2 : 2+tagLen])

	// The value is opaque: a CA domain for issue/issuewild, a URI for iodef.
	// It is quoted and escaped but never canonicalized.
	return fmt.Sprintf("%d %s %s", flag, tag, quote(data[2+tagLen:])), nil
}
