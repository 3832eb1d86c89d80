package wire

import (
	"fmt"
	"strings"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// RFC 1035 Section 2.3.4 size limits.
const (
	MaxLabelLength = 63
	MaxNameLength  = 255
)

// EncodeName encodes a dotted domain name into wire format: each label as a
// length byte followed by its bytes, then a zero byte for the root.
//
// "" and "." encode to the root name. A single trailing dot is accepted.
// Labels longer than 63 bytes, empty interior labels and names longer than
// 255 encoded bytes fail with domain.ErrInvalidLabel.
func EncodeName(name string) (domain.Name, error) {
	if name == "" || name == "." {
		return domain.Name{0}, nil
	}
	labels := strings.Split(strings.TrimSuffix(name, "."), ".")

	size := 1
	for _, label := range labels {
		if len(label) == 0 {
			return nil, fmt.Errorf("%w: empty label in %q", domain.ErrInvalidLabel, name)
		}
		if len(label) > MaxLabelLength {
			return nil, fmt.Errorf("%w: label %q is %d bytes (max %d)",
				domain.ErrInvalidLabel, label, len(label), MaxLabelLength)
		}
		size += 1 + len(label)
	}
	if size > MaxNameLength {
		return nil, fmt.Errorf("%w: %q encodes to %d bytes (max %d)",
			domain.ErrInvalidLabel, name, size, MaxNameLength)
	}

	encoded := make(domain.Name, 0, size)
	for _, label := range labels {
		encoded = append(encoded, byte(len(label)))
		encoded = append(encoded, label...)
	}
	return append(encoded, 0), nil
}

// DecodeName reads one encoded name from the start of b and returns it with
// the number of bytes consumed.
func DecodeName(b []byte) (domain.Name, int, error) {
	r := newReader(b)
	name, err := r.name()
	if err != nil {
		return nil, 0, err
	}
	return name, r.off, nil
}
