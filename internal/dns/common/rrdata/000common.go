// Package rrdata renders raw rdata in zone-file presentation format. It is
// used for human-readable output only; the wire codec never looks inside
// rdata.
package rrdata

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/haukened/rr-query/internal/dns/domain"
	"github.com/haukened/rr-query/internal/dns/gateways/wire"
)

// rdata is a cursor over one record's rdata.
type rdata struct {
	b   []byte
	off int
}

func (r *rdata) name(field string) (string, error) {
	n, used, err := wire.DecodeName(r.b[r.off:])
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	r.off += used
	return n.String(), nil
}

func (r *rdata) uint16(field string) (uint16, error) {
	if len(r.b)-r.off < 2 {
		return 0, fmt.Errorf("%w: %s", domain.ErrTruncatedMessage, field)
	}
	v := binary.BigEndian.Uint16(r.b[r.off:])
	r.off += 2
	return v, nil
}

func (r *rdata) uint32(field string) (uint32, error) {
	if len(r.b)-r.off < 4 {
		return 0, fmt.Errorf("%w: %s", domain.ErrTruncatedMessage, field)
	}
	v := binary.BigEndian.Uint32(r.b[r.off:])
	r.off += 4
	return v, nil
}

// done fails if bytes remain after the last field.
func (r *rdata) done() error {
	if r.off != len(r.b) {
		return fmt.Errorf("%d trailing bytes", len(r.b)-r.off)
	}
	return nil
}

// decodeSingleName handles the NS, CNAME and PTR layouts: one name, nothing else.
func decodeSingleName(b []byte, field string) (string, error) {
	r := &rdata{b: b}
	name, err := r.name(field)
	if err != nil {
		return "", err
	}
	if err := r.done(); err != nil {
		return "", err
	}
	return name, nil
}

// quote renders a character-string with RFC 1035 Section 5.1 escapes.
func quote(s []byte) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, c := range s {
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c < ' ' || c > '~':
			fmt.Fprintf(&sb, "\\%03d", c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
