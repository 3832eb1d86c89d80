package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// reader is a forward-only cursor over an immutable message buffer. Every
// read is bounds checked and reports domain.ErrTruncatedMessage instead of
// panicking. Slices handed out are copies, never views into buf.
type reader struct {
	buf []byte
	off int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) need(n int, what string) error {
	if n < 0 || r.remaining() < n {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, %d left",
			domain.ErrTruncatedMessage, what, n, r.off, r.remaining())
	}
	return nil
}

func (r *reader) uint8(what string) (uint8, error) {
	if err := r.need(1, what); err != nil {
		return 0, err
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

func (r *reader) uint16(what string) (uint16, error) {
	if err := r.need(2, what); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) uint32(what string) (uint32, error) {
	if err := r.need(4, what); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) bytes(n int, what string) ([]byte, error) {
	if err := r.need(n, what); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

// name reads an uncompressed label sequence up to and including the root
// label.
func (r *reader) name() (domain.Name, error) {
	start := r.off
	for {
		l, err := r.uint8("label length")
		if err != nil {
			return nil, err
		}
		if l == 0 {
			break
		}
		switch l & 0xC0 {
		case 0x00:
		case 0xC0:
			return nil, fmt.Errorf("%w: pointer at offset %d", domain.ErrCompressedName, r.off-1)
		default:
			return nil, fmt.Errorf("%w: reserved label type %#02x at offset %d",
				domain.ErrInvalidLabel, l, r.off-1)
		}
		if err := r.need(int(l), "label"); err != nil {
			return nil, err
		}
		r.off += int(l)
		if r.off-start+1 > MaxNameLength {
			return nil, fmt.Errorf("%w: name at offset %d exceeds %d bytes",
				domain.ErrInvalidLabel, start, MaxNameLength)
		}
	}
	name := make(domain.Name, r.off-start)
	copy(name, r.buf[start:r.off])
	return name, nil
}
