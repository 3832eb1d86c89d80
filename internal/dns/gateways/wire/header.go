package wire

import (
	"encoding/binary"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// EncodeHeader serializes h into exactly domain.HeaderSize bytes.
func EncodeHeader(h domain.Header) []byte {
	return appendHeader(make([]byte, 0, domain.HeaderSize), h)
}

func appendHeader(dst []byte, h domain.Header) []byte {
	dst = binary.BigEndian.AppendUint16(dst, h.ID)
	dst = binary.BigEndian.AppendUint16(dst, h.Flags)
	dst = binary.BigEndian.AppendUint16(dst, h.QDCount)
	dst = binary.BigEndian.AppendUint16(dst, h.ANCount)
	dst = binary.BigEndian.AppendUint16(dst, h.NSCount)
	dst = binary.BigEndian.AppendUint16(dst, h.ARCount)
	return dst
}

// DecodeHeader parses the first 12 bytes of b.
func DecodeHeader(b []byte) (domain.Header, error) {
	return newReader(b).header()
}

// MessageID returns the transaction id of an encoded message.
func MessageID(b []byte) (uint16, error) {
	return newReader(b).uint16("message id")
}

func (r *reader) header() (domain.Header, error) {
	if err := r.need(domain.HeaderSize, "header"); err != nil {
		return domain.Header{}, err
	}
	var h domain.Header
	// lengths were checked above
	h.ID, _ = r.uint16("id")
	h.Flags, _ = r.uint16("flags")
	h.QDCount, _ = r.uint16("qdcount")
	h.ANCount, _ = r.uint16("ancount")
	h.NSCount, _ = r.uint16("nscount")
	h.ARCount, _ = r.uint16("arcount")
	return h, nil
}
