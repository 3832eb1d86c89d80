package domain

// HeaderSize is the fixed size of an encoded DNS header in bytes.
const HeaderSize = 12

// DNS header flag bits (RFC 1035 Section 4.1.1).
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|   Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
const (
	FlagQR     uint16 = 0x8000 // Response
	OpcodeMask uint16 = 0x7800 // Bits 14-11, shift right by 11
	FlagAA     uint16 = 0x0400 // Authoritative answer
	FlagTC     uint16 = 0x0200 // Truncated
	FlagRD     uint16 = 0x0100 // Recursion desired
	FlagRA     uint16 = 0x0080 // Recursion available
	RCodeMask  uint16 = 0x000F // Bits 3-0
)

// Header is the fixed 12-byte section that starts every DNS message.
type Header struct {
	ID      uint16 // Transaction ID
	Flags   uint16
	QDCount uint16 // Question count
	ANCount uint16 // Answer count
	NSCount uint16 // Authority count
	ARCount uint16 // Additional count
}

// NewQueryHeader returns the header of a single-question recursive query.
func NewQueryHeader(id uint16) Header {
	return Header{
		ID:      id,
		Flags:   FlagRD,
		QDCount: 1,
	}
}

// IsResponse returns true if the QR flag is set.
func (h Header) IsResponse() bool {
	return h.Flags&FlagQR != 0
}

// Opcode returns the 4-bit operation code.
func (h Header) Opcode() uint8 {
	return uint8((h.Flags & OpcodeMask) >> 11)
}

// Authoritative returns true if the AA flag is set.
func (h Header) Authoritative() bool {
	return h.Flags&FlagAA != 0
}

// Truncated returns true if the TC flag is set.
func (h Header) Truncated() bool {
	return h.Flags&FlagTC != 0
}

// RecursionDesired returns true if the RD flag is set.
func (h Header) RecursionDesired() bool {
	return h.Flags&FlagRD != 0
}

// RecursionAvailable returns true if the RA flag is set.
func (h Header) RecursionAvailable() bool {
	return h.Flags&FlagRA != 0
}

// RCode extracts the response code from the low four bits of the flags.
func (h Header) RCode() RCode {
	//gosec:disable G115 -- masked to 4 bits
	return RCode(h.Flags & RCodeMask)
}
