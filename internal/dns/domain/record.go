package domain

import (
	"fmt"
	"math"
	"time"
)

// MaxTTL is the largest TTL accepted. RFC 2181 Section 8 limits TTLs to
// 31 bits; larger values read as negative in signed representations.
const MaxTTL uint32 = math.MaxInt32

// MaxRDataLength is the largest rdata a 16-bit rdlength can describe.
const MaxRDataLength = math.MaxUint16

// ResourceRecord is one answer, authority or additional entry. Data holds the
// raw rdata; the codec never looks inside it.
type ResourceRecord struct {
	Name  Name
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  []byte
}

// NewResourceRecord constructs a ResourceRecord and validates it.
func NewResourceRecord(name Name, rrtype RRType, class RRClass, ttl uint32, data []byte) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks the fields the wire format bounds.
func (rr ResourceRecord) Validate() error {
	if len(rr.Name) == 0 {
		return fmt.Errorf("%w: record name must not be empty", ErrInvalidLabel)
	}
	if rr.TTL > MaxTTL {
		return fmt.Errorf("%w: %d exceeds %d", ErrInvalidTTL, rr.TTL, MaxTTL)
	}
	if len(rr.Data) > MaxRDataLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrRDataTooLong, len(rr.Data), MaxRDataLength)
	}
	return nil
}

// RDLength returns the rdlength field value for the record.
func (rr ResourceRecord) RDLength() int {
	return len(rr.Data)
}

// TTLDuration returns the TTL as a time.Duration.
func (rr ResourceRecord) TTLDuration() time.Duration {
	return time.Duration(rr.TTL) * time.Second
}
