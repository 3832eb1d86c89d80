package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// recordFixedSize is type + class + ttl + rdlength.
const recordFixedSize = 10

// EncodeRecord serializes rr as name ++ type ++ class ++ ttl ++ rdlength ++ rdata.
func EncodeRecord(rr domain.ResourceRecord) ([]byte, error) {
	return appendRecord(make([]byte, 0, len(rr.Name)+recordFixedSize+len(rr.Data)), rr)
}

func appendRecord(dst []byte, rr domain.ResourceRecord) ([]byte, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}
	dst = append(dst, rr.Name...)
	dst = binary.BigEndian.AppendUint16(dst, rr.Type.Code())
	dst = binary.BigEndian.AppendUint16(dst, rr.Class.Code())
	dst = binary.BigEndian.AppendUint32(dst, rr.TTL)
	//gosec:disable G115 -- Validate bounds rdata to 65535 bytes
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(rr.Data)))
	dst = append(dst, rr.Data...)
	return dst, nil
}

// DecodeRecord reads one resource record from the start of b and returns it
// with the number of bytes consumed. rdata is copied verbatim.
func DecodeRecord(b []byte) (domain.ResourceRecord, int, error) {
	r := newReader(b)
	rr, err := r.record()
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	return rr, r.off, nil
}

func (r *reader) record() (domain.ResourceRecord, error) {
	name, err := r.name()
	if err != nil {
		return domain.ResourceRecord{}, err
	}
	if err := r.need(recordFixedSize, "record header"); err != nil {
		return domain.ResourceRecord{}, err
	}
	typ, _ := r.uint16("type")
	class, _ := r.uint16("class")
	ttl, _ := r.uint32("ttl")
	rdLen, _ := r.uint16("rdlength")

	if ttl > domain.MaxTTL {
		return domain.ResourceRecord{}, fmt.Errorf("%w: %d exceeds %d", domain.ErrInvalidTTL, ttl, domain.MaxTTL)
	}
	rdata, err := r.bytes(int(rdLen), "rdata")
	if err != nil {
		return domain.ResourceRecord{}, err
	}
	return domain.ResourceRecord{
		Name:  name,
		Type:  domain.RRTypeFromCode(typ),
		Class: domain.RRClassFromCode(class),
		TTL:   ttl,
		Data:  rdata,
	}, nil
}
