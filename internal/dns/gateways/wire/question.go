package wire

import (
	"encoding/binary"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// EncodeQuestion serializes q as name ++ qtype ++ qclass. The name is
// written as given; use EncodeName to produce a valid one.
func EncodeQuestion(q domain.Question) []byte {
	return appendQuestion(make([]byte, 0, len(q.Name)+4), q)
}

func appendQuestion(dst []byte, q domain.Question) []byte {
	dst = append(dst, q.Name...)
	dst = binary.BigEndian.AppendUint16(dst, q.Type.Code())
	dst = binary.BigEndian.AppendUint16(dst, q.Class.Code())
	return dst
}

// DecodeQuestion reads one question from the start of b and returns it with
// the number of bytes consumed.
func DecodeQuestion(b []byte) (domain.Question, int, error) {
	r := newReader(b)
	q, err := r.question()
	if err != nil {
		return domain.Question{}, 0, err
	}
	return q, r.off, nil
}

func (r *reader) question() (domain.Question, error) {
	name, err := r.name()
	if err != nil {
		return domain.Question{}, err
	}
	qtype, err := r.uint16("qtype")
	if err != nil {
		return domain.Question{}, err
	}
	qclass, err := r.uint16("qclass")
	if err != nil {
		return domain.Question{}, err
	}
	return domain.Question{
		Name:  name,
		Type:  domain.RRTypeFromCode(qtype),
		Class: domain.RRClassFromCode(qclass),
	}, nil
}
