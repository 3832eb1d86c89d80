package wire

import (
	"fmt"
	"math"

	"github.com/haukened/rr-query/internal/dns/domain"
)

// Smallest encodings a count can describe, used to cap preallocation when a
// header claims more entries than the buffer could hold.
const (
	minQuestionSize = 1 + 4
	minRecordSize   = 1 + recordFixedSize
)

// DecodeMessage parses a complete DNS message: the header, then QDCOUNT
// questions and ANCOUNT, NSCOUNT and ARCOUNT records in order. Any failure
// returns the zero Message. Bytes after the last declared record are ignored.
func DecodeMessage(b []byte) (domain.Message, error) {
	r := newReader(b)
	h, err := r.header()
	if err != nil {
		return domain.Message{}, err
	}
	msg := domain.Message{Header: h}

	if h.QDCount > 0 {
		msg.Questions = make([]domain.Question, 0, min(int(h.QDCount), r.remaining()/minQuestionSize))
		for i := range int(h.QDCount) {
			q, err := r.question()
			if err != nil {
				return domain.Message{}, fmt.Errorf("question %d: %w", i, err)
			}
			msg.Questions = append(msg.Questions, q)
		}
	}
	if msg.Answers, err = r.records(h.ANCount, "answer"); err != nil {
		return domain.Message{}, err
	}
	if msg.Authority, err = r.records(h.NSCount, "authority"); err != nil {
		return domain.Message{}, err
	}
	if msg.Additional, err = r.records(h.ARCount, "additional"); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func (r *reader) records(count uint16, section string) ([]domain.ResourceRecord, error) {
	if count == 0 {
		return nil, nil
	}
	out := make([]domain.ResourceRecord, 0, min(int(count), r.remaining()/minRecordSize))
	for i := range int(count) {
		rr, err := r.record()
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", section, i, err)
		}
		out = append(out, rr)
	}
	return out, nil
}

// EncodeMessage serializes m. Header counts are taken from the section
// lengths, so m.Header's count fields are ignored.
func EncodeMessage(m domain.Message) ([]byte, error) {
	h := m.Header
	counts := []struct {
		section string
		n       int
		dst     *uint16
	}{
		{"question", len(m.Questions), &h.QDCount},
		{"answer", len(m.Answers), &h.ANCount},
		{"authority", len(m.Authority), &h.NSCount},
		{"additional", len(m.Additional), &h.ARCount},
	}
	for _, c := range counts {
		if c.n > math.MaxUint16 {
			return nil, fmt.Errorf("%s section has %d entries (max %d)", c.section, c.n, math.MaxUint16)
		}
		*c.dst = uint16(c.n)
	}

	buf := appendHeader(make([]byte, 0, 512), h)
	for _, q := range m.Questions {
		buf = appendQuestion(buf, q)
	}
	var err error
	for _, section := range [][]domain.ResourceRecord{m.Answers, m.Authority, m.Additional} {
		for _, rr := range section {
			if buf, err = appendRecord(buf, rr); err != nil {
				return nil, fmt.Errorf("encode %s: %w", rr.Name, err)
			}
		}
	}
	return buf, nil
}
