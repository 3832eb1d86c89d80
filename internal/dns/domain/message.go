package domain

import "time"

// Message is a complete DNS message: a header plus its four sections.
// For decoded messages the header counts match the section lengths.
type Message struct {
	Header     Header
	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// NewQueryMessage builds the entity form of a single-question query.
func NewQueryMessage(id uint16, q Question) Message {
	return Message{
		Header:    NewQueryHeader(id),
		Questions: []Question{q},
	}
}

// RCode returns the response code from the header.
func (m Message) RCode() RCode {
	return m.Header.RCode()
}

// IsError returns true if the response indicates an error condition.
func (m Message) IsError() bool {
	return m.RCode() != RCodeNoError
}

// HasAnswers returns true if the response contains answer records.
func (m Message) HasAnswers() bool {
	return len(m.Answers) > 0
}

// MinTTL returns the smallest TTL across the answer, authority and
// additional sections, and false if there are no records.
func (m Message) MinTTL() (uint32, bool) {
	var (
		min   uint32
		found bool
	)
	for _, section := range [][]ResourceRecord{m.Answers, m.Authority, m.Additional} {
		for _, rr := range section {
			if rr.Type == RRTypeOPT {
				continue
			}
			if !found || rr.TTL < min {
				min = rr.TTL
				found = true
			}
		}
	}
	return min, found
}

// Aged returns a copy of m with every record TTL reduced by elapsed,
// floored at zero. Used when serving a message out of a cache.
func (m Message) Aged(elapsed time.Duration) Message {
	secs := elapsed / time.Second
	if secs <= 0 {
		return m
	}
	age := func(in []ResourceRecord) []ResourceRecord {
		if in == nil {
			return nil
		}
		out := make([]ResourceRecord, len(in))
		for i, rr := range in {
			if rr.Type != RRTypeOPT {
				if time.Duration(rr.TTL) > secs {
					rr.TTL -= uint32(secs)
				} else {
					rr.TTL = 0
				}
			}
			out[i] = rr
		}
		return out
	}
	aged := m
	aged.Answers = age(m.Answers)
	aged.Authority = age(m.Authority)
	aged.Additional = age(m.Additional)
	return aged
}
