package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the wire codec and its callers. Wrap them with
// fmt.Errorf("context: %w", ErrX) and match with errors.Is.
var (
	// ErrInvalidLabel reports a label or name that breaks the RFC 1035 size
	// bounds, or a label encoding the codec does not accept.
	ErrInvalidLabel = errors.New("invalid label")

	// ErrCompressedName reports a compression pointer in a name. It also
	// matches ErrInvalidLabel.
	ErrCompressedName = fmt.Errorf("%w: compressed names are not supported", ErrInvalidLabel)

	// ErrTruncatedMessage reports a read past the end of the buffer.
	ErrTruncatedMessage = errors.New("truncated message")

	// ErrUnknownCode reports a type or class mnemonic with no code table entry.
	// Unknown numeric codes on the wire are not errors.
	ErrUnknownCode = errors.New("unknown code")

	// ErrInvalidTTL reports a TTL outside [0, MaxTTL].
	ErrInvalidTTL = errors.New("invalid ttl")

	// ErrRDataTooLong reports rdata that cannot be described by a 16-bit rdlength.
	ErrRDataTooLong = errors.New("rdata too long")

	// ErrResponseMismatch reports a response that does not answer the query sent.
	ErrResponseMismatch = errors.New("response does not match query")
)
