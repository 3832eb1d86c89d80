package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RRType represents a DNS resource record type (e.g. A, AAAA, MX).
// See IANA DNS Parameters for assigned codes.
//
// Codes without a mapping below are still representable: they decode to
// an RRType whose Known method reports false.
type RRType uint16

// DNS Resource Record Type constants
const (
	RRTypeA      RRType = 1   // A - IPv4 address
	RRTypeNS     RRType = 2   // NS - Name server
	RRTypeMD     RRType = 3   // MD - Mail destination (obsolete)
	RRTypeMF     RRType = 4   // MF - Mail forwarder (obsolete)
	RRTypeCNAME  RRType = 5   // CNAME - Canonical name
	RRTypeSOA    RRType = 6   // SOA - Start of authority
	RRTypeMB     RRType = 7   // MB - Mailbox domain name (experimental)
	RRTypeMG     RRType = 8   // MG - Mail group member (experimental)
	RRTypeMR     RRType = 9   // MR - Mail rename domain name (experimental)
	RRTypeNULL   RRType = 10  // NULL - Null RR (experimental)
	RRTypeWKS    RRType = 11  // WKS - Well known service
	RRTypePTR    RRType = 12  // PTR - Pointer
	RRTypeHINFO  RRType = 13  // HINFO - Host information
	RRTypeMINFO  RRType = 14  // MINFO - Mailbox information
	RRTypeMX     RRType = 15  // MX - Mail exchange
	RRTypeTXT    RRType = 16  // TXT - Text
	RRTypeAAAA   RRType = 28  // AAAA - IPv6 address
	RRTypeSRV    RRType = 33  // SRV - Service
	RRTypeNAPTR  RRType = 35  // NAPTR - Naming authority pointer
	RRTypeOPT    RRType = 41  // OPT - EDNS option
	RRTypeDS     RRType = 43  // DS - Delegation signer
	RRTypeRRSIG  RRType = 46  // RRSIG - Resource record signature
	RRTypeNSEC   RRType = 47  // NSEC - Next secure
	RRTypeDNSKEY RRType = 48  // DNSKEY - DNS key
	RRTypeTLSA   RRType = 52  // TLSA - TLS association
	RRTypeSVCB   RRType = 64  // SVCB - Service binding
	RRTypeHTTPS  RRType = 65  // HTTPS - HTTPS binding
	RRTypeAXFR   RRType = 252 // AXFR - Zone transfer (query only)
	RRTypeMAILB  RRType = 253 // MAILB - Mailbox related records (query only)
	RRTypeMAILA  RRType = 254 // MAILA - Mail agent records (query only, obsolete)
	RRTypeANY    RRType = 255 // ANY - Any type (query only)
	RRTypeCAA    RRType = 257 // CAA - Certificate authority authorization
)

var rrTypeNames = map[RRType]string{
	RRTypeA:      "A",
	RRTypeNS:     "NS",
	RRTypeMD:     "MD",
	RRTypeMF:     "MF",
	RRTypeCNAME:  "CNAME",
	RRTypeSOA:    "SOA",
	RRTypeMB:     "MB",
	RRTypeMG:     "MG",
	RRTypeMR:     "MR",
	RRTypeNULL:   "NULL",
	RRTypeWKS:    "WKS",
	RRTypePTR:    "PTR",
	RRTypeHINFO:  "HINFO",
	RRTypeMINFO:  "MINFO",
	RRTypeMX:     "MX",
	RRTypeTXT:    "TXT",
	RRTypeAAAA:   "AAAA",
	RRTypeSRV:    "SRV",
	RRTypeNAPTR:  "NAPTR",
	RRTypeOPT:    "OPT",
	RRTypeDS:     "DS",
	RRTypeRRSIG:  "RRSIG",
	RRTypeNSEC:   "NSEC",
	RRTypeDNSKEY: "DNSKEY",
	RRTypeTLSA:   "TLSA",
	RRTypeSVCB:   "SVCB",
	RRTypeHTTPS:  "HTTPS",
	RRTypeAXFR:   "AXFR",
	RRTypeMAILB:  "MAILB",
	RRTypeMAILA:  "MAILA",
	RRTypeANY:    "ANY",
	RRTypeCAA:    "CAA",
}

var rrTypeByName = invert(rrTypeNames)

// RRTypeFromCode maps a wire code to its RRType. It never fails; codes
// without a known mapping are preserved as-is.
func RRTypeFromCode(code uint16) RRType {
	return RRType(code)
}

// Code returns the 16-bit wire value of the type.
func (t RRType) Code() uint16 {
	return uint16(t)
}

// Known reports whether the type has an assigned mnemonic in the code table.
func (t RRType) Known() bool {
	_, ok := rrTypeNames[t]
	return ok
}

// String returns the textual representation of the RRType.
// For unknown types, it returns "UNKNOWN(<value>)".
func (t RRType) String() string {
	if name, ok := rrTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
}

// ParseRRType converts a mnemonic such as "MX" (case insensitive) or the
// generic "TYPE15" form into an RRType.
func ParseRRType(s string) (RRType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if t, ok := rrTypeByName[s]; ok {
		return t, nil
	}
	if code, ok := genericCode(s, "TYPE"); ok {
		return RRType(code), nil
	}
	return 0, fmt.Errorf("%w: record type %q", ErrUnknownCode, s)
}

// genericCode parses the RFC 3597 "TYPEnnn" / "CLASSnnn" notation.
func genericCode(s, prefix string) (uint16, bool) {
	digits, ok := strings.CutPrefix(s, prefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}
