package domain

import (
	"fmt"
	"strings"
)

// RRClass represents a DNS class (usually IN for Internet).
type RRClass uint16

// DNS Resource Record Class constants
const (
	RRClassIN   RRClass = 1   // IN - Internet
	RRClassCS   RRClass = 2   // CS - CSNET (obsolete)
	RRClassCH   RRClass = 3   // CH - Chaos
	RRClassHS   RRClass = 4   // HS - Hesiod
	RRClassNONE RRClass = 254 // NONE - No class
	RRClassANY  RRClass = 255 // ANY - Any class (query only)
)

var rrClassNames = map[RRClass]string{
	RRClassIN:   "IN",
	RRClassCS:   "CS",
	RRClassCH:   "CH",
	RRClassHS:   "HS",
	RRClassNONE: "NONE",
	RRClassANY:  "ANY",
}

var rrClassByName = invert(rrClassNames)

// RRClassFromCode maps a wire code to its RRClass without failing.
func RRClassFromCode(code uint16) RRClass {
	return RRClass(code)
}

// Code returns the 16-bit wire value of the class.
func (c RRClass) Code() uint16 {
	return uint16(c)
}

// Known reports whether the class has an assigned mnemonic.
func (c RRClass) Known() bool {
	_, ok := rrClassNames[c]
	return ok
}

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	if name, ok := rrClassNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(c))
}

// ParseRRClass converts a string name to an RRClass value.
func ParseRRClass(s string) (RRClass, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if c, ok := rrClassByName[s]; ok {
		return c, nil
	}
	if code, ok := genericCode(s, "CLASS"); ok {
		return RRClass(code), nil
	}
	return 0, fmt.Errorf("%w: record class %q", ErrUnknownCode, s)
}
