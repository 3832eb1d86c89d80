package rrdata

import "fmt"

// decodeSRVData decodes "priority weight port target" (RFC 2782).
func decodeSRVData(b []byte) (string, error) {
	r := &rdata{b: b}
	var u16 [3]uint16
	var err error
	for i, field := range []string{"priority", "weight", "port"} {
		if u16[i], err = r.uint16("SRV " + field); err != nil {
			return "", err
		}
	}
	target, err := r.name("SRV target")
	if err != nil {
		return "", err
	}
	if err := r.done(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d %d %s", u16[0], u16[1], u16[2], target), nil
}
