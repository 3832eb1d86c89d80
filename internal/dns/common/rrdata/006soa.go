package rrdata

import "fmt"

// decodeSOAData decodes "mname rname serial refresh retry expire minimum".
func decodeSOAData(b []byte) (string, error) {
	r := &rdata{b: b}
	mname, err := r.name("SOA mname")
	if err != nil {
		return "", err
	}
	rname, err := r.name("SOA rname")
	if err != nil {
		return "", err
	}
	var u32 [5]uint32
	for i, field := range []string{"serial", "refresh", "retry", "expire", "minimum"} {
		if u32[i], err = r.uint32("SOA " + field); err != nil {
			return "", err
		}
	}
	if err := r.done(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %d %d %d %d %d", mname, rname, u32[0], u32[1], u32[2], u32[3], u32[4]), nil
}
