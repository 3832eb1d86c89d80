package rrdata

import "fmt"

// decodeMXData decodes "preference exchange".
func decodeMXData(b []byte) (string, error) {
	r := &rdata{b: b}
	pref, err := r.uint16("MX preference")
	if err != nil {
		return "", err
	}
	exchange, err := r.name("MX exchange")
	if err != nil {
		return "", err
	}
	if err := r.done(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s", pref, exchange), nil
}
