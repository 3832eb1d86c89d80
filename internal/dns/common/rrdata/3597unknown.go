package rrdata

import (
	"encoding/hex"
	"fmt"
)

// DecodeUnknown renders any rdata in the RFC 3597 generic form:
// \# <length> <hex>.
func DecodeUnknown(b []byte) string {
	if len(b) == 0 {
		return `\# 0`
	}
	return fmt.Sprintf(`\# %d %s`, len(b), hex.EncodeToString(b))
}
