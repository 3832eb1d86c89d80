package rrdata

import (
	"github.com/haukened/rr-query/internal/dns/domain"
)

// Decode renders rdata of the given type in presentation format. Types
// without a dedicated decoder use the RFC 3597 generic form.
func Decode(rrType domain.RRType, data []byte) (string, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return decodeAData(data)
	case domain.RRTypeNS: // 2
		return decodeSingleName(data, "NS nsdname")
	case domain.RRTypeCNAME: // 5
		return decodeSingleName(data, "CNAME target")
	case domain.RRTypeSOA: // 6
		return decodeSOAData(data)
	case domain.RRTypePTR: // 12
		return decodeSingleName(data, "PTR ptrdname")
	case domain.RRTypeMX: // 15
		return decodeMXData(data)
	case domain.RRTypeTXT: // 16
		return decodeTXTData(data)
	case domain.RRTypeAAAA: // 28
		return decodeAAAAData(data)
	case domain.RRTypeSRV: // 33
		return decodeSRVData(data)
	case domain.RRTypeCAA: // 257
		return decodeCAAData(data)
	default:
		return DecodeUnknown(data), nil
	}
}
