package domain

import "strings"

// Name is a domain name in wire form: a sequence of length-prefixed labels
// ending with the zero-length root label. Values are produced by the wire
// package and treated as immutable.
type Name []byte

// RootName is the encoded root domain.
var RootName = Name{0}

// Labels returns the labels of the name, excluding the root terminator.
// Malformed input yields the labels read before the problem.
func (n Name) Labels() []string {
	var labels []string
	for i := 0; i < len(n); {
		l := int(n[i])
		if l == 0 || i+1+l > len(n) {
			break
		}
		labels = append(labels, string(n[i+1:i+1+l]))
		i += 1 + l
	}
	return labels
}

// String returns the presentation form with a trailing dot, e.g. "example.com.".
func (n Name) String() string {
	labels := n.Labels()
	if len(labels) == 0 {
		return "."
	}
	return strings.Join(labels, ".") + "."
}

// Equal compares two names ignoring ASCII case, as DNS name comparison does.
func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if toLowerASCII(n[i]) != toLowerASCII(other[i]) {
			return false
		}
	}
	return true
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
