// SPDX-License-Identifier: MPL-2.0

package identity

// foldByte lower-cases ASCII letters and returns every other byte unchanged.
func foldByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// compareFolded compares a and b byte-wise after ASCII case folding.
// It returns -1, 0 or +1. Equality, ordering and hashing of both value types
// are defined through this function and foldByte.
func compareFolded[T ~string | ~[]byte](a, b T) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := foldByte(a[i]), foldByte(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// foldString returns the ASCII-lower-cased copy of s.
func foldString[T ~string | ~[]byte](s T) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = foldByte(s[i])
	}
	return string(b)
}
