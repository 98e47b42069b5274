// SPDX-License-Identifier: MPL-2.0

package identity

import (
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"unicode/utf16"
)

const (
	// hashTruncationLength is the number of leading SHA-256 digest bytes that
	// are encoded into a Publisher Id. 8 bytes encode to exactly 13 symbols.
	hashTruncationLength = 8

	// crockfordAlphabet is Crockford's Base32 alphabet in lower case. It omits
	// i, l, o and u.
	crockfordAlphabet = "0123456789abcdefghjkmnpqrstvwxyz"
)

// crockfordEncoding reads 5 bits per symbol, most significant bit first, and
// zero-pads the final group. No '=' padding is emitted.
var crockfordEncoding = base32.NewEncoding(crockfordAlphabet).WithPadding(base32.NoPadding)

// DerivePublisherID computes the Publisher Id of a publisher string.
//
// The string is encoded as UTF-16 code units in little-endian byte order
// before hashing. Invalid UTF-8 sequences are read as U+FFFD, one per invalid
// byte. Any input, including the empty string, yields a valid PublisherID.
func DerivePublisherID(publisher string) PublisherID {
	digest := sha256.Sum256(utf16LE(publisher))

	var id PublisherID
	crockfordEncoding.Encode(id.b[:], digest[:hashTruncationLength])
	return id.canonical()
}

// utf16LE returns s as a UTF-16LE byte stream without a byte order mark.
func utf16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, 0, 2*len(units))
	for _, unit := range units {
		buf = binary.LittleEndian.AppendUint16(buf, unit)
	}
	return buf
}
