// SPDX-License-Identifier: MPL-2.0

package identity

import (
	"errors"
	"fmt"
	"hash/maphash"
)

// PublisherIDLength is the fixed length of every Publisher Id.
const PublisherIDLength = 13

var (
	// ErrInvalidLength is the sentinel error wrapped by InvalidPublisherIDLengthError.
	ErrInvalidLength = errors.New("invalid publisher id length")

	// ErrInvalidCharacters is the sentinel error wrapped by InvalidPublisherIDCharactersError.
	ErrInvalidCharacters = errors.New("invalid publisher id characters")

	// placeholderPublisherID is the stored form of the zero value.
	placeholderPublisherID = [PublisherIDLength]byte{
		'0', '0', '0', '0', '0', '0', '0', '0', '0', '0', '0', '0', '0',
	}
)

type (
	// PublisherID is a 13-character Crockford Base32 code derived from a
	// package publisher string.
	//
	// The characters are stored as given (derived ids are lower case, parsed
	// ids keep the caller's casing). Equal, Compare, Hash and Key fold ASCII
	// case; String does not.
	//
	// The zero value is the placeholder id "0000000000000"; parsing the
	// placeholder yields the zero value, so == and map keys agree with Equal
	// for it.
	PublisherID struct {
		b [PublisherIDLength]byte
	}

	// InvalidPublisherIDLengthError is returned when a candidate Publisher Id
	// is not exactly PublisherIDLength characters long.
	// It wraps ErrInvalidLength for errors.Is() compatibility.
	InvalidPublisherIDLengthError struct {
		Value string
	}

	// InvalidPublisherIDCharactersError is returned when a candidate Publisher
	// Id contains a character outside the Crockford alphabet: anything that is
	// not an ASCII letter or digit, or one of the letters I, L, O, U in either
	// case. It wraps ErrInvalidCharacters for errors.Is() compatibility.
	InvalidPublisherIDCharactersError struct {
		Value string
	}
)

// ParsePublisherID validates a candidate Publisher Id.
//
// Characters are checked before length, so a string that is both too short and
// contains a disallowed character reports ErrInvalidCharacters.
func ParsePublisherID(s string) (PublisherID, error) {
	for i := 0; i < len(s); i++ {
		if !isCrockfordByte(s[i]) {
			return PublisherID{}, &InvalidPublisherIDCharactersError{Value: s}
		}
	}
	// Every byte is ASCII at this point, so byte length is character length.
	if len(s) != PublisherIDLength {
		return PublisherID{}, &InvalidPublisherIDLengthError{Value: s}
	}

	var id PublisherID
	copy(id.b[:], s)
	return id.canonical(), nil
}

// MustParsePublisherID is like ParsePublisherID but panics on error. Use in
// tests and static initialization where the input is known-valid.
func MustParsePublisherID(s string) PublisherID {
	id, err := ParsePublisherID(s)
	if err != nil {
		panic(fmt.Sprintf("identity.MustParsePublisherID(%q): %v", s, err))
	}
	return id
}

// DefaultPublisherID returns the placeholder id "0000000000000", which is the
// zero value. It exists for places where a PublisherID is structurally
// required but no publisher is known.
func DefaultPublisherID() PublisherID {
	return PublisherID{}
}

// String returns the stored characters unchanged.
func (p PublisherID) String() string {
	b := p.bytes()
	return string(b[:])
}

// Len returns the number of characters in the id. It is always PublisherIDLength.
func (p PublisherID) Len() int { return PublisherIDLength }

// IsDefault reports whether p is the placeholder id, in any casing.
func (p PublisherID) IsDefault() bool {
	return p.Equal(PublisherID{})
}

// Equal reports whether p and other are the same id under ASCII case folding.
func (p PublisherID) Equal(other PublisherID) bool {
	return p.Compare(other) == 0
}

// Compare orders ids by their case-folded bytes. It returns -1, 0 or +1.
func (p PublisherID) Compare(other PublisherID) int {
	a, b := p.bytes(), other.bytes()
	return compareFolded(a[:], b[:])
}

// Hash returns a hash of the case-folded id. Equal ids hash equally for the
// same seed.
func (p PublisherID) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	p.writeHash(&h)
	return h.Sum64()
}

// Key returns the lower-case form of the id, suitable as a map key.
func (p PublisherID) Key() string {
	b := p.bytes()
	return foldString(b[:])
}

// MarshalText implements encoding.TextMarshaler. The id is emitted as its bare
// 13-character string.
func (p PublisherID) MarshalText() ([]byte, error) {
	b := p.bytes()
	return b[:], nil
}

// UnmarshalText implements encoding.TextUnmarshaler by delegating to
// ParsePublisherID.
func (p *PublisherID) UnmarshalText(data []byte) error {
	parsed, err := ParsePublisherID(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// canonical stores the placeholder as the zero value so that every
// placeholder PublisherID compares equal with == and as a map key.
func (p PublisherID) canonical() PublisherID {
	if p.b == placeholderPublisherID {
		return PublisherID{}
	}
	return p
}

// bytes returns the stored characters, substituting the placeholder for the
// zero value.
func (p PublisherID) bytes() [PublisherIDLength]byte {
	if p.b == ([PublisherIDLength]byte{}) {
		return placeholderPublisherID
	}
	return p.b
}

func (p PublisherID) writeHash(h *maphash.Hash) {
	b := p.bytes()
	for _, c := range b {
		_ = h.WriteByte(foldByte(c)) // maphash.Hash.WriteByte never fails
	}
}

// isCrockfordByte reports whether c, folded to lower case, is in crockfordAlphabet.
func isCrockfordByte(c byte) bool {
	c = foldByte(c)
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'z':
		return c != 'i' && c != 'l' && c != 'o' && c != 'u'
	default:
		return false
	}
}

// Error implements the error interface for InvalidPublisherIDLengthError.
func (e *InvalidPublisherIDLengthError) Error() string {
	return fmt.Sprintf("invalid publisher id %q: expected length of %d, got %d", e.Value, PublisherIDLength, len(e.Value))
}

// Unwrap returns ErrInvalidLength for errors.Is() compatibility.
func (e *InvalidPublisherIDLengthError) Unwrap() error { return ErrInvalidLength }

// Error implements the error interface for InvalidPublisherIDCharactersError.
func (e *InvalidPublisherIDCharactersError) Error() string {
	return fmt.Sprintf("invalid publisher id %q: expected Crockford Base32 characters (A-Z, 0-9 except I, L, O, U)", e.Value)
}

// Unwrap returns ErrInvalidCharacters for errors.Is() compatibility.
func (e *InvalidPublisherIDCharactersError) Unwrap() error { return ErrInvalidCharacters }
