// SPDX-License-Identifier: MPL-2.0

package identity

import (
	"errors"
	"fmt"
	"hash/maphash"
	"strings"
)

// Separator joins the package name and the Publisher Id in a Package Family Name.
const Separator = '_'

// ErrNoSeparator is the sentinel error wrapped by NoSeparatorError.
var ErrNoSeparator = errors.New("missing package family name separator")

type (
	// PackageFamilyName identifies a package family: a package name plus the
	// Publisher Id of its publisher. The canonical text form is
	// "<name>_<publisherid>".
	//
	// The name is stored verbatim. Equal, Compare, Hash and Key fold ASCII
	// case in both the name and the Publisher Id.
	//
	// A name may itself contain '_'. Such a value formats fine, but parsing
	// splits on the first '_', so ParsePackageFamilyName(x.String()) fails or
	// yields a different value. NewPackageFamilyName does not reject these
	// names.
	PackageFamilyName struct {
		name        string
		publisherID PublisherID
	}

	// NoSeparatorError is returned when a candidate Package Family Name
	// contains no '_'. It wraps ErrNoSeparator for errors.Is() compatibility.
	NoSeparatorError struct {
		Value string
	}
)

// NewPackageFamilyName builds a Package Family Name from a package name and
// the raw publisher string, deriving the Publisher Id with DerivePublisherID.
func NewPackageFamilyName(name, publisher string) PackageFamilyName {
	return PackageFamilyName{
		name:        name,
		publisherID: DerivePublisherID(publisher),
	}
}

// ParsePackageFamilyName parses the canonical "<name>_<publisherid>" form.
//
// The text is split on the first '_'. The part after it must be a valid
// Publisher Id; its ParsePublisherID error is wrapped and remains
// reachable through errors.Is and errors.As. The part before it becomes the
// name unchanged.
func ParsePackageFamilyName(s string) (PackageFamilyName, error) {
	name, rawID, found := strings.Cut(s, string(Separator))
	if !found {
		return PackageFamilyName{}, &NoSeparatorError{Value: s}
	}

	id, err := ParsePublisherID(rawID)
	if err != nil {
		return PackageFamilyName{}, fmt.Errorf("package family name %q: %w", s, err)
	}

	return PackageFamilyName{name: name, publisherID: id}, nil
}

// MustParsePackageFamilyName is like ParsePackageFamilyName but panics on
// error. Use in tests and static initialization where the input is known-valid.
func MustParsePackageFamilyName(s string) PackageFamilyName {
	pfn, err := ParsePackageFamilyName(s)
	if err != nil {
		panic(fmt.Sprintf("identity.MustParsePackageFamilyName(%q): %v", s, err))
	}
	return pfn
}

// Name returns the package name exactly as it was given.
func (f PackageFamilyName) Name() string { return f.name }

// PublisherID returns the Publisher Id part.
func (f PackageFamilyName) PublisherID() PublisherID { return f.publisherID }

// String returns "<name>_<publisherid>".
func (f PackageFamilyName) String() string {
	return f.name + string(Separator) + f.publisherID.String()
}

// Equal reports whether f and other have the same name and Publisher Id under
// ASCII case folding.
func (f PackageFamilyName) Equal(other PackageFamilyName) bool {
	return f.Compare(other) == 0
}

// Compare orders by case-folded name, then by Publisher Id.
// It returns -1, 0 or +1.
func (f PackageFamilyName) Compare(other PackageFamilyName) int {
	if c := compareFolded(f.name, other.name); c != 0 {
		return c
	}
	return f.publisherID.Compare(other.publisherID)
}

// Hash returns a hash of the case-folded name, the separator and the
// case-folded Publisher Id. Equal values hash equally for the same seed.
func (f PackageFamilyName) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for i := 0; i < len(f.name); i++ {
		_ = h.WriteByte(foldByte(f.name[i]))
	}
	_ = h.WriteByte(Separator)
	f.publisherID.writeHash(&h)
	return h.Sum64()
}

// Key returns the lower-cased canonical form, suitable as a map key.
func (f PackageFamilyName) Key() string {
	return foldString(f.name) + string(Separator) + f.publisherID.Key()
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (f PackageFamilyName) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by delegating to
// ParsePackageFamilyName.
func (f *PackageFamilyName) UnmarshalText(data []byte) error {
	parsed, err := ParsePackageFamilyName(string(data))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Error implements the error interface for NoSeparatorError.
func (e *NoSeparatorError) Error() string {
	return fmt.Sprintf("invalid package family name %q: expected <name>%c<publisherid>", e.Value, Separator)
}

// Unwrap returns ErrNoSeparator for errors.Is() compatibility.
func (e *NoSeparatorError) Unwrap() error { return ErrNoSeparator }
