// SPDX-License-Identifier: MPL-2.0

// Package identity derives Publisher Ids and Package Family Names.
//
// A Publisher Id is a 13-character Crockford Base32 code computed from the
// publisher string of a package identity (usually a distinguished name such as
// "CN=Contoso, O=Contoso Ltd, C=US"). A Package Family Name combines a package
// name with that code as "<name>_<publisherid>".
//
// Derivation is offline and deterministic: the publisher string is encoded as
// UTF-16LE, hashed with SHA-256, truncated to the first 8 bytes of the digest
// and encoded with the lowercase Crockford alphabet.
//
//	pfn := identity.NewPackageFamilyName("Microsoft.PowerShell",
//		"CN=Microsoft Corporation, O=Microsoft Corporation, L=Redmond, S=Washington, C=US")
//	fmt.Println(pfn) // Microsoft.PowerShell_8wekyb3d8bbwe
//
// Both value types store their text verbatim and compare case-insensitively
// (ASCII only). Equality, ordering and hashing all go through the same folding
// helpers, so values that are Equal always produce the same Hash and Key. The
// built-in == operator compares the stored bytes and is therefore
// case-sensitive; use Equal, Compare or Key instead.
//
// This package is a leaf dependency: it imports only the standard library.
package identity
