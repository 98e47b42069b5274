// SPDX-License-Identifier: MPL-2.0

// Package codec provides pfname's CBOR encoding configuration.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding and no indefinite-length items, so the same
// records always produce identical bytes. Types implementing
// encoding.TextMarshaler, such as identity.PublisherID and
// identity.PackageFamilyName, are written as CBOR text strings in their
// canonical form and read back through their parse operations.
//
// Records carry `json` struct tags only. fxamacker/cbor falls back to them
// when `cbor` tags are absent, so one tag set controls field naming and
// omitempty for JSON, TOML, YAML and CBOR output alike.
package codec
