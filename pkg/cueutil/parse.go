// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Document is a user CUE file unified with one definition of an embedded
// schema. Validation is deferred to Decode or DecodePartial.
type Document struct {
	value    cue.Value
	filename string
}

// Compile checks the size of data, compiles it next to schema and unifies it
// with the schema definition (for example "#Batch"). Syntax errors in data are
// reported with the document filename; problems with schema itself are
// internal errors.
func Compile(schema string, definition string, data []byte, opts ...Option) (*Document, error) {
	o := resolveOptions(opts)

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	def := ctx.CompileString(schema).LookupPath(cue.ParsePath(definition))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("internal error: schema definition %s: %w", definition, err)
	}

	user := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := user.Err(); err != nil {
		return nil, FormatError(err, o.filename)
	}

	return &Document{value: def.Unify(user), filename: o.filename}, nil
}

// Decode requires every field to be concrete and decodes the document into v.
func (d *Document) Decode(v any) error {
	return d.decode(v, cue.Concrete(true))
}

// DecodePartial decodes the document into v, tolerating fields the document
// leaves unset. Schema violations are still errors.
func (d *Document) DecodePartial(v any) error {
	return d.decode(v, cue.Concrete(false))
}

func (d *Document) decode(v any, concreteness cue.Option) error {
	if err := d.value.Validate(concreteness); err != nil {
		return FormatError(err, d.filename)
	}
	if err := d.value.Decode(v); err != nil {
		return FormatError(err, d.filename)
	}
	return nil
}

// Decode compiles data against the schema definition and decodes a fully
// concrete T from it.
func Decode[T any](schema string, definition string, data []byte, opts ...Option) (*T, error) {
	doc, err := Compile(schema, definition, data, opts...)
	if err != nil {
		return nil, err
	}

	var out T
	if err := doc.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
