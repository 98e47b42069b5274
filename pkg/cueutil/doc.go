// SPDX-License-Identifier: MPL-2.0

// Package cueutil reads user CUE documents against embedded schemas.
//
// Compile unifies a document with one schema definition. Decode then demands
// a fully concrete value, while DecodePartial accepts documents that leave
// optional settings unset, as config files do:
//
//	//go:embed batch_schema.cue
//	var batchSchema string
//
//	batch, err := cueutil.Decode[batchFile](batchSchema, "#Batch", data,
//	    cueutil.WithFilename(path),
//	    cueutil.WithMaxFileSize(limit),
//	)
//
// Errors name the file and the JSON path of the offending field, for example
// "identities.cue: identities[2].name: invalid value".
package cueutil
