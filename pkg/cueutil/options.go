// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the CUE documents pfname reads (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	// Option adjusts how Compile reads a document.
	Option func(*compileOptions)

	compileOptions struct {
		maxFileSize int64
		filename    string
	}
)

// WithMaxFileSize rejects documents larger than size bytes. Values below 1
// keep DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *compileOptions) {
		if size > 0 {
			o.maxFileSize = size
		}
	}
}

// WithFilename names the document in positions and error messages.
func WithFilename(name string) Option {
	return func(o *compileOptions) {
		o.filename = name
	}
}

func resolveOptions(opts []Option) compileOptions {
	o := compileOptions{maxFileSize: DefaultMaxFileSize, filename: "<input>"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.filename == "" {
		o.filename = "<input>"
	}
	return o
}
