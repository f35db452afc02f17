// SPDX-License-Identifier: EPL-2.0

package caf

import "errors"

var (
	// ErrNotCafFile indicates the input does not start with a CAF file header
	ErrNotCafFile = errors.New("not a CAF file")

	// ErrMissingChunk indicates the 'desc' or 'data' chunk is absent or out of order
	ErrMissingChunk = errors.New("missing CAF chunk")

	// ErrUnsupportedEncoding indicates a sample encoding other than linear PCM
	ErrUnsupportedEncoding = errors.New("unsupported CAF encoding")

	// ErrUnsupportedLayout indicates an unpacked, multi-frame or zero channel layout
	ErrUnsupportedLayout = errors.New("unsupported CAF layout")
)
