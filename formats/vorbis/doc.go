// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format. Encoding is
// not supported.
//
// # Decoding Vorbis Files
//
//	file, _ := os.Open("audio.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float64, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Channel Layout
//
// Samples are interleaved in Vorbis channel order:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// Decoded values are passed through unchanged and may slightly exceed
// [-1.0, 1.0]; quantization clamps them.
package vorbis
