// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding.
//
// This package uses github.com/go-audio/aiff for both directions. AIFF is
// Apple's standard uncompressed audio format and stores signed big-endian
// integer PCM.
//
// # Supported Formats
//
//   - PCM 8, 16, 24 and 32-bit
//   - Mono and multi-channel
//   - Any sample rate
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples as float64 in range [-1.0, 1.0)
//	buf := make([]float64, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Encoding
//
//	sink, err := aiff.Encoder{}.Encode(file, format)
//
// The sink takes signed integers in host order and writes them big-endian.
// Close rewrites the COMM and SSND sizes.
package aiff
