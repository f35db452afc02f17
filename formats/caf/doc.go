// SPDX-License-Identifier: EPL-2.0

// Package caf reads and writes Core Audio Format files.
//
// The decoder accepts linear PCM: signed integers of 8, 16, 24 and 32 bits in
// either byte order, and 32 or 64-bit floats. Chunks other than 'desc' and
// 'data' are skipped, so the input does not need to seek.
//
// The encoder writes little-endian signed integer PCM. The data chunk is
// written with an unknown size and patched when the sink is closed, which is
// why Encode takes an io.WriteSeeker.
package caf
