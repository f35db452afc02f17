// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC files with github.com/mewkiz/flac.
//
// Samples are normalized by the stream's declared bit depth, so 12 and 20-bit
// streams decode as exactly as 16 and 24-bit ones. Encoding is not supported.
package flac
