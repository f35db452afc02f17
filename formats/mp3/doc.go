// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
// Encoding is not supported.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float64, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: float64 in range [-1.0, 1.0)
//   - Channels: always 2, mono streams are duplicated by go-mp3
//   - Sample rate: as stored in the stream
//
// Source.Format reports the compressed stream (".mp3"). The length in frames
// is only known when the input implements io.Seeker.
package mp3
