// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Both directions use github.com/go-audio/wav. Integer PCM at 8, 16, 24 and
// 32 bits is supported, in any channel count and sample rate.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float64, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder returns an audio.Source that provides samples as float64
// values in the range [-1.0, 1.0). Readers that cannot seek are buffered in
// memory first.
//
// # Writing WAV Files
//
//	format, _ := audio.DeriveLinearPCM(44100, 2, 16)
//	sink, err := wav.Encoder{}.Encode(file, format)
//	err = sink.Write(intBuffer)
//	err = sink.Close() // rewrites the header sizes
//
// Sinks take signed integers. 8-bit samples are stored unsigned, as WAV
// requires, and Format reports them without FlagIsSignedInteger.
//
// # Error Handling
//
// Decoder errors wrap audio.ErrUnsupportedFormat together with one of:
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedEncoding: float or compressed WAV
//   - ErrUnsupportedBitDepth: a width other than 8, 16, 24 or 32
//   - ErrUnsupportedWavChunks: no data chunk
//
// Encoder.Supports returns audio.ErrIncompatibleFormats for anything other
// than integer PCM. Samples always land on disk little-endian.
package wav
