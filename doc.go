// SPDX-License-Identifier: EPL-2.0

// Package audconv converts audio files between containers and PCM layouts.
//
// Convert is the one-call entry point:
//
//	cfg := converter.DefaultConfig()
//	cfg.InputFilePath = "speech.mp3"
//	cfg.OutputFilePath = "speech.caf"
//	cfg.OutputSampleRate = 16000
//	cfg.OutputNumberChannels = 1
//
//	ok, err := audconv.Convert(ctx, cfg)
//
// # Formats
//
// Inputs are detected by their magic bytes, not by extension:
//   - CAF, WAV and AIFF linear PCM (read and write)
//   - MP3 via github.com/hajimehoshi/go-mp3 (read)
//   - Ogg Vorbis via github.com/jfreymuth/oggvorbis (read)
//   - FLAC via github.com/mewkiz/flac (read)
//
// Outputs are integer linear PCM at 8, 16, 24 or 32 bits. Asking for a
// compressed encoding fails with audio.ErrIncompatibleFormats before any
// file is created.
//
// # Packages
//
//   - audio: format descriptions, the Source and Sink interfaces, the
//     resampler and channel mixer
//   - formats: the container decoders and encoders and a ready Registry
//   - converter: the conversion state machine, progress and error kinds
//
// The audconv command in cmd/audconv wraps all of this for the shell.
package audconv
