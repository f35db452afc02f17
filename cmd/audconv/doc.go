// SPDX-License-Identifier: EPL-2.0

// Command audconv converts audio files from the shell.
//
//	audconv convert speech.mp3 speech.wav --rate 16000 --channels 1
//	audconv inspect speech.wav
//	audconv formats
//	audconv config sample > audconv.toml
//
// A preset given with --config supplies defaults for convert; flags win over
// the preset.
package main
