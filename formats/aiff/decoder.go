// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/internal/pcmsource"
	"github.com/ik5/audconv/internal/seekable"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// signed8 folds a byte read as unsigned back into a signed 8-bit sample.
func signed8(v int) int {
	if v > 127 {
		return v - 256
	}
	return v
}

func newSource(dec aiffReader, bits int, frames int64) (*pcmsource.Source, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, ErrUnsupportedAiffLayout)
	}

	var adjust func(int) int
	if bits == 8 {
		adjust = signed8
	}

	native := NativeFormat(float64(format.SampleRate), format.NumChannels, bits)

	return pcmsource.New(dec, native, frames, adjust), nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, err := seekable.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
	}

	// IsValidFile rejects zero-length files, so validate the header here
	dec := aiff.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", audio.ErrUnsupportedFormat, ErrNotAiffFile, err)
	}
	if dec.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, ErrNotAiffFile)
	}
	if dec.NumChans < 1 || int(dec.NumChans) > audio.MaxNativeChannels {
		return nil, fmt.Errorf("%w: %w (%d channels)", audio.ErrUnsupportedFormat, ErrUnsupportedAiffLayout, dec.NumChans)
	}
	switch string(dec.Encoding[:]) {
	case "\x00\x00\x00\x00", "NONE", "sowt":
	default:
		return nil, fmt.Errorf("%w: %w (%q)", audio.ErrUnsupportedFormat, ErrUnsupportedAiffLayout, dec.Encoding[:])
	}

	bits := int(dec.BitDepth)
	if audio.ValidateBitDepth(bits) != nil {
		return nil, fmt.Errorf("%w: %w (%d)", audio.ErrUnsupportedFormat, ErrUnsupportedBitDepth, bits)
	}

	return newSource(dec, bits, int64(dec.NumSampleFrames))
}

// NativeFormat describes integer PCM as AIFF stores it: signed big-endian.
func NativeFormat(sampleRate float64, channels, bits int) audio.Format {
	return audio.PCMFormat(sampleRate, channels, bits, audio.FlagIsSignedInteger|audio.FlagIsBigEndian)
}
