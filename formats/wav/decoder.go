// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/internal/pcmsource"
	"github.com/ik5/audconv/internal/seekable"
)

// WAVE_FORMAT_PCM and WAVE_FORMAT_EXTENSIBLE
const (
	formatPCM        = 0x0001
	formatExtensible = 0xFFFE
)

// unsigned8 maps the unsigned 8-bit storage to a signed sample.
func unsigned8(v int) int { return v - 128 }

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, err := seekable.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
	}

	// IsValidFile rejects a data chunk of zero length
	dec := wav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", audio.ErrUnsupportedFormat, ErrNotWavFile, err)
	}
	if dec.NumChans < 1 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, ErrNotWavFile)
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: %w (format tag %#04x)", audio.ErrUnsupportedFormat, ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	bits := int(dec.BitDepth)
	if audio.ValidateBitDepth(bits) != nil {
		return nil, fmt.Errorf("%w: %w (%d)", audio.ErrUnsupportedFormat, ErrUnsupportedBitDepth, bits)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", audio.ErrUnsupportedFormat, ErrUnsupportedWavChunks, err)
	}

	format := NativeFormat(float64(dec.SampleRate), int(dec.NumChans), bits)

	frames := int64(dec.PCMSize) / int64(format.BytesPerFrame)

	var adjust func(int) int
	if bits == 8 {
		adjust = unsigned8
	}

	return pcmsource.New(dec, format, frames, adjust), nil
}

// NativeFormat describes integer PCM as WAV stores it: little-endian, signed
// except at 8 bits.
func NativeFormat(sampleRate float64, channels, bits int) audio.Format {
	flags := audio.FlagIsSignedInteger
	if bits == 8 {
		flags = 0
	}

	return audio.PCMFormat(sampleRate, channels, bits, flags)
}
