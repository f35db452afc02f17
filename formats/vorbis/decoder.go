// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audconv/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of float32 values written, not frames.
	Read([]float32) (int, error)
	// Length is the stream length in frames, 0 when unknown.
	Length() int64
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frameBuf   []float32 // buffer for reading from decoder
	eof        bool
}

func newSource(dec oggReader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frameBuf:   make([]float32, 4096),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.frameBuf) }

func (s *source) Format() audio.Format {
	return audio.CompressedFormat(audio.FormatVorbis, float64(s.sampleRate), s.channels)
}

func (s *source) Frames() int64 {
	if n := s.dec.Length(); n > 0 {
		return n
	}
	return -1
}

func (s *source) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.frameBuf) < len(dst) {
		s.frameBuf = make([]float32, len(dst))
	}
	buf := s.frameBuf[:len(dst)]

	// Keep reading until the frame in progress is complete
	have := 0
	var err error
	for have < len(buf) && err == nil {
		var n int
		n, err = s.dec.Read(buf[have:])
		have += n

		if n == 0 || have%s.channels == 0 {
			break
		}
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
	}

	// The decoder never ends a stream on a partial frame
	have -= have % s.channels
	if err != nil {
		s.eof = true
		if have == 0 {
			return 0, io.EOF
		}
	}

	for i, v := range buf[:have] {
		dst[i] = float64(v)
	}

	return have, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, err)
	}

	return newSource(dec), nil
}
