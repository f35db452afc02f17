// SPDX-License-Identifier: EPL-2.0

// Package pcmsource turns a go-audio integer PCM reader into an audio.Source.
package pcmsource

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/utils"
)

// Reader is the part of the go-audio wav and aiff decoders this package uses.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source normalizes integer samples from a Reader into float64.
type Source struct {
	dec    Reader
	format audio.Format
	frames int64
	adjust func(int) int

	data []int
	view goaudio.IntBuffer
	done bool
}

// New builds a Source. frames is the declared length or -1. adjust, if not
// nil, maps each raw value to a signed sample before normalization.
func New(dec Reader, format audio.Format, frames int64, adjust func(int) int) *Source {
	return &Source{
		dec:    dec,
		format: format,
		frames: frames,
		adjust: adjust,
		data:   make([]int, 4096),
		view: goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: format.ChannelCount,
				SampleRate:  int(format.SampleRate),
			},
			SourceBitDepth: format.BitsPerChannel,
		},
	}
}

func (s *Source) SampleRate() int      { return int(s.format.SampleRate) }
func (s *Source) Channels() int        { return s.format.ChannelCount }
func (s *Source) Format() audio.Format { return s.format }
func (s *Source) Frames() int64        { return s.frames }
func (s *Source) BufSize() int         { return cap(s.data) }
func (s *Source) Close() error         { return nil }

// fill reads until data is full or the reader is drained.
func (s *Source) fill(data []int) (int, error) {
	got := 0

	for got < len(data) && !s.done {
		s.view.Data = data[got:]

		n, err := s.dec.PCMBuffer(&s.view)
		got += n

		if err == io.EOF || (err == nil && n == 0) {
			s.done = true
			break
		}
		if err != nil {
			return got, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
		}
	}

	return got, nil
}

func (s *Source) ReadSamples(dst []float64) (int, error) {
	channels := s.format.ChannelCount
	want := len(dst) - len(dst)%channels
	if want == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.data) < want {
		s.data = make([]int, want)
	}
	data := s.data[:want]

	n, err := s.fill(data)
	if err != nil {
		return 0, err
	}

	// A trailing partial frame is never emitted
	n -= n % channels
	if n == 0 {
		return 0, io.EOF
	}

	bits := s.format.BitsPerChannel
	for i, v := range data[:n] {
		if s.adjust != nil {
			v = s.adjust(v)
		}
		dst[i] = utils.PCMToFloat(v, bits)
	}

	return n, nil
}
