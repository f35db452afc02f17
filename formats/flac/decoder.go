// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameParser is the part of flac.Stream used for reading audio.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	dec        frameParser
	sampleRate int
	channels   int
	bits       int
	frames     int64

	cur *frame.Frame
	pos int // next sample index in cur
	eof bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 * s.channels }

func (s *source) Format() audio.Format {
	f := audio.CompressedFormat(audio.FormatFLAC, float64(s.sampleRate), s.channels)
	f.BitsPerChannel = s.bits
	return f
}

func (s *source) Frames() int64 {
	if s.frames > 0 {
		return s.frames
	}
	return -1
}

// Close leaves the input open; its owner closes it.
func (s *source) Close() error { return nil }

// next loads the following FLAC frame, skipping empty ones.
func (s *source) next() error {
	for {
		f, err := s.dec.ParseNext()
		if err != nil {
			return err
		}

		if len(f.Subframes) != s.channels {
			return fmt.Errorf("%w: %d subframes for %d channels", ErrInvalidFrame, len(f.Subframes), s.channels)
		}

		if int(f.BlockSize) > 0 {
			s.cur, s.pos = f, 0
			return nil
		}
	}
}

func (s *source) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n := 0
	for n < len(dst) && !s.eof {
		if s.cur == nil || s.pos >= int(s.cur.BlockSize) {
			if err := s.next(); err != nil {
				if errors.Is(err, io.EOF) {
					s.eof = true
					break
				}
				return n, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
			}
		}

		for ; s.pos < int(s.cur.BlockSize) && n < len(dst); s.pos++ {
			for _, sub := range s.cur.Subframes {
				dst[n] = utils.PCMToFloat(int(sub.Samples[s.pos]), s.bits)
				n++
			}
		}
	}

	if n == 0 {
		return 0, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, err)
	}

	info := stream.Info

	return &source{
		dec:        stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bits:       int(info.BitsPerSample),
		frames:     int64(info.NSamples),
	}, nil
}
