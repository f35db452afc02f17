// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/utils"
)

const (
	// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
	channels   = 2
	frameBytes = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	// Length is the decoded size in bytes, or negative when unknown.
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte

	// bytes of a frame split across two reads
	pending [frameBytes]byte
	npend   int
	eof     bool
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   channels,
		buf:        make([]byte, 8192),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // return sample capacity, not bytes

func (s *source) Format() audio.Format {
	return audio.CompressedFormat(audio.FormatMPEGLayer3, float64(s.sampleRate), s.channels)
}

func (s *source) Frames() int64 {
	if n := s.dec.Length(); n >= 0 {
		return n / frameBytes
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

	// Each sample is 2 bytes
	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]

	have := copy(buf, s.pending[:s.npend])
	s.npend = 0

	var err error
	for have < need && err == nil {
		var n int
		n, err = s.dec.Read(buf[have:])
		have += n

		if n == 0 || have%frameBytes == 0 {
			break
		}
	}

	whole := have - have%frameBytes
	s.npend = copy(s.pending[:], buf[whole:have])

	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
	}
	if err != nil {
		s.eof = true
		if whole == 0 {
			return 0, io.EOF
		}
	}

	samples := whole / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(buf[2*i:]))
		dst[i] = utils.PCMToFloat(int(v), 16)
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, err)
	}

	return newSource(dec), nil
}
