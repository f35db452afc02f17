// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audconv/audio"
)

// Encoder writes integer PCM WAV files.
type Encoder struct{}

func (Encoder) Supports(f audio.Format) error {
	switch {
	case !f.IsPCM():
		return fmt.Errorf("%w: wav cannot carry %q", audio.ErrIncompatibleFormats, f.FormatID)
	case f.IsFloat():
		return fmt.Errorf("%w: wav encoder writes integer samples only", audio.ErrIncompatibleFormats)
	case audio.ValidateBitDepth(f.BitsPerChannel) != nil:
		return fmt.Errorf("%w: wav cannot store %d-bit samples", audio.ErrIncompatibleFormats, f.BitsPerChannel)
	}

	return nil
}

func (e Encoder) Encode(w io.WriteSeeker, f audio.Format) (audio.Sink, error) {
	if err := e.Supports(f); err != nil {
		return nil, err
	}

	return &sink{
		enc:    wav.NewEncoder(w, int(f.SampleRate), f.BitsPerChannel, f.ChannelCount, formatPCM),
		format: NativeFormat(f.SampleRate, f.ChannelCount, f.BitsPerChannel),
		goFormat: &goaudio.Format{
			NumChannels: f.ChannelCount,
			SampleRate:  int(f.SampleRate),
		},
	}, nil
}

type sink struct {
	enc      *wav.Encoder
	format   audio.Format
	goFormat *goaudio.Format
	scratch  goaudio.IntBuffer
	unsigned []int
	wrote    bool
}

func (s *sink) Format() audio.Format { return s.format }

func (s *sink) Write(buf *goaudio.IntBuffer) error {
	if len(buf.Data)%s.format.ChannelCount != 0 {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, audio.ErrInvalidDstSize)
	}

	data := buf.Data

	// 8-bit WAV is unsigned on disk
	if s.format.BitsPerChannel == 8 {
		if cap(s.unsigned) < len(data) {
			s.unsigned = make([]int, len(data))
		}
		out := s.unsigned[:len(data)]
		for i, v := range data {
			out[i] = v + 128
		}
		data = out
	}

	s.scratch.Format = s.goFormat
	s.scratch.SourceBitDepth = s.format.BitsPerChannel
	s.scratch.Data = data

	if err := s.enc.Write(&s.scratch); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, err)
	}
	s.wrote = true

	return nil
}

func (s *sink) Close() error {
	// The header is only emitted on the first write
	if !s.wrote {
		if err := s.Write(&goaudio.IntBuffer{}); err != nil {
			return err
		}
	}

	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, err)
	}

	return nil
}
