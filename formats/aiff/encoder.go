// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audconv/audio"
)

// Encoder writes big-endian integer PCM AIFF files.
type Encoder struct{}

func (Encoder) Supports(f audio.Format) error {
	switch {
	case !f.IsPCM():
		return fmt.Errorf("%w: aiff cannot carry %q", audio.ErrIncompatibleFormats, f.FormatID)
	case f.IsFloat():
		return fmt.Errorf("%w: aiff stores integer samples only", audio.ErrIncompatibleFormats)
	case audio.ValidateBitDepth(f.BitsPerChannel) != nil:
		return fmt.Errorf("%w: aiff cannot store %d-bit samples", audio.ErrIncompatibleFormats, f.BitsPerChannel)
	}

	return nil
}

func (e Encoder) Encode(w io.WriteSeeker, f audio.Format) (audio.Sink, error) {
	if err := e.Supports(f); err != nil {
		return nil, err
	}

	return &sink{
		enc:    aiff.NewEncoder(w, int(f.SampleRate), f.BitsPerChannel, f.ChannelCount),
		format: NativeFormat(f.SampleRate, f.ChannelCount, f.BitsPerChannel),
		buf: goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: f.ChannelCount,
				SampleRate:  int(f.SampleRate),
			},
			SourceBitDepth: f.BitsPerChannel,
		},
	}, nil
}

type sink struct {
	enc    *aiff.Encoder
	format audio.Format
	buf    goaudio.IntBuffer
	wrote  bool
}

func (s *sink) Format() audio.Format { return s.format }

func (s *sink) Write(buf *goaudio.IntBuffer) error {
	if len(buf.Data)%s.format.ChannelCount != 0 {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, audio.ErrInvalidDstSize)
	}

	s.buf.Data = buf.Data
	if err := s.enc.Write(&s.buf); err != nil {
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
