// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/utils"
)

// Codec moves audio between a container's representation and the
// intermediate linear PCM format.
type Codec interface {
	DecodeToIntermediate(src audio.Source, intermediate audio.Format) (DecodeSession, error)
	EncodeFromIntermediate(w io.WriteSeeker, intermediate audio.Format, target Target) (EncodeSession, error)
}

// DecodeSession yields intermediate frames.
type DecodeSession interface {
	// ReadFrames fills chunk. A short count comes only with eos set.
	ReadFrames(chunk *Chunk) (frames int, eos bool, err error)
	// Frames is the expected output length, or -1.
	Frames() int64
	Close() error
}

// EncodeSession stores intermediate frames in a container.
type EncodeSession interface {
	// Format is the stream as written to disk.
	Format() audio.Format
	WriteFrames(chunk *Chunk, frames int) error
	// Close commits the container headers.
	Close() error
}

// Chunk is a reusable buffer of interleaved intermediate frames.
type Chunk struct {
	buf      *goaudio.IntBuffer
	channels int
}

// NewChunk allocates room for frames frames of f.
func NewChunk(f audio.Format, frames int) *Chunk {
	return &Chunk{
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: f.ChannelCount,
				SampleRate:  int(f.SampleRate),
			},
			Data:           make([]int, frames*f.ChannelCount),
			SourceBitDepth: f.BitsPerChannel,
		},
		channels: f.ChannelCount,
	}
}

// Capacity in frames.
func (c *Chunk) Capacity() int { return len(c.buf.Data) / c.channels }

func (c *Chunk) Channels() int { return c.channels }

// Samples returns the interleaved samples of the first frames frames.
func (c *Chunk) Samples(frames int) []int {
	return c.buf.Data[:frames*c.channels]
}

// Buffer returns a go-audio view of the first frames frames.
func (c *Chunk) Buffer(frames int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format:         c.buf.Format,
		Data:           c.Samples(frames),
		SourceBitDepth: c.buf.SourceBitDepth,
	}
}

// RegistryCodec is the default Codec: decoding goes through the audio
// processing chain, encoding through the encoders of Registry.
type RegistryCodec struct {
	Registry *audio.Registry
}

// Chain adapts src to the rate and channel count of intermediate. Channels
// are reduced before resampling and expanded after it, so the resampler
// always works on the smaller layout.
func Chain(src audio.Source, intermediate audio.Format) audio.Source {
	rate := int(intermediate.SampleRate)
	channels := intermediate.ChannelCount

	out := src
	if channels < out.Channels() {
		out = audio.NewChannelMixer(out, channels)
	}
	if rate != out.SampleRate() {
		out = audio.NewResampler(out, rate)
	}
	if channels != out.Channels() {
		out = audio.NewChannelMixer(out, channels)
	}

	return out
}

func (c RegistryCodec) DecodeToIntermediate(src audio.Source, intermediate audio.Format) (DecodeSession, error) {
	if !intermediate.IsPCM() || intermediate.IsFloat() {
		return nil, fmt.Errorf("%w: intermediate must be integer PCM, got %v", audio.ErrIncompatibleFormats, intermediate)
	}
	if err := audio.ValidateBitDepth(intermediate.BitsPerChannel); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIncompatibleFormats, err)
	}
	if src.Channels() < 1 || src.SampleRate() < 1 {
		return nil, fmt.Errorf("%w: source reports %d Hz %d channels", audio.ErrIncompatibleFormats,
			src.SampleRate(), src.Channels())
	}

	return &pcmDecodeSession{
		src:      Chain(src, intermediate),
		bits:     intermediate.BitsPerChannel,
		channels: intermediate.ChannelCount,
	}, nil
}

func (c RegistryCodec) EncodeFromIntermediate(w io.WriteSeeker, intermediate audio.Format, target Target) (EncodeSession, error) {
	enc, ok := c.Registry.Encoder(target.FileType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnsupportedContainer, target.FileType.Name())
	}

	// Compressed targets need a Codec of their own
	if target.FormatID != audio.FormatLinearPCM {
		return nil, fmt.Errorf("%w: no %s encode session", audio.ErrIncompatibleFormats, target)
	}

	sink, err := enc.Encode(w, intermediate)
	if err != nil {
		return nil, err
	}

	return &sinkSession{sink: sink}, nil
}

// maxEmptyReads bounds consecutive reads that return neither data nor an error.
const maxEmptyReads = 100

// pcmDecodeSession quantizes the float chain output into the chunk.
type pcmDecodeSession struct {
	src      audio.Source
	bits     int
	channels int
	buf      []float64
	eos      bool
}

func (s *pcmDecodeSession) Frames() int64 { return audio.Frames(s.src) }
func (s *pcmDecodeSession) Close() error  { return s.src.Close() }

func (s *pcmDecodeSession) ReadFrames(chunk *Chunk) (int, bool, error) {
	if chunk.Channels() != s.channels {
		return 0, false, fmt.Errorf("%w: chunk has %d channels, want %d", audio.ErrReadFailure, chunk.Channels(), s.channels)
	}
	if s.eos {
		return 0, true, nil
	}

	want := chunk.Capacity() * s.channels
	if cap(s.buf) < want {
		s.buf = make([]float64, want)
	}
	buf := s.buf[:want]
	data := chunk.Samples(chunk.Capacity())

	got, empty := 0, 0
	for got < want {
		n, err := s.src.ReadSamples(buf[got:])

		for i, x := range buf[got : got+n] {
			data[got+i] = utils.FloatToPCM(x, s.bits)
		}
		got += n

		if errors.Is(err, io.EOF) {
			s.eos = true
			break
		}
		if err != nil {
			if !errors.Is(err, audio.ErrReadFailure) {
				err = fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
			}
			return 0, false, err
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return 0, false, fmt.Errorf("%w: %w", audio.ErrReadFailure, io.ErrNoProgress)
			}
			continue
		}
		empty = 0
	}

	return got / s.channels, s.eos, nil
}

// sinkSession adapts an audio.Sink to EncodeSession.
type sinkSession struct {
	sink audio.Sink
}

func (s *sinkSession) Format() audio.Format { return s.sink.Format() }
func (s *sinkSession) Close() error         { return s.sink.Close() }

func (s *sinkSession) WriteFrames(chunk *Chunk, frames int) error {
	if frames < 0 || frames > chunk.Capacity() {
		return fmt.Errorf("%w: %d frames from a chunk of %d", audio.ErrWriteFailure, frames, chunk.Capacity())
	}

	return s.sink.Write(chunk.Buffer(frames))
}
