// SPDX-License-Identifier: EPL-2.0

package caf

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/utils"
)

// sampleFunc decodes one sample from the front of b.
type sampleFunc func(b []byte) float64

func sampleDecoder(f audio.Format) (sampleFunc, error) {
	var order binary.ByteOrder = binary.LittleEndian
	if f.IsBigEndian() {
		order = binary.BigEndian
	}

	if f.IsFloat() {
		switch f.BitsPerChannel {
		case 32:
			return func(b []byte) float64 { return float64(math.Float32frombits(order.Uint32(b))) }, nil
		case 64:
			return func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) }, nil
		}
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedLayout, f.BitsPerChannel)
	}

	switch f.BitsPerChannel {
	case 8:
		return func(b []byte) float64 { return utils.PCMToFloat(int(int8(b[0])), 8) }, nil
	case 16:
		return func(b []byte) float64 { return utils.PCMToFloat(int(int16(order.Uint16(b))), 16) }, nil
	case 24:
		if f.IsBigEndian() {
			return func(b []byte) float64 {
				v := int32(uint32(b[0])<<24|uint32(b[1])<<16|uint32(b[2])<<8) >> 8
				return utils.PCMToFloat(int(v), 24)
			}, nil
		}
		return func(b []byte) float64 {
			v := int32(uint32(b[2])<<24|uint32(b[1])<<16|uint32(b[0])<<8) >> 8
			return utils.PCMToFloat(int(v), 24)
		}, nil
	case 32:
		return func(b []byte) float64 { return utils.PCMToFloat(int(int32(order.Uint32(b))), 32) }, nil
	}

	return nil, fmt.Errorf("%w: %d-bit integer", ErrUnsupportedLayout, f.BitsPerChannel)
}

type source struct {
	r      io.Reader
	format audio.Format
	frames int64
	sample sampleFunc
	width  int // bytes per sample
	buf    []byte
	eof    bool
}

func (s *source) SampleRate() int      { return int(s.format.SampleRate) }
func (s *source) Channels() int        { return s.format.ChannelCount }
func (s *source) Format() audio.Format { return s.format }
func (s *source) Frames() int64        { return s.frames }
func (s *source) BufSize() int         { return cap(s.buf) / s.width }
func (s *source) Close() error         { return nil }

func (s *source) ReadSamples(dst []float64) (int, error) {
	channels := s.format.ChannelCount
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.eof {
		return 0, io.EOF
	}

	need := len(dst) * s.width
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]

	n, err := io.ReadFull(s.r, buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
	case err != nil:
		return 0, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
	}

	// A trailing partial frame is never emitted
	frameBytes := channels * s.width
	samples := (n - n%frameBytes) / s.width
	if samples == 0 {
		return 0, io.EOF
	}

	for i := range samples {
		dst[i] = s.sample(buf[i*s.width:])
	}

	return samples, nil
}

// Decoder reads linear PCM CAF files. It does not need to seek.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var hdr fileHeader
	if err := hdr.decode(br); err != nil || hdr.FileType != fileType {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, ErrNotCafFile)
	}

	var (
		desc    audioDescription
		hasDesc bool
	)

	for {
		var ch chunkHeader
		if err := ch.decode(br); err != nil {
			return nil, fmt.Errorf("%w: %w: no data chunk", audio.ErrUnsupportedFormat, ErrMissingChunk)
		}

		switch ch.ChunkType {
		case chunkDesc:
			if ch.ChunkSize != descSize {
				return nil, fmt.Errorf("%w: %w: desc size %d", audio.ErrUnsupportedFormat, ErrUnsupportedLayout, ch.ChunkSize)
			}
			if err := desc.decode(br); err != nil {
				return nil, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
			}
			hasDesc = true

		case chunkData:
			if !hasDesc {
				return nil, fmt.Errorf("%w: %w: data before desc", audio.ErrUnsupportedFormat, ErrMissingChunk)
			}
			return newSource(br, desc, ch.ChunkSize)

		default:
			if ch.ChunkSize < 0 {
				return nil, fmt.Errorf("%w: %w: %q has no size", audio.ErrUnsupportedFormat, ErrMissingChunk, ch.ChunkType)
			}
			if _, err := io.CopyN(io.Discard, br, ch.ChunkSize); err != nil {
				return nil, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
			}
		}
	}
}

func newSource(r io.Reader, desc audioDescription, size int64) (*source, error) {
	if desc.FormatID != audio.FormatLinearPCM {
		return nil, fmt.Errorf("%w: %w: %q", audio.ErrUnsupportedFormat, ErrUnsupportedEncoding, desc.FormatID)
	}

	if desc.ChannelsPerFrame > audio.MaxNativeChannels {
		return nil, fmt.Errorf("%w: %w: %d channels", audio.ErrUnsupportedFormat, ErrUnsupportedLayout, desc.ChannelsPerFrame)
	}

	format := desc.format()
	if format.ChannelCount < 1 || format.SampleRate <= 0 || desc.FramesPerPacket != 1 ||
		format.BitsPerChannel%8 != 0 || int(desc.BytesPerPacket) != format.BytesPerFrame {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, ErrUnsupportedLayout)
	}

	sample, err := sampleDecoder(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, err)
	}

	var edits uint32
	if err := binary.Read(r, binary.BigEndian, &edits); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, ErrMissingChunk)
	}

	frames := int64(-1)
	if size != sizeUnknown {
		if size < 4 {
			return nil, fmt.Errorf("%w: %w: data size %d", audio.ErrUnsupportedFormat, ErrMissingChunk, size)
		}
		audioBytes := size - 4
		frames = audioBytes / int64(format.BytesPerFrame)
		r = io.LimitReader(r, audioBytes)
	}

	width := format.BitsPerChannel / 8

	return &source{
		r:      r,
		format: format,
		frames: frames,
		sample: sample,
		width:  width,
		buf:    make([]byte, 4096*width),
	}, nil
}
