// SPDX-License-Identifier: EPL-2.0

package caf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audconv/audio"
)

// Encoder writes little-endian integer PCM CAF files.
type Encoder struct{}

func (Encoder) Supports(f audio.Format) error {
	switch {
	case !f.IsPCM():
		return fmt.Errorf("%w: no %q encoder for caf", audio.ErrIncompatibleFormats, f.FormatID)
	case f.IsFloat():
		return fmt.Errorf("%w: caf output is integer PCM only", audio.ErrIncompatibleFormats)
	case audio.ValidateBitDepth(f.BitsPerChannel) != nil:
		return fmt.Errorf("%w: caf cannot store %d-bit samples", audio.ErrIncompatibleFormats, f.BitsPerChannel)
	}

	return nil
}

// Encode writes the file header right away. The data chunk size is left
// open until Close.
func (e Encoder) Encode(w io.WriteSeeker, f audio.Format) (audio.Sink, error) {
	if err := e.Supports(f); err != nil {
		return nil, err
	}

	s := &sink{
		w:      w,
		format: NativeFormat(f.SampleRate, f.ChannelCount, f.BitsPerChannel),
		width:  f.BitsPerChannel / 8,
	}

	if err := s.writeHeader(describe(f)); err != nil {
		return nil, err
	}

	return s, nil
}

// NativeFormat describes integer PCM as this package writes it: signed
// little-endian.
func NativeFormat(sampleRate float64, channels, bits int) audio.Format {
	return audio.PCMFormat(sampleRate, channels, bits, audio.FlagIsSignedInteger)
}

type sink struct {
	w      io.WriteSeeker
	format audio.Format
	width  int
	buf    []byte
	bytes  int64
}

func (s *sink) Format() audio.Format { return s.format }

func (s *sink) write(p []byte) error {
	n, err := s.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, err)
	}
	return nil
}

func (s *sink) writeHeader(desc audioDescription) error {
	var hdr bytes.Buffer
	hdr.Grow(headerSize)

	fh := fileHeader{FileType: fileType, FileVersion: fileVersion}
	descHdr := chunkHeader{ChunkType: chunkDesc, ChunkSize: descSize}
	dataHdr := chunkHeader{ChunkType: chunkData, ChunkSize: sizeUnknown}

	// bytes.Buffer writes cannot fail
	_ = fh.encode(&hdr)
	_ = descHdr.encode(&hdr)
	_ = desc.encode(&hdr)
	_ = dataHdr.encode(&hdr)
	_ = binary.Write(&hdr, binary.BigEndian, uint32(0)) // edit count

	return s.write(hdr.Bytes())
}

func (s *sink) Write(buf *goaudio.IntBuffer) error {
	if len(buf.Data)%s.format.ChannelCount != 0 {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, audio.ErrInvalidDstSize)
	}

	need := len(buf.Data) * s.width
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	out := s.buf[:need]

	switch s.width {
	case 1:
		for i, v := range buf.Data {
			out[i] = byte(int8(v))
		}
	case 2:
		for i, v := range buf.Data {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v)))
		}
	case 3:
		for i, v := range buf.Data {
			u := uint32(int32(v))
			out[3*i] = byte(u)
			out[3*i+1] = byte(u >> 8)
			out[3*i+2] = byte(u >> 16)
		}
	case 4:
		for i, v := range buf.Data {
			binary.LittleEndian.PutUint32(out[4*i:], uint32(int32(v)))
		}
	}

	if err := s.write(out); err != nil {
		return err
	}
	s.bytes += int64(need)

	return nil
}

// Close records the data chunk size and leaves the writer at the end of the
// file.
func (s *sink) Close() error {
	if _, err := s.w.Seek(dataChunkOffset+4, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, err)
	}

	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(4+s.bytes))
	if err := s.write(size[:]); err != nil {
		return err
	}

	if _, err := s.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, err)
	}

	return nil
}
