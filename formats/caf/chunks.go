// SPDX-License-Identifier: EPL-2.0

package caf

import (
	"encoding/binary"
	"io"

	"github.com/ik5/audconv/audio"
)

var (
	fileType  = [4]byte{'c', 'a', 'f', 'f'}
	chunkDesc = [4]byte{'d', 'e', 's', 'c'}
	chunkData = [4]byte{'d', 'a', 't', 'a'}
)

const (
	fileVersion = 1

	// 'desc' format flags for linear PCM
	flagIsFloat        = 1 << 0
	flagIsLittleEndian = 1 << 1

	descSize = 32

	// A data chunk size of -1 means the audio runs to the end of the file.
	sizeUnknown = -1

	// fileHeader + desc chunk header + desc
	dataChunkOffset = 8 + 12 + descSize
	// data chunk header + edit count
	headerSize = dataChunkOffset + 12 + 4
)

type fileHeader struct {
	FileType    [4]byte
	FileVersion uint16
	FileFlags   uint16
}

type chunkHeader struct {
	ChunkType [4]byte
	ChunkSize int64
}

// audioDescription is the body of the 'desc' chunk.
type audioDescription struct {
	SampleRate       float64
	FormatID         audio.FormatID
	FormatFlags      uint32
	BytesPerPacket   uint32
	FramesPerPacket  uint32
	ChannelsPerFrame uint32
	BitsPerChannel   uint32
}

// All CAF header fields are big-endian regardless of the sample byte order.

func (h *fileHeader) decode(r io.Reader) error       { return binary.Read(r, binary.BigEndian, h) }
func (h *fileHeader) encode(w io.Writer) error       { return binary.Write(w, binary.BigEndian, h) }
func (c *chunkHeader) decode(r io.Reader) error      { return binary.Read(r, binary.BigEndian, c) }
func (c *chunkHeader) encode(w io.Writer) error      { return binary.Write(w, binary.BigEndian, c) }
func (d *audioDescription) decode(r io.Reader) error { return binary.Read(r, binary.BigEndian, d) }
func (d *audioDescription) encode(w io.Writer) error { return binary.Write(w, binary.BigEndian, d) }

// format converts the description into an audio.Format.
func (d audioDescription) format() audio.Format {
	if d.FormatID != audio.FormatLinearPCM {
		return audio.CompressedFormat(d.FormatID, d.SampleRate, int(d.ChannelsPerFrame))
	}

	var flags audio.FormatFlags
	if d.FormatFlags&flagIsFloat != 0 {
		flags |= audio.FlagIsFloat
	} else {
		flags |= audio.FlagIsSignedInteger
	}
	if d.FormatFlags&flagIsLittleEndian == 0 {
		flags |= audio.FlagIsBigEndian
	}

	return audio.PCMFormat(d.SampleRate, int(d.ChannelsPerFrame), int(d.BitsPerChannel), flags)
}

// describe builds the 'desc' body for little-endian integer PCM.
func describe(f audio.Format) audioDescription {
	bytesPerFrame := f.ChannelCount * f.BitsPerChannel / 8

	return audioDescription{
		SampleRate:       f.SampleRate,
		FormatID:         audio.FormatLinearPCM,
		FormatFlags:      flagIsLittleEndian,
		BytesPerPacket:   uint32(bytesPerFrame),
		FramesPerPacket:  1,
		ChannelsPerFrame: uint32(f.ChannelCount),
		BitsPerChannel:   uint32(f.BitsPerChannel),
	}
}
