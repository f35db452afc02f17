// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"strings"
)

// Limits enforced on caller supplied output parameters.
const (
	MaxChannels   = 8
	MaxSampleRate = 768000

	// MaxNativeChannels bounds the channel count a decoder may report.
	MaxNativeChannels = 255
)

// FormatID is a four character code identifying a sample encoding.
type FormatID uint32

const (
	FormatLinearPCM  FormatID = 'l'<<24 | 'p'<<16 | 'c'<<8 | 'm'
	FormatMPEGLayer3 FormatID = '.'<<24 | 'm'<<16 | 'p'<<8 | '3'
	FormatVorbis     FormatID = 'v'<<24 | 'o'<<16 | 'r'<<8 | 'b'
	FormatFLAC       FormatID = 'f'<<24 | 'l'<<16 | 'a'<<8 | 'c'
	FormatAAC        FormatID = 'a'<<24 | 'a'<<16 | 'c'<<8 | ' '
	FormatOpus       FormatID = 'o'<<24 | 'p'<<16 | 'u'<<8 | 's'
	FormatALaw       FormatID = 'a'<<24 | 'l'<<16 | 'a'<<8 | 'w'
	FormatULaw       FormatID = 'u'<<24 | 'l'<<16 | 'a'<<8 | 'w'
)

var formatAliases = map[string]FormatID{
	"pcm":    FormatLinearPCM,
	"lpcm":   FormatLinearPCM,
	"mp3":    FormatMPEGLayer3,
	".mp3":   FormatMPEGLayer3,
	"vorbis": FormatVorbis,
	"vorb":   FormatVorbis,
	"flac":   FormatFLAC,
	"aac":    FormatAAC,
	"opus":   FormatOpus,
	"alaw":   FormatALaw,
	"ulaw":   FormatULaw,
}

// FourCC packs a four byte tag into a FormatID.
func FourCC(tag [4]byte) FormatID {
	return FormatID(uint32(tag[0])<<24 | uint32(tag[1])<<16 | uint32(tag[2])<<8 | uint32(tag[3]))
}

// Bytes returns the four character code.
func (id FormatID) Bytes() [4]byte {
	return [4]byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

func (id FormatID) String() string {
	b := id.Bytes()
	return string(b[:])
}

// ParseFormatID accepts a four character code or one of the common names
// ("pcm", "mp3", "aac", ...).
func ParseFormatID(s string) (FormatID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if id, ok := formatAliases[key]; ok {
		return id, nil
	}

	if len(s) == 4 {
		return FourCC([4]byte{s[0], s[1], s[2], s[3]}), nil
	}

	return 0, fmt.Errorf("%w: unknown format id %q", ErrInvalidParameter, s)
}

func (id FormatID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *FormatID) UnmarshalText(text []byte) error {
	parsed, err := ParseFormatID(string(text))
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}

// FormatFlags qualify linear PCM sample layout.
type FormatFlags uint32

const (
	FlagIsFloat FormatFlags = 1 << iota
	FlagIsBigEndian
	FlagIsSignedInteger
	FlagIsPacked
)

// Format describes one audio stream.
//
// For linear PCM BytesPerFrame is ChannelCount*BitsPerChannel/8 and every packet
// holds one frame. For compressed formats the byte layout belongs to the codec
// and the derived fields are zero.
type Format struct {
	SampleRate      float64
	ChannelCount    int
	BitsPerChannel  int
	FormatID        FormatID
	Flags           FormatFlags
	BytesPerFrame   int
	BytesPerPacket  int
	FramesPerPacket int
}

// DeriveLinearPCM builds a packed signed integer PCM format.
func DeriveLinearPCM(sampleRate float64, channels, bitDepth int) (Format, error) {
	if err := ValidateBitDepth(bitDepth); err != nil {
		return Format{}, err
	}
	if channels < 1 || channels > MaxChannels {
		return Format{}, fmt.Errorf("%w: channel count %d outside 1..%d", ErrInvalidParameter, channels, MaxChannels)
	}
	if sampleRate <= 0 || sampleRate > MaxSampleRate {
		return Format{}, fmt.Errorf("%w: sample rate %g outside (0, %d]", ErrInvalidParameter, sampleRate, MaxSampleRate)
	}

	return newPCMFormat(sampleRate, channels, bitDepth, FlagIsSignedInteger|FlagIsPacked), nil
}

// ValidateBitDepth accepts the integer PCM widths the converter can produce.
func ValidateBitDepth(bits int) error {
	switch bits {
	case 8, 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%w: bit depth %d not one of 8, 16, 24, 32", ErrInvalidParameter, bits)
}

// PCMFormat describes a decoded linear PCM stream without range checks. Decoders
// use it for whatever the file declares.
func PCMFormat(sampleRate float64, channels, bits int, flags FormatFlags) Format {
	return newPCMFormat(sampleRate, channels, bits, flags|FlagIsPacked)
}

// CompressedFormat describes an encoded stream.
func CompressedFormat(id FormatID, sampleRate float64, channels int) Format {
	return Format{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		FormatID:     id,
	}
}

func newPCMFormat(sampleRate float64, channels, bits int, flags FormatFlags) Format {
	bytesPerFrame := channels * ((bits + 7) / 8)

	return Format{
		SampleRate:      sampleRate,
		ChannelCount:    channels,
		BitsPerChannel:  bits,
		FormatID:        FormatLinearPCM,
		Flags:           flags,
		BytesPerFrame:   bytesPerFrame,
		BytesPerPacket:  bytesPerFrame,
		FramesPerPacket: 1,
	}
}

func (f Format) IsPCM() bool           { return f.FormatID == FormatLinearPCM }
func (f Format) IsFloat() bool         { return f.IsPCM() && f.Flags&FlagIsFloat != 0 }
func (f Format) IsBigEndian() bool     { return f.IsPCM() && f.Flags&FlagIsBigEndian != 0 }
func (f Format) IsSignedInteger() bool { return f.IsPCM() && f.Flags&FlagIsSignedInteger != 0 }

// WithFlags returns a copy of f with flags replaced.
func (f Format) WithFlags(flags FormatFlags) Format {
	f.Flags = flags
	return f
}

// WithLayout returns a copy of f resampled and remixed to the given rate and
// channel count, keeping the sample encoding.
func (f Format) WithLayout(sampleRate float64, channels int) Format {
	f.SampleRate = sampleRate
	f.ChannelCount = channels

	if f.IsPCM() {
		f.BytesPerFrame = channels * ((f.BitsPerChannel + 7) / 8)
		f.BytesPerPacket = f.BytesPerFrame
	}

	return f
}

// FrameBytes converts a frame count into a byte count; zero for compressed formats.
func (f Format) FrameBytes(frames int64) int64 {
	return frames * int64(f.BytesPerFrame)
}

func (f Format) String() string {
	if !f.IsPCM() {
		return fmt.Sprintf("%s %gHz %dch", f.FormatID, f.SampleRate, f.ChannelCount)
	}

	kind := "int"
	if f.IsFloat() {
		kind = "float"
	}
	endian := "le"
	if f.IsBigEndian() {
		endian = "be"
	}

	return fmt.Sprintf("lpcm %gHz %dch %d-bit %s %s", f.SampleRate, f.ChannelCount, f.BitsPerChannel, kind, endian)
}
