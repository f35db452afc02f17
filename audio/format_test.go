// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func TestDeriveLinearPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     float64
		channels int
		bits     int
		wantErr  error
		wantBPF  int
	}{
		{"cd stereo", 44100, 2, 16, nil, 4},
		{"mono 8-bit", 8000, 1, 8, nil, 1},
		{"24-bit 5.1", 48000, 6, 24, nil, 18},
		{"32-bit", 96000, 2, 32, nil, 8},
		{"max channels", 44100, MaxChannels, 16, nil, 2 * MaxChannels},
		{"bad depth 12", 44100, 2, 12, ErrInvalidParameter, 0},
		{"bad depth 0", 44100, 2, 0, ErrInvalidParameter, 0},
		{"no channels", 44100, 0, 16, ErrInvalidParameter, 0},
		{"too many channels", 44100, MaxChannels + 1, 16, ErrInvalidParameter, 0},
		{"zero rate", 0, 2, 16, ErrInvalidParameter, 0},
		{"negative rate", -1, 2, 16, ErrInvalidParameter, 0},
		{"rate too high", MaxSampleRate + 1, 2, 16, ErrInvalidParameter, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DeriveLinearPCM(tt.rate, tt.channels, tt.bits)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DeriveLinearPCM() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DeriveLinearPCM() unexpected error = %v", err)
			}

			if got.FormatID != FormatLinearPCM {
				t.Errorf("FormatID = %v, want lpcm", got.FormatID)
			}
			if !got.IsSignedInteger() || got.IsFloat() || got.IsBigEndian() {
				t.Errorf("Flags = %b, want signed integer little-endian", got.Flags)
			}
			if got.BytesPerFrame != tt.wantBPF || got.BytesPerPacket != tt.wantBPF {
				t.Errorf("BytesPerFrame/Packet = %d/%d, want %d", got.BytesPerFrame, got.BytesPerPacket, tt.wantBPF)
			}
			if got.FramesPerPacket != 1 {
				t.Errorf("FramesPerPacket = %d, want 1", got.FramesPerPacket)
			}
		})
	}
}

func TestCompressedFormat(t *testing.T) {
	t.Parallel()

	f := CompressedFormat(FormatMPEGLayer3, 44100, 2)

	if f.IsPCM() || f.IsSignedInteger() {
		t.Error("compressed format reports PCM flags")
	}
	if f.BytesPerFrame != 0 || f.BytesPerPacket != 0 || f.FramesPerPacket != 0 {
		t.Errorf("compressed format has derived sizes: %+v", f)
	}
	if f.FrameBytes(1000) != 0 {
		t.Errorf("FrameBytes() = %d, want 0", f.FrameBytes(1000))
	}
}

func TestFormat_WithLayout(t *testing.T) {
	t.Parallel()

	f, err := DeriveLinearPCM(44100, 1, 24)
	if err != nil {
		t.Fatal(err)
	}

	g := f.WithLayout(48000, 2)

	if g.SampleRate != 48000 || g.ChannelCount != 2 || g.BytesPerFrame != 6 {
		t.Errorf("WithLayout() = %+v", g)
	}
	if f.ChannelCount != 1 {
		t.Error("WithLayout() modified the receiver")
	}
	if g.FrameBytes(10) != 60 {
		t.Errorf("FrameBytes(10) = %d, want 60", g.FrameBytes(10))
	}
}

func TestParseFormatID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    FormatID
		wantErr bool
	}{
		{"lpcm", FormatLinearPCM, false},
		{"PCM", FormatLinearPCM, false},
		{"mp3", FormatMPEGLayer3, false},
		{"aac", FormatAAC, false},
		{"aac ", FormatAAC, false},
		{"alac", FourCC([4]byte{'a', 'l', 'a', 'c'}), false},
		{"wat", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormatID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormatID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("ParseFormatID(%q) error = %v, want ErrInvalidParameter", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormatID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatID_Text(t *testing.T) {
	t.Parallel()

	var id FormatID
	if err := id.UnmarshalText([]byte("vorbis")); err != nil {
		t.Fatal(err)
	}
	if id != FormatVorbis {
		t.Errorf("UnmarshalText(vorbis) = %v", id)
	}

	text, _ := FormatAAC.MarshalText()
	if string(text) != "aac " {
		t.Errorf("MarshalText() = %q, want %q", text, "aac ")
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	f, _ := DeriveLinearPCM(44100, 2, 16)
	if got, want := f.String(), "lpcm 44100Hz 2ch 16-bit int le"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	be := PCMFormat(48000, 1, 32, FlagIsFloat|FlagIsBigEndian)
	if got, want := be.String(), "lpcm 48000Hz 1ch 32-bit float be"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	mp3 := CompressedFormat(FormatMPEGLayer3, 22050, 2)
	if got, want := mp3.String(), ".mp3 22050Hz 2ch"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
