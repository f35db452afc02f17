// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audconv/audio"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	chunk        int // max values per Read, 0 for unlimited
	length       int64
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }
func (m *mockOggVorbisReader) Length() int64   { return m.length }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf, m.samples[m.offset:])
	if m.chunk > 0 && n > m.chunk {
		n = m.chunk
	}
	m.offset += n

	return n, nil
}

func readAll(t *testing.T, src audio.Source, bufLen int) []float64 {
	t.Helper()

	buf := make([]float64, bufLen)
	var out []float64
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{[]byte("This is not Ogg Vorbis data"), {}} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))

		if !errors.Is(err, audio.ErrUnsupportedFormat) {
			t.Errorf("Decode(%q) error = %v, want ErrUnsupportedFormat", data, err)
		}
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 48000, channels: 2, length: 96000})

	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Errorf("got %d Hz %d ch, want 48000 Hz 2 ch", src.SampleRate(), src.Channels())
	}
	if src.Frames() != 96000 {
		t.Errorf("Frames() = %d, want 96000", src.Frames())
	}
	if f := src.Format(); f.FormatID != audio.FormatVorbis || f.ChannelCount != 2 {
		t.Errorf("Format() = %v, want vorbis stereo", f)
	}

	unknown := newSource(&mockOggVorbisReader{sampleRate: 48000, channels: 2})
	if unknown.Frames() != -1 {
		t.Errorf("Frames() = %d for unknown length, want -1", unknown.Frames())
	}
}

func TestSource_ReadSamples_Channels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		chunk    int
	}{
		{"mono", 1, 0},
		{"stereo", 2, 0},
		{"5.1", 6, 0},
		{"stereo split reads", 2, 3},
		{"5.1 split reads", 6, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := make([]float32, 60*tt.channels)
			for i := range samples {
				samples[i] = float32(i%17)/16 - 0.5
			}

			mock := &mockOggVorbisReader{sampleRate: 44100, channels: tt.channels, samples: samples, chunk: tt.chunk}
			got := readAll(t, newSource(mock), 8*tt.channels)

			if len(got) != len(samples) {
				t.Fatalf("read %d samples, want %d", len(got), len(samples))
			}
			for i, v := range samples {
				if got[i] != float64(v) {
					t.Fatalf("sample %d = %v, want %v", i, got[i], v)
				}
			}
		})
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 2, samples: []float32{0.1, 0.2}})

	dst := make([]float64, 4)
	if n, err := src.ReadSamples(dst); n != 2 || err != nil {
		t.Errorf("ReadSamples() = %d, %v; want 2, nil", n, err)
	}

	for range 2 {
		if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
		}
	}
}

func TestSource_ReadSamples_Errors(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 2, returnErrors: true})

	if _, err := src.ReadSamples(make([]float64, 4)); !errors.Is(err, audio.ErrReadFailure) {
		t.Errorf("ReadSamples() error = %v, want ErrReadFailure", err)
	}
	if _, err := src.ReadSamples(make([]float64, 5)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(odd) error = %v, want ErrInvalidDstSize", err)
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 44100*2)
	dst := make([]float64, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := newSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples})
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
