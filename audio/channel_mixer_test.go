// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
)

// channelSource emits value (channel+1)/10 on every channel.
func channelSource(channels, frames int) *mockSource {
	return newMockSource(8000, channels, frames, func(_ int, channel int) float64 {
		return float64(channel+1) / 10
	})
}

func TestChannelMixer_Policies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int
		out  int
		want []float64 // one output frame
	}{
		{"mono passthrough", 1, 1, []float64{0.1}},
		{"stereo to mono", 2, 1, []float64{0.15}},
		{"quad to mono", 4, 1, []float64{0.25}},
		{"mono to stereo", 1, 2, []float64{0.1, 0.1}},
		{"mono to 5.1", 1, 6, []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1}},
		{"stereo to quad", 2, 4, []float64{0.1, 0.2, 0.1, 0.2}},
		{"stereo to 3", 2, 3, []float64{0.1, 0.2, 0.1}},
		{"quad to stereo", 4, 2, []float64{0.2, 0.3}},
		{"5ch to stereo", 5, 2, []float64{0.3, 0.3}},
		{"6ch to 4", 6, 4, []float64{0.3, 0.4, 0.3, 0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mixer := NewChannelMixer(channelSource(tt.in, 10), tt.out)
			if mixer.Channels() != tt.out {
				t.Fatalf("Channels() = %d, want %d", mixer.Channels(), tt.out)
			}

			samples, err := readAll(mixer, 4*tt.out)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if len(samples) != 10*tt.out {
				t.Fatalf("read %d samples, want %d", len(samples), 10*tt.out)
			}

			for f := range 10 {
				for c, want := range tt.want {
					got := samples[f*tt.out+c]
					if math.Abs(got-want) > 1e-12 {
						t.Fatalf("frame %d channel %d = %v, want %v", f, c, got, want)
					}
				}
			}
		})
	}
}

func TestChannelMixer_MonoDuplicationIsExact(t *testing.T) {
	t.Parallel()

	src := newSineSource(44100, 1, 1000, 440)
	mixer := NewChannelMixer(src, 2)

	samples, err := readAll(mixer, 512)
	if err != nil {
		t.Fatal(err)
	}

	for f := range len(samples) / 2 {
		if samples[2*f] != samples[2*f+1] {
			t.Fatalf("frame %d: left %v != right %v", f, samples[2*f], samples[2*f+1])
		}
	}
}

func TestChannelMixer_Metadata(t *testing.T) {
	t.Parallel()

	src := newSilentSource(22050, 2, 50)
	mixer := NewMonoMixer(src)

	if mixer.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", mixer.SampleRate())
	}
	if mixer.Frames() != 50 {
		t.Errorf("Frames() = %d, want 50", mixer.Frames())
	}

	f := mixer.Format()
	if f.ChannelCount != 1 || f.BytesPerFrame != 2 {
		t.Errorf("Format() = %+v, want mono 16-bit", f)
	}
}

func TestChannelMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewChannelMixer(newSilentSource(8000, 2, 3), 1)

	buf := make([]float64, 10)
	n, err := mixer.ReadSamples(buf)
	if n != 3 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 3, io.EOF", n, err)
	}

	n, err = mixer.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("second ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestChannelMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewChannelMixer(newSilentSource(8000, 2, 3), 1)

	n, err := mixer.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestChannelMixer_InvalidDstSize(t *testing.T) {
	t.Parallel()

	mixer := NewChannelMixer(newSilentSource(8000, 1, 3), 2)

	if _, err := mixer.ReadSamples(make([]float64, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestChannelMixer_LargeBuffer(t *testing.T) {
	t.Parallel()

	// Larger than the initial scratch buffer
	mixer := NewChannelMixer(newConstantSource(8000, 8, 20000, 0.25), 2)

	buf := make([]float64, 2*20000)
	n, err := mixer.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatal(err)
	}
	if n != len(buf) {
		t.Errorf("ReadSamples() n = %d, want %d", n, len(buf))
	}
	if buf[len(buf)-1] != 0.25 {
		t.Errorf("last sample = %v, want 0.25", buf[len(buf)-1])
	}
}

// BenchmarkChannelMixer_StereoToMono benchmarks the common downmix
func BenchmarkChannelMixer_StereoToMono(b *testing.B) {
	src := newSineSource(44100, 2, 1<<30, 440.0)
	mixer := NewMonoMixer(src)
	buf := make([]float64, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = mixer.ReadSamples(buf)
	}
}

// BenchmarkChannelMixer_MonoToStereo benchmarks channel duplication
func BenchmarkChannelMixer_MonoToStereo(b *testing.B) {
	src := newSineSource(44100, 1, 1<<30, 440.0)
	mixer := NewChannelMixer(src, 2)
	buf := make([]float64, 4096)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = mixer.ReadSamples(buf)
	}
}
