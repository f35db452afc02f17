// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// mockSource is a test helper that generates audio data for testing.
type mockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) float64
}

func newMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float64) *mockSource {
	return &mockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

func newSilentSource(sampleRate, channels, totalFrames int) *mockSource {
	return newConstantSource(sampleRate, channels, totalFrames, 0)
}

func newSineSource(sampleRate, channels, totalFrames int, frequency float64) *mockSource {
	return newMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float64 {
		t := float64(frame) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	})
}

func newConstantSource(sampleRate, channels, totalFrames int, value float64) *mockSource {
	return newMockSource(sampleRate, channels, totalFrames, func(int, int) float64 {
		return value
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }
func (m *mockSource) Frames() int64   { return int64(m.totalFrames) }
func (m *mockSource) Reset()          { m.generated = 0 }

func (m *mockSource) Format() Format {
	return PCMFormat(float64(m.sampleRate), m.channels, 16, FlagIsSignedInteger)
}

func (m *mockSource) ReadSamples(dst []float64) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalFrames-m.generated)
	for frame := range framesToWrite {
		idx := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(idx, ch)
		}
	}

	m.generated += framesToWrite
	if m.generated >= m.totalFrames {
		return framesToWrite * m.channels, io.EOF
	}

	return framesToWrite * m.channels, nil
}

// readAll drains src with a buffer of bufLen samples.
func readAll(src Source, bufLen int) ([]float64, error) {
	buf := make([]float64, bufLen)
	var out []float64

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
