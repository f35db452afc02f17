// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/formats"
	"github.com/ik5/audconv/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPCM(t *testing.T, rate float64, channels, bits int) audio.Format {
	t.Helper()

	f, err := audio.DeriveLinearPCM(rate, channels, bits)
	require.NoError(t, err)
	return f
}

func TestChunk(t *testing.T) {
	t.Parallel()

	c := NewChunk(mustPCM(t, 8000, 3, 24), 10)

	assert.Equal(t, 10, c.Capacity())
	assert.Equal(t, 3, c.Channels())
	assert.Len(t, c.Samples(4), 12)

	buf := c.Buffer(2)
	assert.Len(t, buf.Data, 6)
	assert.Equal(t, 24, buf.SourceBitDepth)
	assert.Equal(t, 3, buf.Format.NumChannels)
	assert.Equal(t, 8000, buf.Format.SampleRate)

	// Views share storage with the chunk
	c.Samples(1)[0] = 7
	assert.Equal(t, 7, buf.Data[0])
}

func TestChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rate, ch    int
		dstRate     int
		dstChannels int
	}{
		{"passthrough", 44100, 2, 44100, 2},
		{"mono to stereo", 44100, 1, 44100, 2},
		{"downmix", 48000, 6, 48000, 2},
		{"resample", 48000, 2, 8000, 2},
		{"downmix and resample", 48000, 6, 16000, 1},
		{"upmix and resample", 8000, 1, 44100, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.rate, tt.ch, 100, 440)
			out := Chain(src, mustPCM(t, float64(tt.dstRate), tt.dstChannels, 16))

			assert.Equal(t, tt.dstRate, out.SampleRate())
			assert.Equal(t, tt.dstChannels, out.Channels())

			if tt.rate == tt.dstRate && tt.ch == tt.dstChannels {
				assert.Same(t, src, out)
			}

			require.NoError(t, out.Close())
			assert.True(t, src.Closed())
		})
	}
}

func TestRegistryCodec_DecodeRejects(t *testing.T) {
	t.Parallel()

	codec := RegistryCodec{Registry: formats.NewRegistry()}
	src := audiotest.NewSilentSource(8000, 1, 10)

	tests := []struct {
		name string
		f    audio.Format
	}{
		{"float", audio.PCMFormat(8000, 1, 32, audio.FlagIsFloat)},
		{"compressed", audio.CompressedFormat(audio.FormatAAC, 8000, 1)},
		{"12-bit", audio.PCMFormat(8000, 1, 12, audio.FlagIsSignedInteger)},
	}

	for _, tt := range tests {
		_, err := codec.DecodeToIntermediate(src, tt.f)
		assert.ErrorIs(t, err, audio.ErrIncompatibleFormats, tt.name)
	}

	_, err := codec.DecodeToIntermediate(audiotest.NewSilentSource(8000, 0, 10), mustPCM(t, 8000, 1, 16))
	assert.ErrorIs(t, err, audio.ErrIncompatibleFormats)
}

func TestDecodeSession_Quantizes(t *testing.T) {
	t.Parallel()

	codec := RegistryCodec{Registry: formats.NewRegistry()}
	values := []float64{0, 0.5, -0.5, 1, -1, 2}
	src := audiotest.NewMockSource(8000, 1, len(values), func(frame, _ int) float64 { return values[frame] })

	s, err := codec.DecodeToIntermediate(src, mustPCM(t, 8000, 1, 8))
	require.NoError(t, err)
	assert.EqualValues(t, len(values), s.Frames())

	chunk := NewChunk(mustPCM(t, 8000, 1, 8), 4)

	n, eos, err := s.ReadFrames(chunk)
	require.NoError(t, err)
	assert.False(t, eos)
	assert.Equal(t, []int{0, 64, -64, 127}, chunk.Samples(n))

	n, eos, err = s.ReadFrames(chunk)
	require.NoError(t, err)
	assert.True(t, eos)
	assert.Equal(t, []int{-128, 127}, chunk.Samples(n))

	n, eos, err = s.ReadFrames(chunk)
	require.NoError(t, err)
	assert.True(t, eos)
	assert.Zero(t, n)

	require.NoError(t, s.Close())
	assert.True(t, src.Closed())
}

func TestDecodeSession_Errors(t *testing.T) {
	t.Parallel()

	codec := RegistryCodec{Registry: formats.NewRegistry()}
	f := mustPCM(t, 8000, 2, 16)

	src := audiotest.NewConstantSource(8000, 2, 100, 0.25).FailAfter(10, errors.New("bad sector"))
	s, err := codec.DecodeToIntermediate(src, f)
	require.NoError(t, err)

	_, _, err = s.ReadFrames(NewChunk(f, 64))
	assert.ErrorIs(t, err, audio.ErrReadFailure)

	s, err = codec.DecodeToIntermediate(audiotest.NewSilentSource(8000, 2, 10), f)
	require.NoError(t, err)

	_, _, err = s.ReadFrames(NewChunk(mustPCM(t, 8000, 1, 16), 64))
	assert.ErrorIs(t, err, audio.ErrReadFailure)
}

// stalled never produces data and never fails.
type stalled struct {
	*audiotest.MockSource
}

func (stalled) ReadSamples([]float64) (int, error) { return 0, nil }

func TestDecodeSession_NoProgress(t *testing.T) {
	t.Parallel()

	codec := RegistryCodec{Registry: formats.NewRegistry()}
	f := mustPCM(t, 8000, 1, 16)

	s, err := codec.DecodeToIntermediate(stalled{audiotest.NewSilentSource(8000, 1, 10)}, f)
	require.NoError(t, err)

	_, _, err = s.ReadFrames(NewChunk(f, 16))
	assert.ErrorIs(t, err, audio.ErrReadFailure)
	assert.ErrorIs(t, err, io.ErrNoProgress)
}

func TestRegistryCodec_Encode(t *testing.T) {
	t.Parallel()

	codec := RegistryCodec{Registry: formats.NewRegistry()}
	f := mustPCM(t, 8000, 1, 16)

	_, err := codec.EncodeFromIntermediate(nil, f, Target{FileType: audio.FileTypeMP3, FormatID: audio.FormatLinearPCM})
	assert.ErrorIs(t, err, audio.ErrUnsupportedContainer)

	_, err = codec.EncodeFromIntermediate(nil, f, Target{FileType: audio.FileTypeCAF, FormatID: audio.FormatOpus})
	assert.ErrorIs(t, err, audio.ErrIncompatibleFormats)
}
