// SPDX-License-Identifier: EPL-2.0

package converter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/converter"
	"github.com/ik5/audconv/formats"
	"github.com/ik5/audconv/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReader(t *testing.T) {
	t.Parallel()

	reg := formats.NewRegistry()
	in := writeFixture(t, audiotest.WAVInfo{SampleRate: 16000, Channels: 2, BitDepth: 24}, audiotest.Ramp(50, 2, 24))

	r, err := converter.OpenReader(in, reg)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, audio.FileTypeWAVE, r.FileType())
	assert.EqualValues(t, 50, r.Frames())
	assert.Equal(t, 24, r.NativeFormat().BitsPerChannel)
	assert.EqualValues(t, -1, r.ClientFrames())

	intermediate, err := audio.DeriveLinearPCM(8000, 1, 16)
	require.NoError(t, err)
	chunk := converter.NewChunk(intermediate, 64)

	_, _, err = r.ReadFrames(chunk)
	require.ErrorIs(t, err, converter.ErrNotConfigured)

	require.NoError(t, r.SetClientFormat(intermediate, converter.RegistryCodec{Registry: reg}))
	assert.EqualValues(t, 25, r.ClientFrames())

	n, eos, err := r.ReadFrames(chunk)
	require.NoError(t, err)
	assert.True(t, eos)
	assert.InDelta(t, 25, n, 1)
}

func TestSourceReader_SetClientFormatRejects(t *testing.T) {
	t.Parallel()

	reg := formats.NewRegistry()
	in := writeFixture(t, audiotest.WAVInfo{SampleRate: 8000, Channels: 1, BitDepth: 16}, audiotest.Ramp(5, 1, 16))

	r, err := converter.OpenReader(in, reg)
	require.NoError(t, err)
	defer r.Close()

	err = r.SetClientFormat(audio.PCMFormat(8000, 1, 32, audio.FlagIsFloat), converter.RegistryCodec{Registry: reg})
	assert.ErrorIs(t, err, audio.ErrIncompatibleFormats)
}

func TestOpenReader_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reg := formats.NewRegistry()

	_, err := converter.OpenReader(filepath.Join(dir, "absent.caf"), reg)
	assert.ErrorIs(t, err, audio.ErrFileNotFound)

	junk := filepath.Join(dir, "junk.bin")
	require.NoError(t, os.WriteFile(junk, []byte{1, 2, 3}, 0o600))

	_, err = converter.OpenReader(junk, reg)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)

	// Detected but not registered
	in := writeFixture(t, audiotest.WAVInfo{SampleRate: 8000, Channels: 1, BitDepth: 16}, nil)
	_, err = converter.OpenReader(in, audio.NewRegistry())
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)
}

func TestDestinationWriter(t *testing.T) {
	t.Parallel()

	reg := formats.NewRegistry()
	path := filepath.Join(t.TempDir(), "w.caf")

	f, err := audio.DeriveLinearPCM(8000, 2, 16)
	require.NoError(t, err)

	w, err := converter.CreateWriter(path, converter.Target{FileType: audio.FileTypeCAF, FormatID: audio.FormatLinearPCM},
		f, converter.RegistryCodec{Registry: reg})
	require.NoError(t, err)

	assert.Equal(t, path, w.Path())
	assert.False(t, w.Format().IsBigEndian())

	chunk := converter.NewChunk(f, 8)
	copy(chunk.Samples(8), audiotest.Ramp(8, 2, 16))
	require.NoError(t, w.WriteFrames(chunk, 8))
	require.NoError(t, w.WriteFrames(chunk, 3))
	require.ErrorIs(t, w.WriteFrames(chunk, 9), audio.ErrWriteFailure)

	assert.Zero(t, w.Bytes())
	require.NoError(t, w.Finalize())
	require.NoError(t, w.Finalize())

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, st.Size(), w.Bytes())

	require.ErrorIs(t, w.WriteFrames(chunk, 1), audio.ErrWriteFailure)

	info, err := converter.Inspect(path, reg)
	require.NoError(t, err)
	assert.EqualValues(t, 11, info.Frames)
	assert.InDelta(t, 11.0/8000, info.Duration(), 1e-12)
}

func TestCreateWriter_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	codec := converter.RegistryCodec{Registry: formats.NewRegistry()}
	f, err := audio.DeriveLinearPCM(8000, 1, 16)
	require.NoError(t, err)

	_, err = converter.CreateWriter(filepath.Join(dir, "missing", "x.wav"),
		converter.Target{FileType: audio.FileTypeWAVE, FormatID: audio.FormatLinearPCM}, f, codec)
	assert.ErrorIs(t, err, audio.ErrCannotCreateFile)

	out := filepath.Join(dir, "x.ogg")
	_, err = converter.CreateWriter(out, converter.Target{FileType: audio.FileTypeOgg, FormatID: audio.FormatVorbis}, f, codec)
	assert.ErrorIs(t, err, audio.ErrUnsupportedContainer)
	assert.NoFileExists(t, out)
}

func TestInfo_Duration(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, converter.Info{Frames: 88200, Format: audio.PCMFormat(44100, 2, 16, 0)}.Duration(), 1e-12)
	assert.EqualValues(t, -1, converter.Info{Frames: -1, Format: audio.PCMFormat(44100, 2, 16, 0)}.Duration())
	assert.EqualValues(t, -1, converter.Info{Frames: 10}.Duration())
}
