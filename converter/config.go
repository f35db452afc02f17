// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"errors"
	"fmt"

	"github.com/ik5/audconv/audio"
)

// Defaults applied by DefaultConfig.
const (
	DefaultSampleRate  = 44100
	DefaultChannels    = 2
	DefaultBitDepth    = 16
	DefaultChunkFrames = 4096

	// MaxChunkFrames caps ChunkFrames so chunk buffers stay allocatable.
	MaxChunkFrames = 1 << 20
)

// Config describes one conversion. It is passed by value and never modified
// by the converter.
type Config struct {
	InputFilePath        string         `toml:"input_file_path"`
	OutputFilePath       string         `toml:"output_file_path"`
	OutputSampleRate     int            `toml:"output_sample_rate"`
	OutputNumberChannels int            `toml:"output_number_channels"`
	OutputBitDepth       int            `toml:"output_bit_depth"`
	OutputFormatID       audio.FormatID `toml:"output_format_id"`
	OutputFileType       audio.FileType `toml:"output_file_type"`
	DebugEnabled         bool           `toml:"debug_enabled"`
	ChunkFrames          int            `toml:"chunk_frames"`
}

// DefaultConfig returns a Config with every optional field set: 44.1 kHz
// stereo 16-bit linear PCM in a CAF container.
func DefaultConfig() Config {
	return Config{
		OutputSampleRate:     DefaultSampleRate,
		OutputNumberChannels: DefaultChannels,
		OutputBitDepth:       DefaultBitDepth,
		OutputFormatID:       audio.FormatLinearPCM,
		OutputFileType:       audio.FileTypeCAF,
		ChunkFrames:          DefaultChunkFrames,
	}
}

// Validate checks the caller supplied parameters. It does not touch the file
// system.
func (c Config) Validate() error {
	var errs []error

	if c.InputFilePath == "" {
		errs = append(errs, errors.New("input file path is required"))
	}
	if c.OutputFilePath == "" {
		errs = append(errs, errors.New("output file path is required"))
	}
	if _, err := audio.DeriveLinearPCM(float64(c.OutputSampleRate), c.OutputNumberChannels, c.OutputBitDepth); err != nil {
		errs = append(errs, err)
	}
	if c.OutputFormatID == 0 {
		errs = append(errs, errors.New("output format id is required"))
	}
	if c.OutputFileType == 0 {
		errs = append(errs, errors.New("output file type is required"))
	}
	if c.ChunkFrames < 1 || c.ChunkFrames > MaxChunkFrames {
		errs = append(errs, fmt.Errorf("chunk frames %d outside 1..%d", c.ChunkFrames, MaxChunkFrames))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrInvalidParameter, err)
	}

	return nil
}

// OutputParams extracts the requested output stream.
func (c Config) OutputParams() OutputParams {
	return OutputParams{
		SampleRate: c.OutputSampleRate,
		Channels:   c.OutputNumberChannels,
		BitDepth:   c.OutputBitDepth,
		Target:     c.Target(),
	}
}

// Target extracts the requested container and encoding.
func (c Config) Target() Target {
	return Target{FileType: c.OutputFileType, FormatID: c.OutputFormatID}
}
