// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVInfo is the header of a fixture read back by ReadWAV.
type WAVInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Ramp returns frames*channels signed samples spread over the full range of
// bits, different per channel, hitting both extremes.
func Ramp(frames, channels, bits int) []int {
	scale := 1 << (bits - 1)
	lo, hi := -scale, scale-1
	data := make([]int, frames*channels)

	for f := range frames {
		for c := range channels {
			var v int
			switch {
			case f == 0:
				v = lo
			case f == frames-1:
				v = hi
			default:
				pos := float64(f*channels+c) / float64(frames*channels)
				v = int(math.Round(float64(lo) + pos*float64(hi-lo)))
			}
			data[f*channels+c] = v
		}
	}

	return data
}

// WriteWAV writes signed integer samples as a PCM WAV file. 8-bit samples are
// stored unsigned, as the format requires.
func WriteWAV(path string, info WAVInfo, data []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	enc := wav.NewEncoder(f, info.SampleRate, info.BitDepth, info.Channels, 1)

	out := make([]int, len(data))
	for i, v := range data {
		if info.BitDepth == 8 {
			v += 128
		}
		out[i] = v
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate},
		Data:           out,
		SourceBitDepth: info.BitDepth,
	}

	err = enc.Write(buf)
	if err == nil {
		err = enc.Close()
	}

	return errors.Join(err, f.Close())
}

// ReadWAV loads a whole WAV file and returns its samples as signed integers.
func ReadWAV(path string) (WAVInfo, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if dec.Err() != nil || dec.NumChans < 1 {
		return WAVInfo{}, nil, fmt.Errorf("%s: not a valid wav file", path)
	}

	info := WAVInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}

	var data []int
	buf := &goaudio.IntBuffer{Data: make([]int, 4096)}
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil && err != io.EOF {
			return info, nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
		data = append(data, buf.Data[:n]...)
	}

	if info.BitDepth == 8 {
		for i := range data {
			data[i] -= 128
		}
	}

	return info, data, nil
}
