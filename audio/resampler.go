// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audconv/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
//
// For a source of N frames the resampler yields ceil(N*dstRate/srcRate) frames.
type Resampler struct {
	src      Source
	srcRate  int64
	dstRate  int64
	ratio    float64 // srcRate / dstRate - how many source frames per output frame
	channels int

	// Window of 4 frames for cubic interpolation:
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2.
	// Past the end of the source the last frame is repeated.
	frames  [4][]float64
	real    [4]bool
	started bool

	// Output frames produced so far and the source index held in frames[1].
	// Output frame k sits at source position k*srcRate/dstRate.
	out int64
	cur int64

	in *frameReader

	filterState []float64
	useFilter   bool
	filterAlpha float64
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	// One-pole low-pass when downsampling
	useFilter := ratio > 1.0
	var filterAlpha float64
	if useFilter {
		filterAlpha = 0.5
	}

	r := &Resampler{
		src:         src,
		srcRate:     int64(src.SampleRate()),
		dstRate:     int64(dstRate),
		ratio:       ratio,
		channels:    channels,
		in:          newFrameReader(src, src.BufSize()),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float64, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float64, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Format() Format {
	return r.src.Format().WithLayout(float64(r.dstRate), r.channels)
}

// Frames returns the number of output frames, or -1 if the source length is unknown.
func (r *Resampler) Frames() int64 {
	n := Frames(r.src)
	if n < 0 {
		return -1
	}
	return (n*r.dstRate + r.srcRate - 1) / r.srcRate
}

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pull reads the next source frame into dst, applying the low-pass filter.
func (r *Resampler) pull(dst []float64) (bool, error) {
	ok, err := r.in.next(dst)
	if !ok || err != nil {
		return false, err
	}

	if r.useFilter {
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	r.started = true

	ok, err := r.in.next(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	r.real[1] = true

	// Start the filter at the first sample to avoid a warm-up transient
	copy(r.filterState, r.frames[1])
	copy(r.frames[0], r.frames[1])

	for i := 2; i < 4; i++ {
		ok, err := r.pull(r.frames[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.frames[i], r.frames[i-1])
		}
		r.real[i] = ok
	}

	return nil
}

// advance slides the window one source frame forward.
func (r *Resampler) advance() error {
	first := r.frames[0]
	copy(r.frames[:], r.frames[1:])
	copy(r.real[:], r.real[1:])
	r.frames[3] = first

	ok, err := r.pull(r.frames[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.frames[3], r.frames[2])
	}
	r.real[3] = ok

	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float64) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		if err := r.prime(); err != nil {
			return 0, fmt.Errorf("%w", err)
		}
	}

	framesNeeded := len(dst) / r.channels
	written := 0

	for written < framesNeeded {
		pos := r.out * r.srcRate
		want := pos / r.dstRate

		for r.cur < want && r.real[1] {
			if err := r.advance(); err != nil {
				return written * r.channels, fmt.Errorf("%w", err)
			}
			r.cur++
		}
		if !r.real[1] {
			break
		}

		alpha := float64(pos%r.dstRate) / float64(r.dstRate)
		base := written * r.channels
		utils.CubicInterpolateFrame(dst[base:base+r.channels],
			r.frames[0], r.frames[1], r.frames[2], r.frames[3], alpha)

		written++
		r.out++
	}

	if written == 0 && framesNeeded > 0 {
		return 0, io.EOF
	}

	return written * r.channels, nil
}

const maxEmptyReads = 100

// frameReader hands out single frames from bulk reads of a Source.
type frameReader struct {
	src      Source
	channels int
	buf      []float64
	off, n   int
	eof      bool
}

func newFrameReader(src Source, bufSize int) *frameReader {
	channels := src.Channels()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	return &frameReader{
		src:      src,
		channels: channels,
		buf:      make([]float64, bufSize),
	}
}

// next copies one frame into dst. It reports false once the source is drained.
// A trailing partial frame is dropped.
func (f *frameReader) next(dst []float64) (bool, error) {
	empty := 0
	for f.n-f.off < f.channels {
		if f.eof {
			return false, nil
		}
		if empty >= maxEmptyReads {
			return false, io.ErrNoProgress
		}

		n, err := f.src.ReadSamples(f.buf)
		f.off, f.n = 0, n
		if err == io.EOF {
			f.eof = true
		} else if err != nil {
			return false, err
		}
		if n == 0 {
			empty++
		}
	}

	copy(dst, f.buf[f.off:f.off+f.channels])
	f.off += f.channels

	return true, nil
}
