// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer changes the channel count of a Source.
//
//   - N to 1 averages all channels.
//   - 1 to N duplicates the mono channel.
//   - N to M with M > N repeats source channels cyclically (out j = in j%N).
//   - N to M with 1 < M < N folds source channel j into j%M and averages each group.
type ChannelMixer struct {
	src Source
	out int
	tmp []float64

	// weight[j] is 1 / number of source channels folded into output j.
	weight []float64
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	in := src.Channels()

	m := &ChannelMixer{
		src:    src,
		out:    channels,
		tmp:    make([]float64, 4096),
		weight: make([]float64, channels),
	}

	if channels < in {
		counts := make([]int, channels)
		for j := range in {
			counts[j%channels]++
		}
		for j, c := range counts {
			m.weight[j] = 1.0 / float64(c)
		}
	}

	return m
}

// NewMonoMixer downmixes src to a single channel.
func NewMonoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 1)
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Frames() int64   { return Frames(m.src) }

func (m *ChannelMixer) Format() Format {
	f := m.src.Format()
	return f.WithLayout(f.SampleRate, m.out)
}

func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with interleaved frames of m.Channels() samples.
// dst length should be a multiple of m.Channels().
func (m *ChannelMixer) ReadSamples(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	maxFrames := len(dst) / m.out
	samplesNeeded := maxFrames * in

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float64, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:cap(m.tmp)]

	n, err := m.src.ReadSamples(m.tmp[:samplesNeeded])
	if n == 0 {
		return 0, err
	}
	frames := n / in

	switch {
	case m.out == 1 && in == 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	case m.out == 1:
		inv := 1.0 / float64(in)
		for f := range frames {
			sum := 0.0
			base := f * in
			for c := range in {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	case in == 1:
		for f := range frames {
			v := m.tmp[f]
			base := f * m.out
			for c := range m.out {
				dst[base+c] = v
			}
		}
	case m.out > in:
		for f := range frames {
			src := m.tmp[f*in : f*in+in]
			base := f * m.out
			for c := range m.out {
				dst[base+c] = src[c%in]
			}
		}
	default:
		for f := range frames {
			src := m.tmp[f*in : f*in+in]
			out := dst[f*m.out : f*m.out+m.out]
			clear(out)
			for c, v := range src {
				out[c%m.out] += v
			}
			for c := range out {
				out[c] *= m.weight[c]
			}
		}
	}

	return frames * m.out, err
}
