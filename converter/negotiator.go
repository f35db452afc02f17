// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"fmt"

	"github.com/ik5/audconv/audio"
)

// Target is the destination container and the encoding stored in it.
type Target struct {
	FileType audio.FileType
	FormatID audio.FormatID
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s", t.FileType.Name(), t.FormatID)
}

// OutputParams is what the caller asked for.
type OutputParams struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Target     Target
}

// Negotiator derives the intermediate format of a conversion and checks the
// whole path before any output is created.
type Negotiator struct {
	Registry *audio.Registry
}

// Negotiate returns the linear PCM format every chunk travels in. The
// intermediate is always derived from params, even when native already
// matches.
func (n Negotiator) Negotiate(native audio.Format, params OutputParams) (audio.Format, error) {
	intermediate, err := audio.DeriveLinearPCM(float64(params.SampleRate), params.Channels, params.BitDepth)
	if err != nil {
		return audio.Format{}, err
	}

	if native.ChannelCount < 1 || native.SampleRate <= 0 {
		return audio.Format{}, fmt.Errorf("%w: source has no decodable stream (%v)", audio.ErrIncompatibleFormats, native)
	}
	if native.ChannelCount > audio.MaxNativeChannels {
		return audio.Format{}, fmt.Errorf("%w: source has %d channels, limit %d", audio.ErrIncompatibleFormats, native.ChannelCount, audio.MaxNativeChannels)
	}

	enc, ok := n.Registry.Encoder(params.Target.FileType)
	if !ok {
		return audio.Format{}, fmt.Errorf("%w: %w: no encoder for %s", audio.ErrIncompatibleFormats,
			audio.ErrUnsupportedContainer, params.Target.FileType.Name())
	}

	dest := intermediate
	if params.Target.FormatID != audio.FormatLinearPCM {
		dest = audio.CompressedFormat(params.Target.FormatID, intermediate.SampleRate, intermediate.ChannelCount)
	}

	if err := enc.Supports(dest); err != nil {
		return audio.Format{}, fmt.Errorf("%s to %s: %w", native, params.Target, err)
	}

	return intermediate, nil
}
