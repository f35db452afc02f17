// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled container into an audio.Registry.
package formats

import (
	"github.com/ik5/audconv/audio"
	"github.com/ik5/audconv/formats/aiff"
	"github.com/ik5/audconv/formats/caf"
	"github.com/ik5/audconv/formats/flac"
	"github.com/ik5/audconv/formats/mp3"
	"github.com/ik5/audconv/formats/vorbis"
	"github.com/ik5/audconv/formats/wav"
)

// Register adds the bundled decoders and encoders to r.
func Register(r *audio.Registry) {
	r.Register(audio.FileTypeCAF, caf.Decoder{})
	r.Register(audio.FileTypeWAVE, wav.Decoder{})
	r.Register(audio.FileTypeAIFF, aiff.Decoder{})
	r.Register(audio.FileTypeMP3, mp3.Decoder{})
	r.Register(audio.FileTypeOgg, vorbis.Decoder{})
	r.Register(audio.FileTypeFLAC, flac.Decoder{})

	r.RegisterEncoder(audio.FileTypeCAF, caf.Encoder{})
	r.RegisterEncoder(audio.FileTypeWAVE, wav.Encoder{})
	r.RegisterEncoder(audio.FileTypeAIFF, aiff.Encoder{})
}

// NewRegistry returns a registry with every bundled container.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	Register(r)
	return r
}
