// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"github.com/ik5/audconv/audio"
)

// Info summarizes an audio file.
type Info struct {
	Path     string
	FileType audio.FileType
	Format   audio.Format
	// Frames is -1 when the container does not record its length.
	Frames int64
}

// Duration in seconds, or -1 when the length is unknown.
func (i Info) Duration() float64 {
	if i.Frames < 0 || i.Format.SampleRate <= 0 {
		return -1
	}
	return float64(i.Frames) / i.Format.SampleRate
}

// Describe returns the native format of the file at path.
func Describe(path string, reg *audio.Registry) (audio.Format, error) {
	info, err := Inspect(path, reg)
	if err != nil {
		return audio.Format{}, err
	}
	return info.Format, nil
}

// Inspect opens path and reports what it holds without decoding any audio.
func Inspect(path string, reg *audio.Registry) (Info, error) {
	r, err := OpenReader(path, reg)
	if err != nil {
		return Info{}, err
	}
	defer r.Close()

	return Info{
		Path:     path,
		FileType: r.FileType(),
		Format:   r.NativeFormat(),
		Frames:   r.Frames(),
	}, nil
}
