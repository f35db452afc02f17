// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"slices"
	"testing"

	"github.com/ik5/audconv/audio"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	want := []audio.FileType{
		audio.FileTypeAIFF, audio.FileTypeCAF, audio.FileTypeFLAC,
		audio.FileTypeMP3, audio.FileTypeOgg, audio.FileTypeWAVE,
	}
	if got := r.FileTypes(); !slices.Equal(got, want) {
		t.Errorf("FileTypes() = %v, want %v", got, want)
	}

	for _, ft := range want {
		if _, ok := r.Get(ft); !ok {
			t.Errorf("no decoder for %s", ft.Name())
		}
	}

	for _, ft := range []audio.FileType{audio.FileTypeCAF, audio.FileTypeWAVE, audio.FileTypeAIFF} {
		if _, ok := r.Encoder(ft); !ok {
			t.Errorf("no encoder for %s", ft.Name())
		}
	}
	for _, ft := range []audio.FileType{audio.FileTypeMP3, audio.FileTypeOgg, audio.FileTypeFLAC} {
		if _, ok := r.Encoder(ft); ok {
			t.Errorf("unexpected encoder for %s", ft.Name())
		}
	}
}
