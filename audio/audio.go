// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"sync"

	goaudio "github.com/go-audio/audio"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// Format describes the stream as stored in its container.
	Format() Format
	// ReadSamples fills dst with interleaved float64 samples in [-1,1].
	// Returns number of float64 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float64) (n int, err error)
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Lengther is implemented by sources that know their total frame count.
type Lengther interface {
	// Frames returns the total number of frames, or -1 when unknown.
	Frames() int64
}

// Frames reports the total frame count of src, or -1 when it cannot tell.
func Frames(src Source) int64 {
	if l, ok := src.(Lengther); ok {
		return l.Frames()
	}
	return -1
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Sink accepts integer PCM frames in the format it was created with and
// writes them to a container.
type Sink interface {
	// Format describes the stream as it is stored on disk.
	Format() Format
	// Write stores every frame in buf or fails.
	Write(buf *goaudio.IntBuffer) error
	// Close commits container headers. It does not close the underlying writer.
	Close() error
}

// Encoder constructs a Sink for one container.
type Encoder interface {
	// Supports reports whether the container can store f.
	Supports(f Format) error
	Encode(w io.WriteSeeker, f Format) (Sink, error)
}

// Registry for decoders and encoders by container type.
type Registry struct {
	codecs   map[FileType]Decoder
	encoders map[FileType]Encoder
	mtx      *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:   make(map[FileType]Decoder),
		encoders: make(map[FileType]Encoder),
		mtx:      &sync.Mutex{},
	}
}

func (r *Registry) Register(t FileType, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[t] = d
}

func (r *Registry) Get(t FileType) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[t]
	return d, ok
}

func (r *Registry) RegisterEncoder(t FileType, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[t] = e
}

func (r *Registry) Encoder(t FileType) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	e, ok := r.encoders[t]
	return e, ok
}

// FileTypes lists every container with a decoder or an encoder, sorted by name.
func (r *Registry) FileTypes() []FileType {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	seen := make(map[FileType]struct{}, len(r.codecs)+len(r.encoders))
	for t := range r.codecs {
		seen[t] = struct{}{}
	}
	for t := range r.encoders {
		seen[t] = struct{}{}
	}

	types := make([]FileType, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b FileType) int {
		if a.Name() < b.Name() {
			return -1
		} else if a.Name() > b.Name() {
			return 1
		}
		return 0
	})

	return types
}
