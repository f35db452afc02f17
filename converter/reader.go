// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ik5/audconv/audio"
)

// SourceReader owns an opened input file and its decoder.
type SourceReader struct {
	file     *os.File
	fileType audio.FileType
	src      audio.Source
	session  DecodeSession
}

// OpenReader opens path, identifies its container and decodes its header.
func OpenReader(path string, reg *audio.Registry) (*SourceReader, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", audio.ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
	}

	r, err := newReader(f, reg)
	if err != nil {
		f.Close()
		return nil, err
	}

	return r, nil
}

func newReader(f *os.File, reg *audio.Registry) (*SourceReader, error) {
	ft, err := audio.SniffFileType(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}

	dec, ok := reg.Get(ft)
	if !ok {
		return nil, fmt.Errorf("%w: no decoder for %s", audio.ErrUnsupportedFormat, ft.Name())
	}

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}

	return &SourceReader{file: f, fileType: ft, src: src}, nil
}

// NativeFormat is the stream as stored in the input container.
func (r *SourceReader) NativeFormat() audio.Format { return r.src.Format() }

func (r *SourceReader) FileType() audio.FileType { return r.fileType }

// Frames is the native length in frames, or -1 when unknown.
func (r *SourceReader) Frames() int64 { return audio.Frames(r.src) }

// SetClientFormat makes every following read deliver intermediate frames.
func (r *SourceReader) SetClientFormat(intermediate audio.Format, codec Codec) error {
	session, err := codec.DecodeToIntermediate(r.src, intermediate)
	if err != nil {
		if !errors.Is(err, audio.ErrIncompatibleFormats) {
			err = fmt.Errorf("%w: %w", audio.ErrIncompatibleFormats, err)
		}
		return err
	}

	r.session = session
	return nil
}

// ClientFrames is the length in intermediate frames, or -1 when unknown.
func (r *SourceReader) ClientFrames() int64 {
	if r.session == nil {
		return -1
	}
	return r.session.Frames()
}

// ReadFrames fills chunk with intermediate frames.
func (r *SourceReader) ReadFrames(chunk *Chunk) (int, bool, error) {
	if r.session == nil {
		return 0, false, ErrNotConfigured
	}

	frames, eos, err := r.session.ReadFrames(chunk)
	if err != nil && Kind(err) == nil {
		err = fmt.Errorf("%w: %w", audio.ErrReadFailure, err)
	}

	return frames, eos, err
}

// Close releases the decoder and the file.
func (r *SourceReader) Close() error {
	var err error
	if r.session != nil {
		err = r.session.Close()
	} else {
		err = r.src.Close()
	}

	return errors.Join(err, r.file.Close())
}
