// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audconv/audio"
)

// file turns short writes into errors.
type file struct {
	*os.File
}

func (f file) Write(p []byte) (int, error) {
	n, err := f.File.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// DestinationWriter owns the output file and its encoder.
type DestinationWriter struct {
	path      string
	file      file
	session   EncodeSession
	bytes     int64
	finalized bool
	err       error
}

// CreateWriter creates path and starts a container for intermediate frames.
// The file is removed again if no encoder can be set up.
func CreateWriter(path string, target Target, intermediate audio.Format, codec Codec) (*DestinationWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrCannotCreateFile, err)
	}

	session, err := codec.EncodeFromIntermediate(file{f}, intermediate, target)
	if err != nil {
		f.Close()
		os.Remove(path)

		if Kind(err) == nil {
			err = fmt.Errorf("%w: %w", audio.ErrUnsupportedContainer, err)
		}
		return nil, err
	}

	return &DestinationWriter{path: path, file: file{f}, session: session}, nil
}

// Format is the stream as stored on disk.
func (w *DestinationWriter) Format() audio.Format { return w.session.Format() }

func (w *DestinationWriter) Path() string { return w.path }

// WriteFrames writes exactly frames frames from chunk.
func (w *DestinationWriter) WriteFrames(chunk *Chunk, frames int) error {
	if w.finalized {
		return fmt.Errorf("%w: %w", audio.ErrWriteFailure, os.ErrClosed)
	}

	if err := w.session.WriteFrames(chunk, frames); err != nil {
		if !errors.Is(err, audio.ErrWriteFailure) {
			err = fmt.Errorf("%w: %w", audio.ErrWriteFailure, err)
		}
		return err
	}

	return nil
}

// Finalize commits the container, syncs and closes the file. Later calls
// return the first result.
func (w *DestinationWriter) Finalize() error {
	if w.finalized {
		return w.err
	}
	w.finalized = true

	var errs []error
	if err := w.session.Close(); err != nil {
		errs = append(errs, err)
	}

	if size, err := w.file.Seek(0, io.SeekEnd); err == nil {
		w.bytes = size
	}

	if err := w.file.Sync(); err != nil {
		errs = append(errs, err)
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		if !errors.Is(err, audio.ErrWriteFailure) {
			err = fmt.Errorf("%w: %w", audio.ErrWriteFailure, err)
		}
		w.err = err
	}

	return w.err
}

// Bytes is the size of the finished file. It is zero before Finalize.
func (w *DestinationWriter) Bytes() int64 { return w.bytes }
