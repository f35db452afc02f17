// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
)

// Conversion failure kinds. Format packages and the converter wrap these so
// callers can classify any error with errors.Is.
var (
	ErrFileNotFound         = errors.New("file not found")
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrIncompatibleFormats  = errors.New("incompatible formats")
	ErrReadFailure          = errors.New("read failure")
	ErrWriteFailure         = errors.New("write failure")
	ErrCancelled            = errors.New("conversion cancelled")
	ErrCannotCreateFile     = errors.New("cannot create file")
	ErrUnsupportedContainer = errors.New("unsupported container")
)
