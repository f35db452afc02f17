// SPDX-License-Identifier: EPL-2.0

package converter

import (
	"errors"
	"fmt"

	"github.com/ik5/audconv/audio"
)

// ErrNotConfigured is returned when a reader is read before SetClientFormat.
var ErrNotConfigured = errors.New("client format not set")

// Error reports which stage of a conversion failed.
type Error struct {
	Op    string
	State State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.State, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// kinds is ordered so that the most specific cause wins when several are
// wrapped together.
var kinds = []error{
	audio.ErrCancelled,
	audio.ErrFileNotFound,
	audio.ErrInvalidParameter,
	audio.ErrUnsupportedFormat,
	audio.ErrIncompatibleFormats,
	audio.ErrUnsupportedContainer,
	audio.ErrCannotCreateFile,
	audio.ErrReadFailure,
	audio.ErrWriteFailure,
}

// Kind returns the failure kind err belongs to, one of the audio.Err*
// sentinels, or nil when err is nil or unclassified.
func Kind(err error) error {
	if err == nil {
		return nil
	}

	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}

	return nil
}
