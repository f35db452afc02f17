// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrInvalidDstSize(t *testing.T) {
	t.Parallel()

	expectedMsg := "dst size must be multiple of channels"
	if ErrInvalidDstSize.Error() != expectedMsg {
		t.Errorf("ErrInvalidDstSize.Error() = %q, want %q", ErrInvalidDstSize.Error(), expectedMsg)
	}
}

func TestKindErrors_Distinct(t *testing.T) {
	t.Parallel()

	kinds := []error{
		ErrFileNotFound,
		ErrUnsupportedFormat,
		ErrInvalidParameter,
		ErrIncompatibleFormats,
		ErrReadFailure,
		ErrWriteFailure,
		ErrCancelled,
		ErrCannotCreateFile,
		ErrUnsupportedContainer,
	}

	for i, a := range kinds {
		for j, b := range kinds {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want distinct kinds", a, b)
			}
		}
	}
}

func TestKindErrors_Wrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("open input: %w", fmt.Errorf("%w: %s", ErrUnsupportedFormat, "garbage"))
	if !errors.Is(wrapped, ErrUnsupportedFormat) {
		t.Error("errors.Is() failed for wrapped ErrUnsupportedFormat")
	}

	joined := errors.Join(ErrWriteFailure, errors.New("disk full"))
	if !errors.Is(joined, ErrWriteFailure) {
		t.Error("errors.Is() failed for joined ErrWriteFailure")
	}
}
