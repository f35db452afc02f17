// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

// ErrInvalidFrame indicates a frame whose channel layout disagrees with the
// stream header.
var ErrInvalidFrame = errors.New("invalid FLAC frame")
