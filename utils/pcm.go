// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale returns 2^(bits-1), the magnitude of full scale for a signed
// integer sample of the given width.
func PCMScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}

// PCMToFloat normalizes a signed integer sample of the given width into
// [-1, 1). The result is exact for widths up to 32 bits.
func PCMToFloat(v int, bits int) float64 {
	return float64(v) / PCMScale(bits)
}

// FloatToPCM quantizes x into a signed integer sample of the given width,
// rounding to nearest and clamping to the representable range.
// PCMToFloat followed by FloatToPCM is lossless.
func FloatToPCM(x float64, bits int) int {
	scale := PCMScale(bits)

	v := math.Round(x * scale)
	if v > scale-1 {
		return int(scale - 1)
	} else if v < -scale {
		return int(-scale)
	}

	return int(v)
}
