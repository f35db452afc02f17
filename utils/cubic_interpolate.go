// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x,
// where x in [0, 1] runs from y1 to y2.
func CubicInterpolate(y0, y1, y2, y3, x float64) float64 {
	return y1 + 0.5*x*(y2-y0+x*(2*y0-5*y1+4*y2-y3+x*(3*(y1-y2)+y3-y0)))
}

// CubicInterpolateFrame interpolates every channel of four consecutive
// frames into dst. All slices hold at least len(dst) samples.
func CubicInterpolateFrame(dst, f0, f1, f2, f3 []float64, x float64) {
	for c := range dst {
		dst[c] = CubicInterpolate(f0[c], f1[c], f2[c], f3[c], x)
	}
}
