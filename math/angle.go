// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "github.com/chewxy/math32"

const TwoPi = 2 * math32.Pi

// WrapAngle changes an angle in radians to be within [0, 2π)
func WrapAngle(a float32) float32 {
	r := a - math32.Floor(a/TwoPi)*TwoPi
	if r >= TwoPi {
		// float rounding just below a multiple of 2π
		return 0
	}
	return r
}

func RadToDeg(a float32) float32 {
	return a * 180 / math32.Pi
}
