// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "cmp"

// Clamp limits val to [lo, hi]. lo wins if the bounds cross.
func Clamp[K cmp.Ordered](lo, val, hi K) K {
	if val > hi {
		val = hi
	}
	if val < lo {
		return lo
	}
	return val
}
