// SPDX-License-Identifier: GPL-2.0-or-later

// package input turns pointer and key events into a model rotation
package input

type button struct {
	// key nums holding it down, can handle 2 keys with the same action
	holdingDown [2]int
	down        bool
}

func (b button) Down() bool {
	return b.down
}

func (b *button) downKey(k int) {
	if b.holdingDown[0] == k || b.holdingDown[1] == k {
		return
	}
	if b.holdingDown[0] == 0 {
		b.holdingDown[0] = k
	} else if b.holdingDown[1] == 0 {
		b.holdingDown[1] = k
	} else {
		return
	}
	b.down = true
}

func (b *button) upKey(k int) {
	if b.holdingDown[0] == k {
		b.holdingDown[0] = 0
	} else if b.holdingDown[1] == k {
		b.holdingDown[1] = 0
	} else {
		return
	}
	if b.holdingDown[0] != 0 || b.holdingDown[1] != 0 {
		// some other key is still holding it down
		return
	}
	b.down = false
}

func (b *button) release() {
	b.holdingDown[0] = 0
	b.holdingDown[1] = 0
	b.down = false
}

// Rotation accumulates the rotation angle in radians around the vertical
// axis. The zero value starts at angle 0 with nothing pressed.
type Rotation struct {
	angle float32
	drag  button
}

func (r *Rotation) Angle() float32 {
	return r.angle
}

func (r *Rotation) SetAngle(a float32) {
	r.angle = a
}

// Press marks the pointer button k as held. k must not be 0.
func (r *Rotation) Press(k int) {
	r.drag.downKey(k)
}

func (r *Rotation) Release(k int) {
	r.drag.upKey(k)
}

// ReleaseAll drops every held button, e.g. when the window loses focus.
func (r *Rotation) ReleaseAll() {
	r.drag.release()
}

// Drag adds dx*sensitivity while a button is held and reports whether the
// angle changed.
func (r *Rotation) Drag(dx, sensitivity float32) bool {
	if !r.drag.Down() {
		return false
	}
	r.angle += dx * sensitivity
	return true
}

func (r *Rotation) StepLeft(step float32) {
	r.angle -= step
}

func (r *Rotation) StepRight(step float32) {
	r.angle += step
}
