// SPDX-License-Identifier: GPL-2.0-or-later

// Package view builds the per frame transforms of the viewed mesh.
package view

import (
	"meshview/glh"
	"meshview/math"
)

const (
	zNear = 0.1
	zFar  = 100
)

// ModelView returns the transform for a rotation of angle radians around
// the vertical axis. With projection enabled the mesh is moved distance
// units in front of the camera, otherwise it stays at the origin of the
// clip volume.
func ModelView(angle, distance float32, projection bool) *glh.Matrix {
	m := glh.Identity()
	if projection {
		m.Translate(0, 0, -distance)
	}
	m.RotateY(math.RadToDeg(math.WrapAngle(angle)))
	return m
}

// Projection returns a perspective projection with a vertical field of
// view of fovy degrees. It is the identity when enabled is false.
func Projection(fovy float32, width, height int, enabled bool) *glh.Matrix {
	if !enabled {
		return glh.Identity()
	}
	return glh.Perspective(math.Clamp(1, fovy, 179), Aspect(width, height), zNear, zFar)
}

// Aspect is width/height, 1 for degenerate sizes.
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
