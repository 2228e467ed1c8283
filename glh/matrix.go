// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix is a 4x4 matrix in row major order.
type Matrix struct {
	m [16]float32
}

func (m *Matrix) String() string {
	return fmt.Sprintf("%v %v %v %v\n%v %v %v %v\n%v %v %v %v\n%v %v %v %v",
		m.m[0], m.m[1], m.m[2], m.m[3],
		m.m[4], m.m[5], m.m[6], m.m[7],
		m.m[8], m.m[9], m.m[10], m.m[11],
		m.m[12], m.m[13], m.m[14], m.m[15],
	)
}

func deg2rad(deg float32) float32 {
	return (deg / 180) * math32.Pi
}

func Identity() *Matrix {
	return &Matrix{
		m: [16]float32{
			1, 0, 0, 0, // 0 - 3
			0, 1, 0, 0, // 4 - 7
			0, 0, 1, 0, // 8 - 11
			0, 0, 0, 1, // 12 - 15
		},
	}
}

// FromMat4 converts a column major mgl32 matrix.
func FromMat4(c mgl32.Mat4) *Matrix {
	return &Matrix{m: [16]float32(c.Transpose())}
}

// Perspective returns a projection with a vertical field of view of fovy
// degrees.
func Perspective(fovy, aspect, near, far float32) *Matrix {
	return FromMat4(mgl32.Perspective(deg2rad(fovy), aspect, near, far))
}

// Values returns the matrix in row major order.
func (m *Matrix) Values() [16]float32 {
	return m.m
}

func (m *Matrix) SetAsUniform(id int32) {
	// we use row major order, so transpose must be set to true
	// as opengl uses column major order
	gl.UniformMatrix4fv(id, 1, true, &m.m[0])
}

// Transform returns m*(x,y,z,w).
func (m *Matrix) Transform(x, y, z, w float32) [4]float32 {
	var r [4]float32
	for i := range r {
		r[i] = m.m[4*i]*x + m.m[4*i+1]*y + m.m[4*i+2]*z + m.m[4*i+3]*w
	}
	return r
}

func (m *Matrix) Translate(x, y, z float32) {
	// 1, 0, 0, x
	// 0, 1, 0, y
	// 0, 0, 1, z
	// 0, 0, 0, 1
	// compute m*t
	n := [16]float32{
		m.m[0], m.m[1], m.m[2], x*m.m[0] + y*m.m[1] + z*m.m[2] + m.m[3],
		m.m[4], m.m[5], m.m[6], x*m.m[4] + y*m.m[5] + z*m.m[6] + m.m[7],
		m.m[8], m.m[9], m.m[10], x*m.m[8] + y*m.m[9] + z*m.m[10] + m.m[11],
		m.m[12], m.m[13], m.m[14], x*m.m[12] + y*m.m[13] + z*m.m[14] + m.m[15],
	}
	m.m = n
}

func (m *Matrix) RotateY(degree float32) {
	sin, cos := math32.Sincos(deg2rad(degree))
	// cos, 0, sin, 0
	// 0, 1, 0, 0
	// -sin, 0, cos, 0
	// 0, 0, 0, 1
	// compute m*t
	n := [16]float32{
		cos*m.m[0] - sin*m.m[2], m.m[1], sin*m.m[0] + cos*m.m[2], m.m[3],
		cos*m.m[4] - sin*m.m[6], m.m[5], sin*m.m[4] + cos*m.m[6], m.m[7],
		cos*m.m[8] - sin*m.m[10], m.m[9], sin*m.m[8] + cos*m.m[10], m.m[11],
		cos*m.m[12] - sin*m.m[14], m.m[13], sin*m.m[12] + cos*m.m[14], m.m[15],
	}
	m.m = n
}
