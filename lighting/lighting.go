// SPDX-License-Identifier: GPL-2.0-or-later

// Package lighting holds the parameters of the ambient, diffuse and
// specular reflection model used by the mesh shader. Shade evaluates the
// same formula on the CPU.
package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Params struct {
	// LightDir points from the surface towards the light.
	LightDir mgl32.Vec3
	// ViewDir points from the surface towards the viewer.
	ViewDir   mgl32.Vec3
	BaseColor mgl32.Vec3
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}

func Default() Params {
	return Params{
		LightDir:  mgl32.Vec3{0.5, 0.7, 1}.Normalize(),
		ViewDir:   mgl32.Vec3{0, 0, 1},
		BaseColor: mgl32.Vec3{0.9, 0.9, 0.9},
		Ambient:   0,
		Diffuse:   0.5,
		Specular:  0.5,
		Shininess: 256,
	}
}

// Reflect mirrors the incident vector i at the plane with normal n.
func Reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// Intensity returns the scalar factor applied to the base color for the
// surface normal n.
func (p Params) Intensity(n mgl32.Vec3) float32 {
	if n.Len() == 0 {
		return p.Ambient
	}
	n = n.Normalize()
	diffuse := math32.Max(0, p.LightDir.Dot(n))
	r := Reflect(p.LightDir.Mul(-1), n)
	specular := math32.Pow(math32.Max(0, p.ViewDir.Dot(r)), p.Shininess)
	return p.Ambient + diffuse*p.Diffuse + specular*p.Specular
}

// Shade returns the opaque color for the surface normal n.
func (p Params) Shade(n mgl32.Vec3) mgl32.Vec4 {
	c := p.BaseColor.Mul(p.Intensity(n))
	return c.Vec4(1)
}
