// SPDX-License-Identifier: GPL-2.0-or-later

package view

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"meshview/glh"
)

const tol = 1e-5

func assertVec(t *testing.T, want, got [4]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v", i, got)
	}
}

func TestModelViewNoRotation(t *testing.T) {
	m := ModelView(0, 3, false)
	assert.Equal(t, glh.Identity().Values(), m.Values())

	m = ModelView(0, 3, true)
	assertVec(t, [4]float32{1, 2, -3, 1}, m.Transform(1, 2, 0, 1))
}

func TestModelViewQuarterTurn(t *testing.T) {
	m := ModelView(math32.Pi/2, 3, false)
	assertVec(t, [4]float32{0, 0, -1, 1}, m.Transform(1, 0, 0, 1))
	assertVec(t, [4]float32{0, 1, 0, 1}, m.Transform(0, 1, 0, 1))

	// the rotation is applied before the translation
	m = ModelView(math32.Pi/2, 3, true)
	assertVec(t, [4]float32{0, 0, -4, 1}, m.Transform(1, 0, 0, 1))
}

func TestModelViewWraps(t *testing.T) {
	a := ModelView(0.25, 3, true).Transform(1, 0, 0, 1)
	b := ModelView(0.25+4*math32.Pi, 3, true).Transform(1, 0, 0, 1)
	assertVec(t, a, b)
	c := ModelView(0.25-2*math32.Pi, 3, true).Transform(1, 0, 0, 1)
	assertVec(t, a, c)
}

func TestProjectionDisabled(t *testing.T) {
	assert.Equal(t, glh.Identity().Values(), Projection(45, 800, 600, false).Values())
}

func TestProjection(t *testing.T) {
	p := Projection(90, 200, 100, true)
	// a point on the near plane at the top edge of the view maps to y = 1
	v := p.Transform(0, zNear, -zNear, 1)
	assert.InDelta(t, 1, v[1]/v[3], tol)
	assert.InDelta(t, -1, v[2]/v[3], 1e-4)
	v = p.Transform(2*zNear, 0, -zNear, 1)
	assert.InDelta(t, 1, v[0]/v[3], tol)
}

func TestAspect(t *testing.T) {
	assert.Equal(t, float32(2), Aspect(200, 100))
	assert.Equal(t, float32(1), Aspect(200, 0))
	assert.Equal(t, float32(1), Aspect(-1, 100))
}
