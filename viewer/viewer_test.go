// SPDX-License-Identifier: GPL-2.0-or-later

package viewer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"meshview/cvars"
	"meshview/frametime"
	"meshview/obj"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func testViewer(t *testing.T) (*viewer, *fakeTime) {
	t.Helper()
	f := &fakeTime{t: time.Unix(1000, 0)}
	t.Cleanup(func() {
		cvars.RAutoRotate.Reset()
		cvars.RRotateSpeed.Reset()
	})
	return newViewer(frametime.NewWithSource(f.now)), f
}

func key(sym sdl.Keycode, state uint8) *sdl.KeyboardEvent {
	e := &sdl.KeyboardEvent{State: state}
	e.Keysym.Sym = sym
	return e
}

func TestStartLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(name, []byte("v 0 0 0\nv 5 0 0\nv 0 5 0\nf 1 2 3\n"), 0o644))

	res := <-startLoad(context.Background(), name, obj.WithIndexWidth(obj.Index32))
	require.NoError(t, res.err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, res.mesh.Positions)
	assert.Equal(t, obj.Index32, res.mesh.Indices.Width())
}

func TestStartLoadFailure(t *testing.T) {
	res := <-startLoad(context.Background(), filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, res.err)
	assert.Nil(t, res.mesh)

	name := filepath.Join(t.TempDir(), "bad.obj")
	require.NoError(t, os.WriteFile(name, []byte("v 0 0 0\nf 1 x 1\n"), 0o644))
	res = <-startLoad(context.Background(), name)
	assert.True(t, errors.Is(res.err, obj.ErrBadReference), "err = %v", res.err)
}

func TestQuitEvents(t *testing.T) {
	for _, e := range []sdl.Event{
		&sdl.QuitEvent{},
		key(sdl.K_ESCAPE, sdl.PRESSED),
		&sdl.WindowEvent{Event: sdl.WINDOWEVENT_CLOSE},
	} {
		v, _ := testViewer(t)
		v.handleEvent(e)
		assert.True(t, v.quit, "%T", e)
	}
	v, _ := testViewer(t)
	v.handleEvent(key(sdl.K_ESCAPE, sdl.RELEASED))
	assert.False(t, v.quit)
}

func TestKeyRotation(t *testing.T) {
	v, _ := testViewer(t)
	cvars.RAutoRotate.SetValue(0)
	v.handleEvent(key(sdl.K_RIGHT, sdl.PRESSED))
	v.handleEvent(key(sdl.K_RIGHT, sdl.RELEASED))
	assert.InDelta(t, 0.05, v.angle(), 1e-6)
	v.handleEvent(key(sdl.K_LEFT, sdl.PRESSED))
	v.handleEvent(key(sdl.K_LEFT, sdl.PRESSED))
	assert.InDelta(t, -0.05, v.angle(), 1e-6)
}

func TestDragRotation(t *testing.T) {
	v, _ := testViewer(t)
	cvars.RAutoRotate.SetValue(0)
	v.handleEvent(&sdl.MouseMotionEvent{XRel: 40})
	assert.Equal(t, float32(0), v.angle(), "motion without a button")

	v.handleEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_RIGHT, State: sdl.PRESSED})
	v.handleEvent(&sdl.MouseMotionEvent{XRel: 40})
	assert.Equal(t, float32(0), v.angle(), "right button does not drag")

	v.handleEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	v.handleEvent(&sdl.MouseMotionEvent{XRel: 40})
	v.handleEvent(&sdl.MouseMotionEvent{XRel: -10})
	assert.InDelta(t, 0.3, v.angle(), 1e-6)

	v.handleEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.RELEASED})
	v.handleEvent(&sdl.MouseMotionEvent{XRel: 40})
	assert.InDelta(t, 0.3, v.angle(), 1e-6)
}

func TestFocusLostStopsDrag(t *testing.T) {
	v, _ := testViewer(t)
	cvars.RAutoRotate.SetValue(0)
	v.handleEvent(&sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.PRESSED})
	v.handleEvent(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST})
	v.handleEvent(&sdl.MouseMotionEvent{XRel: 40})
	assert.Equal(t, float32(0), v.angle())
}

func TestAutoRotate(t *testing.T) {
	v, f := testViewer(t)
	cvars.RAutoRotate.SetValue(1)
	cvars.RRotateSpeed.SetValue(2)
	f.t = f.t.Add(1500 * time.Millisecond)
	require.True(t, v.clock.UpdateTime(250))
	assert.InDelta(t, 3, v.angle(), 1e-6)

	// input does not move an auto rotating mesh
	v.handleEvent(key(sdl.K_RIGHT, sdl.PRESSED))
	assert.InDelta(t, 3, v.angle(), 1e-6)
}

func TestToggleAutoRotate(t *testing.T) {
	v, f := testViewer(t)
	cvars.RAutoRotate.SetValue(1)
	f.t = f.t.Add(time.Second)
	require.True(t, v.clock.UpdateTime(250))

	v.handleEvent(key(sdl.K_SPACE, sdl.PRESSED))
	assert.False(t, cvars.RAutoRotate.Bool())
	assert.InDelta(t, 1, v.angle(), 1e-6, "angle kept when switching to manual")

	v.handleEvent(key(sdl.K_SPACE, sdl.PRESSED))
	assert.True(t, cvars.RAutoRotate.Bool())
}

func TestScreenshotKey(t *testing.T) {
	v, _ := testViewer(t)
	v.handleEvent(key(sdl.K_F12, sdl.RELEASED))
	assert.False(t, v.screenshot)
	v.handleEvent(key(sdl.K_F12, sdl.PRESSED))
	assert.True(t, v.screenshot)
}
