// SPDX-License-Identifier: GPL-2.0-or-later

// Package viewer runs the interactive mesh viewer: it loads the mesh while
// the window comes up, uploads it once and then draws it every frame.
package viewer

import (
	"context"
	"log"
	"time"

	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"meshview/conlog"
	"meshview/cvars"
	"meshview/filesystem"
	"meshview/frametime"
	"meshview/image"
	"meshview/input"
	"meshview/lighting"
	"meshview/model"
	"meshview/obj"
	"meshview/render"
	"meshview/view"
	"meshview/window"
)

type loadResult struct {
	mesh *obj.Mesh
	err  error
}

// startLoad fetches and parses name on its own goroutine. The channel
// receives exactly one result.
func startLoad(ctx context.Context, name string, opts ...obj.Option) <-chan loadResult {
	c := make(chan loadResult, 1)
	go func() {
		m, err := model.Load(ctx, name, opts...)
		c <- loadResult{m, err}
	}()
	return c
}

type drawer interface {
	Draw(mv, p render.Uniform)
}

type viewer struct {
	rot        input.Rotation
	clock      *frametime.Clock
	drawer     drawer
	width      int
	height     int
	quit       bool
	screenshot bool
}

func newViewer(clock *frametime.Clock) *viewer {
	return &viewer{clock: clock}
}

// Run shows the mesh called name until the window is closed, Escape is
// pressed or ctx is done. It must be called from within mainthread.Run.
// Load failures are returned before the first frame.
func Run(ctx context.Context, name string, opts ...obj.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loaded := startLoad(ctx, name, opts...)

	var err error
	mainthread.Call(func() {
		v := sdl.Version{}
		sdl.GetVersion(&v)
		log.Printf("Found SDL version %d.%d.%d\n", v.Major, v.Minor, v.Patch)
		err = sdl.Init(sdl.INIT_VIDEO)
	})
	if err != nil {
		return errors.Wrap(err, "sdl init")
	}
	defer mainthread.Call(sdl.Quit)

	mainthread.Call(func() {
		err = window.SetMode()
	})
	defer mainthread.Call(window.Shutdown)
	if err != nil {
		return err
	}

	var res loadResult
	select {
	case res = <-loaded:
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.err != nil {
		return res.err
	}
	m := res.mesh
	conlog.Printf("%s: %d vertices, %d triangles\n", name, m.VertexCount(), m.TriangleCount())

	v := newViewer(frametime.New())
	mainthread.Call(func() {
		window.SetTitle(name)
		render.Setup()
		v.resize()
		v.drawer, err = render.NewMeshDrawer(m, lighting.Default())
	})
	if err != nil {
		return errors.Wrap(err, "mesh upload")
	}
	return v.loop(ctx)
}

func (v *viewer) loop(ctx context.Context) error {
	defer func() {
		conlog.DPrintf("%d frames in %.1fs\n", v.clock.FrameCount(), v.clock.Time())
	}()
	for {
		if ctx.Err() != nil {
			return nil
		}
		maxFPS := float64(cvars.HostMaxFps.Value())
		if !v.clock.UpdateTime(maxFPS) {
			time.Sleep(v.clock.Sleep(maxFPS))
			continue
		}
		mainthread.Call(v.frame)
		if v.quit {
			return nil
		}
	}
}

func (v *viewer) frame() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		v.handleEvent(event)
	}
	if v.quit {
		return
	}
	render.Clear()
	projection := cvars.RProjection.Bool()
	mv := view.ModelView(v.angle(), cvars.RDistance.Value(), projection)
	p := view.Projection(cvars.RFov.Value(), v.width, v.height, projection)
	v.drawer.Draw(mv, p)
	if v.screenshot {
		v.screenshot = false
		v.writeScreenshot()
	}
	window.EndRendering()
}

func (v *viewer) writeScreenshot() {
	name, err := image.NextName(filesystem.BaseDir(), "meshview")
	if err != nil {
		conlog.Printf("%v\n", err)
		return
	}
	data := render.ReadPixels(v.width, v.height)
	if err := image.Write(name, data, v.width, v.height); err != nil {
		conlog.Printf("Couldn't write screenshot: %v\n", err)
		return
	}
	conlog.Printf("Wrote %s\n", name)
}

func (v *viewer) resize() {
	v.width, v.height = window.Size()
	render.Viewport(v.width, v.height)
	conlog.DPrintf("viewport %dx%d\n", v.width, v.height)
}

// angle returns the rotation of the current frame in radians.
func (v *viewer) angle() float32 {
	if cvars.RAutoRotate.Bool() {
		return float32(v.clock.Time()) * cvars.RRotateSpeed.Value()
	}
	return v.rot.Angle()
}

// toggleAutoRotate switches between the two angle sources without a jump.
func (v *viewer) toggleAutoRotate() {
	if cvars.RAutoRotate.Bool() {
		v.rot.SetAngle(v.angle())
	}
	cvars.RAutoRotate.Toggle()
}

func (v *viewer) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		v.quit = true
	case *sdl.WindowEvent:
		v.handleWindowEvent(e)
	case *sdl.KeyboardEvent:
		v.handleKeyboardEvent(e)
	case *sdl.MouseButtonEvent:
		v.handleMouseButtonEvent(e)
	case *sdl.MouseMotionEvent:
		// t.Timestamp, t.Type, t.Which, t.X, t.Y, t.XRel, t.YRel
		v.rot.Drag(float32(e.XRel), cvars.InputSensitivity.Value())
	}
}

func (v *viewer) handleWindowEvent(e *sdl.WindowEvent) {
	switch e.Event {
	case sdl.WINDOWEVENT_SIZE_CHANGED:
		v.resize()
	case sdl.WINDOWEVENT_FOCUS_LOST:
		v.rot.ReleaseAll()
	case sdl.WINDOWEVENT_CLOSE:
		v.quit = true
	}
}

func (v *viewer) handleKeyboardEvent(e *sdl.KeyboardEvent) {
	if e.State != sdl.PRESSED {
		return
	}
	switch e.Keysym.Sym {
	case sdl.K_ESCAPE:
		v.quit = true
	case sdl.K_LEFT:
		v.rot.StepLeft(cvars.InputKeyStep.Value())
	case sdl.K_RIGHT:
		v.rot.StepRight(cvars.InputKeyStep.Value())
	case sdl.K_SPACE:
		if e.Repeat == 0 {
			v.toggleAutoRotate()
		}
	case sdl.K_F12:
		if e.Repeat == 0 {
			v.screenshot = true
		}
	}
}

func (v *viewer) handleMouseButtonEvent(e *sdl.MouseButtonEvent) {
	if e.Button != sdl.BUTTON_LEFT {
		return
	}
	if e.State == sdl.PRESSED {
		v.rot.Press(int(e.Button))
	} else {
		v.rot.Release(int(e.Button))
	}
}
