// SPDX-License-Identifier: GPL-2.0-or-later

// Package window owns the SDL window and its GL context.
package window

import (
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"meshview/conlog"
	"meshview/cvars"
)

const title = "meshview"

var (
	window  *sdl.Window
	context sdl.GLContext
)

func Size() (int, int) {
	if window == nil {
		return 0, 0
	}
	w, h := window.GLGetDrawableSize()
	return int(w), int(h)
}

func Shutdown() {
	if context != nil {
		sdl.GLDeleteContext(context)
		context = nil
	}
	if window != nil {
		window.Destroy()
		window = nil
	}
}

func SetTitle(s string) {
	if window == nil {
		return
	}
	window.SetTitle(title + " - " + s)
}

func isFullscreen() bool {
	return window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func createWindow(width, height int32, flags uint32) (*sdl.Window, error) {
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, flags)
	if err == nil {
		return w, nil
	}
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, flags)
	if err == nil {
		return w, nil
	}
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 16)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, flags)
	if err == nil {
		return w, nil
	}
	return nil, errors.Wrap(err, "couldn't create window")
}

// SetMode creates the window and a core profile GL context. Size, multi
// sampling and vertical sync are taken from the vid_ cvars.
func SetMode() error {
	width := int32(cvars.VideoWidth.Value())
	height := int32(cvars.VideoHeight.Value())
	fullscreen := cvars.VideoFullscreen.Bool()

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	fsaa := int(cvars.VideoFsaa.Value())
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, func() int {
		if fsaa > 0 {
			return 1
		}
		return 0
	}())
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, fsaa)

	if window == nil {
		flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
		var err error
		window, err = createWindow(width, height, flags)
		if err != nil {
			return err
		}
	}
	if isFullscreen() && !fullscreen {
		if err := window.SetFullscreen(0); err != nil {
			return errors.Wrap(err, "couldn't leave fullscreen mode")
		}
	}
	window.SetSize(width, height)
	if fullscreen {
		if err := window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			return errors.Wrap(err, "couldn't set fullscreen mode")
		}
	}

	window.Show()

	if context == nil {
		var err error
		context, err = window.GLCreateContext()
		if err != nil {
			return errors.Wrap(err, "couldn't create GL context")
		}
		// Initialize Glow
		if err := gl.Init(); err != nil {
			return errors.Wrap(err, "couldn't init gl")
		}
		var major, minor int32
		gl.GetIntegerv(gl.MAJOR_VERSION, &major)
		gl.GetIntegerv(gl.MINOR_VERSION, &minor)
		conlog.Printf("GL %d.%d: %s\n", major, minor, gl.GoStr(gl.GetString(gl.RENDERER)))
		if major > 4 || (major == 4 && minor >= 3) {
			// debug output is core since 4.3
			gl.DebugMessageCallback(debugCb, unsafe.Pointer(nil))
		}
	}
	setVSync(cvars.VideoVerticalSync.Bool())
	return nil
}

func setVSync(on bool) {
	interval := 0
	if on {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Printf("Couldn't set swap interval %d: %v", interval, err)
	}
}

func debugCb(
	source uint32,
	gltype uint32,
	id uint32,
	severity uint32,
	length int32,
	message string,
	userParam unsafe.Pointer) {
	if severity == gl.DEBUG_SEVERITY_HIGH {
		log.Printf("[GL_DEBUG] source %d gltype %d id %d severity %d length %d: %s", source, gltype, id, severity, length, message)
	} else {
		conlog.DPrintf("[GL_DEBUG] source %d gltype %d id %d severity %d length %d: %s\n", source, gltype, id, severity, length, message)
	}
}

func EndRendering() {
	window.GLSwap()
}
