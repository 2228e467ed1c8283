// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"meshview/conlog"
	"meshview/cvar"
)

var (
	Developer         *cvar.Cvar
	HostMaxFps        *cvar.Cvar
	InputKeyStep      *cvar.Cvar
	InputSensitivity  *cvar.Cvar
	RAutoRotate       *cvar.Cvar
	RDistance         *cvar.Cvar
	RFov              *cvar.Cvar
	RProjection       *cvar.Cvar
	RRotateSpeed      *cvar.Cvar
	VideoFsaa         *cvar.Cvar
	VideoFullscreen   *cvar.Cvar
	VideoHeight       *cvar.Cvar
	VideoVerticalSync *cvar.Cvar
	VideoWidth        *cvar.Cvar
)

func init() {
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	HostMaxFps = cvar.MustRegister("host_maxfps", "250", cvar.ARCHIVE)
	InputKeyStep = cvar.MustRegister("in_keystep", "0.05", cvar.ARCHIVE)
	InputSensitivity = cvar.MustRegister("in_sensitivity", "0.01", cvar.ARCHIVE)
	RAutoRotate = cvar.MustRegister("r_autorotate", "1", cvar.ARCHIVE)
	RDistance = cvar.MustRegister("r_distance", "3", cvar.ARCHIVE)
	RFov = cvar.MustRegister("r_fov", "45", cvar.ARCHIVE)
	RProjection = cvar.MustRegister("r_projection", "1", cvar.ARCHIVE)
	RRotateSpeed = cvar.MustRegister("r_rotatespeed", "1", cvar.ARCHIVE)
	VideoFsaa = cvar.MustRegister("vid_fsaa", "0", cvar.ARCHIVE)
	VideoFullscreen = cvar.MustRegister("vid_fullscreen", "0", cvar.ARCHIVE)
	VideoHeight = cvar.MustRegister("vid_height", "600", cvar.ARCHIVE)
	VideoVerticalSync = cvar.MustRegister("vid_vsync", "1", cvar.ARCHIVE)
	VideoWidth = cvar.MustRegister("vid_width", "800", cvar.ARCHIVE)

	Developer.SetCallback(func(cv *cvar.Cvar) {
		conlog.SetDeveloper(cv.Bool())
	})
}
