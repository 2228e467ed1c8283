// SPDX-License-Identifier: GPL-2.0-or-later

// Package frametime keeps the viewer frame clock.
package frametime

import (
	"time"

	"meshview/math"
)

type Clock struct {
	start      time.Time
	now        func() time.Time
	time       float64
	oldTime    float64
	frameCount int
}

func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource returns a clock reading the current time from now.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{
		start: now(),
		now:   now,
	}
}

// Time is the number of seconds since the clock was created, as of the
// last successful UpdateTime.
func (c *Clock) Time() float64 { return c.time }

// FrameCount is the number of successful UpdateTime calls.
func (c *Clock) FrameCount() int { return c.frameCount }

// UpdateTime advances the clock.
// Returns false if it would exceed max fps
func (c *Clock) UpdateTime(maxFPS float64) bool {
	t := c.now().Sub(c.start).Seconds()
	maxFPS = math.Clamp(10.0, maxFPS, 1000.0)
	if t-c.oldTime < 1/maxFPS {
		return false
	}
	c.time = t
	c.oldTime = c.time
	c.frameCount++
	return true
}

// Sleep returns how long to wait before the next frame may start.
func (c *Clock) Sleep(maxFPS float64) time.Duration {
	maxFPS = math.Clamp(10.0, maxFPS, 1000.0)
	t := c.now().Sub(c.start).Seconds()
	left := c.oldTime + 1/maxFPS - t
	if left <= 0 {
		return 0
	}
	return time.Duration(left * float64(time.Second))
}
