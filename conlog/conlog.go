// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the console output of the viewer. The goroutine safe
// sink can be replaced, by default everything goes to the standard logger.
package conlog

import (
	"log"
	"sync/atomic"
)

var (
	sp        func(string, ...any) = log.Printf
	developer atomic.Bool
)

// SetSafePrintf sets the sink used from goroutines other than the
// frame loop.
func SetSafePrintf(f func(string, ...any)) {
	sp = f
}

func SetDeveloper(on bool) {
	developer.Store(on)
}

func Printf(format string, v ...any) {
	log.Printf(format, v...)
}

func SafePrintf(format string, v ...any) {
	sp(format, v...)
}

// DPrintf only prints in developer mode.
func DPrintf(format string, v ...any) {
	if developer.Load() {
		sp(format, v...)
	}
}
