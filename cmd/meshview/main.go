// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gopxl/mainthread/v2"

	"meshview/commandline"
	"meshview/conlog"
	"meshview/config"
	"meshview/cvar"
	"meshview/cvars"
	"meshview/filesystem"
	"meshview/obj"
	"meshview/viewer"
)

import (
	// register the mesh loaders
	_ "meshview/meshfile"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] mesh [+cvar value ...]\n", os.Args[0])
	flag.PrintDefaults()
}

// applyFlags maps the process flags onto their cvars. It runs after the
// config file so flags win.
func applyFlags() {
	if w := commandline.Width(); w > 0 {
		cvars.VideoWidth.SetValue(float32(w))
	}
	if h := commandline.Height(); h > 0 {
		cvars.VideoHeight.SetValue(float32(h))
	}
	if commandline.Fullscreen() {
		cvars.VideoFullscreen.SetValue(1)
	}
	if commandline.Window() {
		cvars.VideoFullscreen.SetValue(0)
	}
	if commandline.Fsaa() {
		cvars.VideoFsaa.SetValue(float32(commandline.FsaaSamples()))
	}
	if commandline.Developer() {
		cvars.Developer.SetValue(1)
	}
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args, overrides, err := commandline.Split(flag.Args())
	if err != nil {
		log.Fatalf("%v", err)
	}
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := commandline.ConfigFile()
	if cfg != "" {
		if err := config.Load(cfg); err != nil {
			log.Fatalf("%v", err)
		}
	}
	applyFlags()
	for _, o := range overrides {
		if err := cvar.Set(o.Name, o.Value); err != nil {
			log.Printf("+%s: %v", o.Name, err)
		}
	}
	filesystem.UseBaseDir(commandline.BaseDirectory())
	// the first -path is searched first
	paths := commandline.SearchPaths()
	for i := len(paths) - 1; i >= 0; i-- {
		filesystem.AddSearchDir(paths[i])
	}
	conlog.DPrintf("search path %v\n", filesystem.SearchDirs())
	if cvars.Developer.Bool() {
		cvar.List()
	}

	var opts []obj.Option
	if commandline.Index32() {
		opts = append(opts, obj.WithIndexWidth(obj.Index32))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	mainthread.Run(func() {
		err = viewer.Run(ctx, args[0], opts...)
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
	if cfg != "" {
		if err := config.Save(cfg); err != nil {
			log.Printf("%v", err)
		}
	}
}
