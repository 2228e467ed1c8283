// SPDX-License-Identifier: GPL-2.0-or-later

// meshc compiles obj text meshes into the binary mesh format.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"meshview/conlog"
	"meshview/filesystem"
	"meshview/meshfile"
	"meshview/model"
	"meshview/obj"
)

var (
	output    = flag.String("o", "", "output file, only valid with a single input")
	index32   = flag.Bool("index32", false, "always use 32 bit indices")
	index16   = flag.Bool("index16", false, "fail if the mesh needs 32 bit indices")
	developer = flag.Bool("developer", false, "print debug output")
)

// outputName returns the file name written for input. URLs are written to
// the current directory.
func outputName(input string) string {
	if *output != "" {
		return *output
	}
	if filesystem.IsURL(input) {
		input = filepath.Base(input)
	}
	return filesystem.StripExt(input) + ".mesh"
}

func compile(ctx context.Context, input string, opts ...obj.Option) error {
	m, err := model.Load(ctx, input, opts...)
	if err != nil {
		return err
	}
	name := outputName(input)
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "meshc")
	}
	w := bufio.NewWriter(f)
	if err := meshfile.Encode(w, m); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, name)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, name)
	}
	fmt.Printf("%s -> %s: %d vertices, %d normals, %d triangles, %d bit indices\n",
		input, name, m.VertexCount(), m.NormalCount(), m.TriangleCount(), m.Indices.Width())
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.obj ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 || (*output != "" && flag.NArg() > 1) {
		flag.Usage()
		os.Exit(2)
	}
	conlog.SetDeveloper(*developer)

	var opts []obj.Option
	switch {
	case *index32 && *index16:
		log.Fatalf("-index16 and -index32 are exclusive")
	case *index32:
		opts = append(opts, obj.WithIndexWidth(obj.Index32))
	case *index16:
		opts = append(opts, obj.WithIndexWidth(obj.Index16))
	}

	ctx := context.Background()
	failed := false
	for _, in := range flag.Args() {
		if err := compile(ctx, in, opts...); err != nil {
			log.Printf("%v", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
