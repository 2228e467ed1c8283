// SPDX-License-Identifier: GPL-2.0-or-later

// Package model loads meshes by name. Binary formats register themselves
// by their magic number, anything else is parsed as obj text.
package model

import (
	"context"
	"encoding/binary"

	"meshview/conlog"
	"meshview/filesystem"
	"meshview/obj"

	"github.com/pkg/errors"
)

var (
	loaders map[uint32]LoadFunc
)

func init() {
	loaders = make(map[uint32]LoadFunc)
}

type LoadFunc func(name string, data []byte) (*obj.Mesh, error)

func Register(magic uint32, f LoadFunc) {
	loaders[magic] = f
}

// Load fetches name and decodes it.
func Load(ctx context.Context, name string, opts ...obj.Option) (*obj.Mesh, error) {
	data, err := filesystem.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	m, err := Decode(name, data, opts...)
	if err != nil {
		return nil, err
	}
	conlog.DPrintf("%s: %d vertices, %d normals, %d triangles, %d-bit indices\n",
		name, m.VertexCount(), m.NormalCount(), m.TriangleCount(), m.Indices.Width())
	if m.Stats.Ignored > 0 || m.Stats.DroppedFaces > 0 {
		conlog.SafePrintf("%s: skipped %d lines and %d faces\n", name, m.Stats.Ignored, m.Stats.DroppedFaces)
	}
	return m, nil
}

// Decode picks the loader for data. Binary meshes are repacked if the
// options force another index width than the stored one.
func Decode(name string, data []byte, opts ...obj.Option) (*obj.Mesh, error) {
	if len(data) >= 4 {
		magic := binary.LittleEndian.Uint32(data)
		if f, ok := loaders[magic]; ok {
			m, err := f(name, data)
			if err != nil {
				return nil, err
			}
			if m, err = obj.Repack(m, opts...); err != nil {
				return nil, errors.Wrap(err, name)
			}
			return m, nil
		}
	}
	m, err := obj.ParseString(string(data), opts...)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return m, nil
}
