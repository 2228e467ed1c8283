// SPDX-License-Identifier: GPL-2.0-or-later

// Package obj turns Wavefront OBJ style text into flat vertex, normal and
// index buffers.
//
// Only 'v', 'vn' and 'f' lines are read. Everything else is skipped
// without an error. Faces must have 3 or 4 vertices, other faces are
// dropped. Face references may point to positions defined later in the
// file; they are checked once the whole input has been read.
package obj

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

const maxLineLength = 1 << 20

type options struct {
	width IndexWidth
}

type Option func(*options)

// WithIndexWidth forces the index width instead of picking it from the
// vertex count. Parsing fails if the mesh does not fit.
func WithIndexWidth(w IndexWidth) Option {
	return func(o *options) {
		o.width = w
	}
}

// Builder accumulates records in the order they are added.
type Builder struct {
	positions []float32
	normals   []float32
	indices   []uint32
	stats     Stats
	width     IndexWidth
	// first reference that does not fit an index
	err error
}

func NewBuilder(opts ...Option) *Builder {
	o := options{}
	for _, f := range opts {
		f(&o)
	}
	return &Builder{width: o.width}
}

func (b *Builder) Add(r Record) {
	b.stats.Lines++
	switch t := r.(type) {
	case Position:
		b.positions = append(b.positions, t.X, t.Y, t.Z)
	case Normal:
		b.normals = append(b.normals, t.X, t.Y, t.Z)
	case Face:
		tris := t.Triangles()
		if len(tris) == 0 {
			b.stats.DroppedFaces++
			return
		}
		for _, tr := range tris {
			for _, i := range tr {
				if (i < 0 || int64(i) > math.MaxUint32) && b.err == nil {
					b.err = errors.Wrapf(ErrIndexOutOfRange, "reference %d", int64(i)+1)
				}
			}
			b.indices = append(b.indices, uint32(tr[0]), uint32(tr[1]), uint32(tr[2]))
		}
	default:
		b.stats.Ignored++
	}
}

// Finish validates all face references and packs the buffers.
func (b *Builder) Finish() (*Mesh, error) {
	if b.err != nil {
		return nil, b.err
	}
	m, err := NewMesh(b.positions, b.normals, b.indices, b.width)
	if err != nil {
		return nil, err
	}
	m.Stats = b.stats
	return m, nil
}

// Repack applies opts to a mesh that was built elsewhere, e.g. decoded
// from a binary file. Without a forced width m is returned as is.
func Repack(m *Mesh, opts ...Option) (*Mesh, error) {
	o := options{}
	for _, f := range opts {
		f(&o)
	}
	if o.width == IndexAuto || o.width == m.Indices.Width() {
		return m, nil
	}
	r, err := NewMesh(m.Positions, m.Normals, m.Indices.Values(), o.width)
	if err != nil {
		return nil, err
	}
	r.Stats = m.Stats
	return r, nil
}

// Parse reads mesh text from r. It fails on read errors, malformed face
// references and meshes that can not be indexed.
func Parse(r io.Reader, opts ...Option) (*Mesh, error) {
	b := NewBuilder(opts...)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	line := 0
	for scanner.Scan() {
		line++
		rec, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		b.Add(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "obj: reading mesh")
	}
	return b.Finish()
}

func ParseString(s string, opts ...Option) (*Mesh, error) {
	return Parse(strings.NewReader(s), opts...)
}
