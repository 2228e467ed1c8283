// SPDX-License-Identifier: GPL-2.0-or-later

package obj

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrBadReference    = errors.New("obj: bad vertex reference")
	ErrIndexOutOfRange = errors.New("obj: vertex index out of range")
	ErrIndexWidth      = errors.New("obj: mesh too large for index width")
)

type IndexWidth int

const (
	// IndexAuto selects the smallest width able to address every vertex.
	IndexAuto IndexWidth = 0
	Index16   IndexWidth = 16
	Index32   IndexWidth = 32
)

const (
	// MaxVertices16 is the vertex ceiling of 16 bit index buffers.
	// 0xffff stays unused, it is the primitive restart value.
	MaxVertices16 = math.MaxUint16
	MaxVertices32 = math.MaxUint32
)

// Indices is a triangle list stored with either 16 or 32 bit values.
type Indices struct {
	width IndexWidth
	u16   []uint16
	u32   []uint32
}

func (ix *Indices) Width() IndexWidth {
	if ix.width == IndexAuto {
		return Index16
	}
	return ix.width
}

func (ix *Indices) Len() int {
	if ix.width == Index32 {
		return len(ix.u32)
	}
	return len(ix.u16)
}

func (ix *Indices) At(i int) uint32 {
	if ix.width == Index32 {
		return ix.u32[i]
	}
	return uint32(ix.u16[i])
}

// Uint16 returns the backing slice of a 16 bit buffer, nil otherwise.
func (ix *Indices) Uint16() []uint16 {
	return ix.u16
}

// Uint32 returns the backing slice of a 32 bit buffer, nil otherwise.
func (ix *Indices) Uint32() []uint32 {
	return ix.u32
}

// Values returns a widened copy of all indices.
func (ix *Indices) Values() []uint32 {
	r := make([]uint32, ix.Len())
	for i := range r {
		r[i] = ix.At(i)
	}
	return r
}

// ByteSize is the size of the buffer in bytes as uploaded to the GPU.
func (ix *Indices) ByteSize() int {
	return ix.Len() * int(ix.Width()) / 8
}

// Stats describe what the parser skipped.
type Stats struct {
	Lines        int
	Ignored      int
	DroppedFaces int
}

// Mesh holds flat buffers ready for upload. It must not be modified.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   Indices
	Stats     Stats
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *Mesh) NormalCount() int {
	return len(m.Normals) / 3
}

func (m *Mesh) TriangleCount() int {
	return m.Indices.Len() / 3
}

// SelectWidth returns the index width to use for vertexCount vertices.
func SelectWidth(vertexCount int, want IndexWidth) (IndexWidth, error) {
	switch want {
	case IndexAuto:
		if vertexCount <= MaxVertices16 {
			return Index16, nil
		}
		if uint64(vertexCount) <= MaxVertices32 {
			return Index32, nil
		}
	case Index16:
		if vertexCount <= MaxVertices16 {
			return Index16, nil
		}
	case Index32:
		if uint64(vertexCount) <= MaxVertices32 {
			return Index32, nil
		}
	default:
		return 0, errors.Errorf("obj: unknown index width %d", want)
	}
	return 0, errors.Wrapf(ErrIndexWidth, "%d vertices, width %d", vertexCount, want)
}

// NewMesh validates and packs raw buffers. Every index has to address
// one of the len(positions)/3 vertices.
func NewMesh(positions, normals []float32, indices []uint32, width IndexWidth) (*Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, errors.Errorf("obj: %d position values is not a multiple of 3", len(positions))
	}
	if len(normals)%3 != 0 {
		return nil, errors.Errorf("obj: %d normal values is not a multiple of 3", len(normals))
	}
	if len(indices)%3 != 0 {
		return nil, errors.Errorf("obj: %d indices is not a multiple of 3", len(indices))
	}
	vc := len(positions) / 3
	for i, idx := range indices {
		if int64(idx) >= int64(vc) {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d at %d, %d vertices", idx, i, vc)
		}
	}
	w, err := SelectWidth(vc, width)
	if err != nil {
		return nil, err
	}
	m := &Mesh{
		Positions: positions,
		Normals:   normals,
	}
	if m.Positions == nil {
		m.Positions = []float32{}
	}
	if m.Normals == nil {
		m.Normals = []float32{}
	}
	m.Indices.width = w
	if w == Index32 {
		m.Indices.u32 = make([]uint32, len(indices))
		copy(m.Indices.u32, indices)
	} else {
		m.Indices.u16 = make([]uint16, len(indices))
		for i, idx := range indices {
			m.Indices.u16[i] = uint16(idx)
		}
	}
	return m, nil
}
