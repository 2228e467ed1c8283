// SPDX-License-Identifier: GPL-2.0-or-later

// Package meshfile stores parsed meshes in a compact binary form so they
// can be loaded without parsing text again.
//
// Layout: the little endian magic "MESH" followed by protobuf wire encoded
// fields
//
//	1 version      varint
//	2 positions    packed fixed32 (float bits)
//	3 normals      packed fixed32 (float bits)
//	4 index width  varint
//	5 indices      packed varint
//	6 checksum     varint, CRC-16 of all preceding bytes
//
// The checksum is optional when decoding. If present it has to be the last
// field. Marshal always writes it.
package meshfile

import (
	"encoding/binary"
	"io"
	"math"

	"meshview/crc"
	"meshview/model"
	"meshview/obj"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	Magic   uint32 = 'M' | 'E'<<8 | 'S'<<16 | 'H'<<24
	Version        = 1
)

const (
	fieldVersion   protowire.Number = 1
	fieldPositions protowire.Number = 2
	fieldNormals   protowire.Number = 3
	fieldWidth     protowire.Number = 4
	fieldIndices   protowire.Number = 5
	fieldChecksum  protowire.Number = 6
)

var (
	ErrNotMeshFile = errors.New("meshfile: bad magic")
	ErrVersion     = errors.New("meshfile: unsupported version")
	ErrChecksum    = errors.New("meshfile: checksum mismatch")
)

func init() {
	model.Register(Magic, Load)
}

// Load is the model.LoadFunc for compiled meshes.
func Load(name string, data []byte) (*obj.Mesh, error) {
	m, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return m, nil
}

func appendFloats(b []byte, num protowire.Number, v []float32) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(4*len(v)))
	for _, f := range v {
		b = protowire.AppendFixed32(b, math.Float32bits(f))
	}
	return b
}

// Marshal returns the binary form of m.
func Marshal(m *obj.Mesh) []byte {
	return appendChecksum(marshalFields(m))
}

func marshalFields(m *obj.Mesh) []byte {
	b := make([]byte, 4, 16+4*len(m.Positions)+4*len(m.Normals)+3*m.Indices.Len())
	binary.LittleEndian.PutUint32(b, Magic)
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, Version)
	b = appendFloats(b, fieldPositions, m.Positions)
	b = appendFloats(b, fieldNormals, m.Normals)
	b = protowire.AppendTag(b, fieldWidth, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Indices.Width()))
	if n := m.Indices.Len(); n > 0 {
		var packed []byte
		for i := 0; i < n; i++ {
			packed = protowire.AppendVarint(packed, uint64(m.Indices.At(i)))
		}
		b = protowire.AppendTag(b, fieldIndices, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

func appendChecksum(b []byte) []byte {
	sum := crc.Checksum(b)
	b = protowire.AppendTag(b, fieldChecksum, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(sum))
}

func Encode(w io.Writer, m *obj.Mesh) error {
	_, err := w.Write(Marshal(m))
	return err
}

func consumeFloats(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, errors.Errorf("meshfile: packed floats of %d bytes", len(b))
	}
	r := make([]float32, 0, len(b)/4)
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		r = append(r, math.Float32frombits(v))
		b = b[n:]
	}
	return r, nil
}

func consumeIndices(b []byte) ([]uint32, error) {
	var r []uint32
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		if v > math.MaxUint32 {
			return nil, errors.Errorf("meshfile: index %d overflows", v)
		}
		r = append(r, uint32(v))
		b = b[n:]
	}
	return r, nil
}

// Decode parses the binary form. The buffers are validated the same way
// parsed text is.
func Decode(data []byte) (*obj.Mesh, error) {
	if len(data) < 4 || binary.LittleEndian.Uint32(data) != Magic {
		return nil, ErrNotMeshFile
	}
	b := data[4:]
	var (
		version   uint64
		positions []float32
		normals   []float32
		indices   []uint32
		width     = obj.IndexAuto
		checked   bool
	)
	for len(b) > 0 {
		if checked {
			// the checksum has to be the last field
			return nil, errors.Wrap(ErrChecksum, "data after checksum")
		}
		offset := len(data) - len(b)
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "meshfile")
		}
		b = b[n:]
		var err error
		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			version, n = protowire.ConsumeVarint(b)
		case num == fieldChecksum && typ == protowire.VarintType:
			var sum uint64
			sum, n = protowire.ConsumeVarint(b)
			if n >= 0 && sum != uint64(crc.Checksum(data[:offset])) {
				return nil, ErrChecksum
			}
			checked = true
		case num == fieldWidth && typ == protowire.VarintType:
			var w uint64
			w, n = protowire.ConsumeVarint(b)
			width = obj.IndexWidth(w)
		case typ == protowire.BytesType &&
			(num == fieldPositions || num == fieldNormals || num == fieldIndices):
			var v []byte
			v, n = protowire.ConsumeBytes(b)
			if n < 0 {
				break
			}
			switch num {
			case fieldPositions:
				positions, err = consumeFloats(v)
			case fieldNormals:
				normals, err = consumeFloats(v)
			case fieldIndices:
				indices, err = consumeIndices(v)
			}
		default:
			// unknown fields are skipped for forward compatibility
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "meshfile")
		}
		if err != nil {
			return nil, err
		}
		b = b[n:]
	}
	if version != Version {
		return nil, errors.Wrapf(ErrVersion, "version %d", version)
	}
	return obj.NewMesh(positions, normals, indices, width)
}
