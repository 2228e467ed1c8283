// SPDX-License-Identifier: GPL-2.0-or-later

package obj

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PositionDivisor divides every vertex position at parse time so that
// typical models fit the normalized viewing volume.
const PositionDivisor = 5

// Record is the parse result of a single line.
// It is one of Position, Normal, Face or Ignored.
type Record interface {
	record()
}

// Position is a 'v' line, already divided by PositionDivisor.
type Position struct {
	X, Y, Z float32
}

// Normal is a 'vn' line.
type Normal struct {
	X, Y, Z float32
}

// Face is an 'f' line. Refs are 0-based indices into the positions.
// Refs is nil when the face has an unsupported number of vertices,
// Count still holds the number of references found on the line.
type Face struct {
	Refs  []int
	Count int
}

// Ignored is anything not understood: blank lines, comments, unknown
// statements and malformed vertex lines.
type Ignored struct{}

func (Position) record() {}
func (Normal) record()   {}
func (Face) record()     {}
func (Ignored) record()  {}

// Triangles returns the fan triangulation of the face.
// Quads are split into (a,b,c) and (c,d,a).
func (f Face) Triangles() [][3]int {
	r := f.Refs
	switch len(r) {
	case 3:
		return [][3]int{{r[0], r[1], r[2]}}
	case 4:
		return [][3]int{
			{r[0], r[1], r[2]},
			{r[2], r[3], r[0]},
		}
	}
	return nil
}

// ParseLine classifies one line of mesh text.
// The only error is a face reference that is not a positive integer.
func ParseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Ignored{}, nil
	}
	switch fields[0] {
	case "v":
		x, y, z, ok := parseVec3(fields[1:])
		if !ok {
			return Ignored{}, nil
		}
		return Position{
			X: float32(x / PositionDivisor),
			Y: float32(y / PositionDivisor),
			Z: float32(z / PositionDivisor),
		}, nil
	case "vn":
		x, y, z, ok := parseVec3(fields[1:])
		if !ok {
			return Ignored{}, nil
		}
		return Normal{X: float32(x), Y: float32(y), Z: float32(z)}, nil
	case "f":
		refs := fields[1:]
		if len(refs) != 3 && len(refs) != 4 {
			return Face{Count: len(refs)}, nil
		}
		f := Face{
			Refs:  make([]int, len(refs)),
			Count: len(refs),
		}
		for i, s := range refs {
			idx, err := parseRef(s)
			if err != nil {
				return nil, err
			}
			f.Refs[i] = idx
		}
		return f, nil
	}
	return Ignored{}, nil
}

func parseVec3(f []string) (float64, float64, float64, bool) {
	if len(f) < 3 {
		return 0, 0, 0, false
	}
	var v [3]float64
	for i := range v {
		p, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return 0, 0, 0, false
		}
		v[i] = p
	}
	return v[0], v[1], v[2], true
}

// parseRef reads 'pos[/tex][/norm]' and returns pos-1.
func parseRef(s string) (int, error) {
	pos, _, _ := strings.Cut(s, "/")
	n, err := strconv.ParseInt(pos, 10, 64)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(pos, "-") {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "%q", s)
	}
	if err != nil {
		return 0, errors.Wrapf(ErrBadReference, "%q", s)
	}
	if n < 1 {
		// 0 is invalid and negative (relative) references are not supported
		return 0, errors.Wrapf(ErrBadReference, "%q", s)
	}
	// indices are stored as uint32
	if n-1 > math.MaxUint32 || n-1 > math.MaxInt {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "%q", s)
	}
	return int(n - 1), nil
}
