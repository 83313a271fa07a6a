package core

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions reports a lattice construction with a zero rank or
// a non-positive extent.
var ErrInvalidDimensions = errors.New("core: invalid dimensions")

// ErrOutOfBounds reports a coordinate outside the lattice extent.
var ErrOutOfBounds = errors.New("core: coordinate out of bounds")

// Lattice addresses an N-dimensional grid stored in a flat slice. Cells
// are laid out with axis 0 fastest (row-major generalized to arbitrary
// rank), and neighbor lookups wrap toroidally along every axis.
type Lattice struct {
	dims    []int
	strides []int
	n       int
}

// NewLattice validates the extents and precomputes strides.
func NewLattice(dims []int) (*Lattice, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidDimensions)
	}
	l := &Lattice{
		dims:    append([]int(nil), dims...),
		strides: make([]int, len(dims)),
		n:       1,
	}
	for axis, extent := range dims {
		if extent <= 0 {
			return nil, fmt.Errorf("%w: axis %d extent %d", ErrInvalidDimensions, axis, extent)
		}
		l.strides[axis] = l.n
		l.n *= extent
	}
	return l, nil
}

// Len returns the total cell count.
func (l *Lattice) Len() int { return l.n }

// Rank returns the number of axes.
func (l *Lattice) Rank() int { return len(l.dims) }

// Dims returns a copy of the axis extents.
func (l *Lattice) Dims() []int { return append([]int(nil), l.dims...) }

// Index converts a coordinate vector to a linear index. The coordinate
// must have one entry per axis and lie inside the extents.
func (l *Lattice) Index(coord []int) (int, error) {
	if len(coord) != len(l.dims) {
		return 0, fmt.Errorf("%w: coordinate rank %d, lattice rank %d", ErrOutOfBounds, len(coord), len(l.dims))
	}
	idx := 0
	for axis, c := range coord {
		if c < 0 || c >= l.dims[axis] {
			return 0, fmt.Errorf("%w: axis %d value %d outside [0,%d)", ErrOutOfBounds, axis, c, l.dims[axis])
		}
		idx += c * l.strides[axis]
	}
	return idx, nil
}

// Coord decomposes a linear index into buf, which must have one entry
// per axis.
func (l *Lattice) Coord(idx int, buf []int) {
	for axis := range l.dims {
		buf[axis] = (idx / l.strides[axis]) % l.dims[axis]
	}
}

// AppendNeighbors appends the linear indices of the 2N axis-wise ±1
// neighbors of idx to dst, wrapping toroidally, and returns the extended
// slice. Axes of extent 1 wrap onto the cell itself and axes of extent 2
// yield the same neighbor in both directions; callers aggregate over the
// returned list as-is so the boundary policy stays uniform.
func (l *Lattice) AppendNeighbors(dst []int, idx int) []int {
	for axis, extent := range l.dims {
		c := (idx / l.strides[axis]) % extent
		stride := l.strides[axis]
		down := idx - c*stride + ((c-1+extent)%extent)*stride
		up := idx - c*stride + ((c+1)%extent)*stride
		dst = append(dst, down, up)
	}
	return dst
}
