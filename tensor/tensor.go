// Package tensor provides a dense, row-major N-dimensional array of
// float64 values and the dimensional-splitting primitives that act on it
// one axis at a time.
package tensor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyShape indicates a tensor was requested with no axes at all.
	ErrEmptyShape = errors.New("tensor: shape must have at least one axis")

	// ErrBadExtent indicates a non-positive axis extent.
	ErrBadExtent = errors.New("tensor: every axis extent must be > 0")

	// ErrLengthMismatch indicates backing data whose length does not equal
	// the product of the axis extents.
	ErrLengthMismatch = errors.New("tensor: data length does not match shape")

	// ErrShapeMismatch indicates two tensors of different shapes were
	// combined element-wise.
	ErrShapeMismatch = errors.New("tensor: shapes do not match")

	// ErrBadPermutation indicates a permutation that is not a rearrangement
	// of exactly the tensor's axes.
	ErrBadPermutation = errors.New("tensor: permutation must rearrange exactly the tensor axes")

	// ErrIndexOutOfBounds indicates a multi-index outside the valid range.
	ErrIndexOutOfBounds = errors.New("tensor: index out of bounds")
)

// Dense is a row-major tensor. shape holds the extent of every axis and
// data holds prod(shape) elements, the last axis varying fastest.
type Dense struct {
	shape []int
	data  []float64
}

// New creates a zero-filled tensor with the given axis extents.
// Stage 1 (Validate): at least one axis, every extent > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return the new Dense.
// Complexity: O(prod(shape)) time and memory.
func New(shape ...int) (*Dense, error) {
	if len(shape) == 0 {
		return nil, ErrEmptyShape
	}
	size := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, ErrBadExtent
		}
		size *= d
	}

	return &Dense{shape: append([]int(nil), shape...), data: make([]float64, size)}, nil
}

// NewFromSlice creates a tensor that adopts data as its backing storage.
// The slice is used directly, not copied; the caller must not alias it.
func NewFromSlice(data []float64, shape ...int) (*Dense, error) {
	t, err := New(shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(t.data) {
		return nil, ErrLengthMismatch
	}
	t.data = data

	return t, nil
}

// Rank returns the number of axes.
func (t *Dense) Rank() int { return len(t.shape) }

// Len returns the total number of elements.
func (t *Dense) Len() int { return len(t.data) }

// Shape returns a copy of the axis extents.
func (t *Dense) Shape() []int { return append([]int(nil), t.shape...) }

// Data exposes the backing slice in row-major order (last axis fastest).
// Mutating it mutates the tensor.
func (t *Dense) Data() []float64 { return t.data }

// Clone returns a deep copy of the tensor.
func (t *Dense) Clone() *Dense {
	cp := make([]float64, len(t.data))
	copy(cp, t.data)

	return &Dense{shape: t.Shape(), data: cp}
}

// Sum returns the total mass held by the tensor.
func (t *Dense) Sum() float64 { return floats.Sum(t.data) }

// offsetOf computes the flat offset for a multi-index, or reports
// ErrIndexOutOfBounds wrapped with the offending position.
func (t *Dense) offsetOf(idx []int) (int, error) {
	if len(idx) != len(t.shape) {
		return 0, fmt.Errorf("tensor: got %d indices for rank %d: %w", len(idx), len(t.shape), ErrIndexOutOfBounds)
	}
	off := 0
	for a, i := range idx {
		if i < 0 || i >= t.shape[a] {
			return 0, fmt.Errorf("tensor: axis %d index %d outside [0,%d): %w", a, i, t.shape[a], ErrIndexOutOfBounds)
		}
		off = off*t.shape[a] + i
	}

	return off, nil
}

// At retrieves the element at the given multi-index.
func (t *Dense) At(idx ...int) (float64, error) {
	off, err := t.offsetOf(idx)
	if err != nil {
		return 0, err
	}

	return t.data[off], nil
}

// Set assigns v at the given multi-index.
func (t *Dense) Set(v float64, idx ...int) error {
	off, err := t.offsetOf(idx)
	if err != nil {
		return err
	}
	t.data[off] = v

	return nil
}

// AddScaled adds alpha*src element-wise into t. Shapes must match exactly.
func (t *Dense) AddScaled(alpha float64, src *Dense) error {
	if !equalShape(t.shape, src.shape) {
		return ErrShapeMismatch
	}
	floats.AddScaled(t.data, alpha, src.data)

	return nil
}

// Transpose returns a new tensor whose axis a is the input's axis perm[a].
// Stage 1 (Validate): perm is a permutation of 0..rank-1.
// Stage 2 (Execute): walk the output in row-major order, gathering from the
// input through permuted strides.
// Complexity: O(size · rank) time, O(size) memory.
func (t *Dense) Transpose(perm ...int) (*Dense, error) {
	rank := len(t.shape)
	if len(perm) != rank {
		return nil, ErrBadPermutation
	}
	seen := make([]bool, rank)
	for _, p := range perm {
		if p < 0 || p >= rank || seen[p] {
			return nil, ErrBadPermutation
		}
		seen[p] = true
	}

	outShape := make([]int, rank)
	for a, p := range perm {
		outShape[a] = t.shape[p]
	}
	inStride := strides(t.shape)

	out := make([]float64, len(t.data))
	idx := make([]int, rank) // multi-index over the output, in lockstep with off
	for off := range out {
		src := 0
		for a := 0; a < rank; a++ {
			src += idx[a] * inStride[perm[a]]
		}
		out[off] = t.data[src]

		for a := rank - 1; a >= 0; a-- {
			idx[a]++
			if idx[a] < outShape[a] {
				break
			}
			idx[a] = 0
		}
	}

	return &Dense{shape: outShape, data: out}, nil
}

// strides returns the row-major stride of every axis.
func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for a := len(shape) - 1; a >= 0; a-- {
		s[a] = acc
		acc *= shape[a]
	}

	return s
}

// equalShape reports whether two shapes are identical.
func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
