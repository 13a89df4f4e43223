package tensor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dimensional splitting
//
// Description:
//
//	An N-dimensional implicit problem is reduced to N one-dimensional ones
//	by acting along a single axis at a time. To act on axis k, the tensor
//	is permuted so k becomes the leading axis, viewed as a 2-D matrix of
//	shape (extent(k) × rest), transformed, and permuted back.
//
// Ordering:
//
//	ApplyAll and SolveAll always walk axes in ascending order. The per-axis
//	operators commute only approximately, so a fixed order — applied
//	identically on every step — avoids step-to-step bias.
//
// Errors:
//   - ErrAxisOutOfRange — axis index not in [0, rank).
//   - ErrOperatorCount  — operator/solver list length differs from rank.
//   - ErrOperatorShape  — operator is not square of the axis extent.
var (
	// ErrAxisOutOfRange indicates an axis index outside [0, rank).
	ErrAxisOutOfRange = errors.New("tensor: axis out of range")

	// ErrOperatorCount indicates an operator list whose length differs from
	// the tensor rank: dimensional splitting needs exactly one per axis.
	ErrOperatorCount = errors.New("tensor: one operator per tensor axis is required")

	// ErrOperatorShape indicates a per-axis operator that is not square of
	// the axis extent.
	ErrOperatorShape = errors.New("tensor: operator size does not match axis extent")
)

// AxisSolver solves one 1-D linear system for a single slice along an axis,
// writing the solution into dst. dst and rhs have the axis extent as length
// and never alias each other.
type AxisSolver interface {
	Solve(dst, rhs []float64) error
}

// leadingPerm returns the permutation that swaps the given axis with axis 0
// and leaves every other axis in place. A swap is its own inverse, so the
// same permutation undoes the move.
func leadingPerm(rank, axis int) []int {
	perm := make([]int, rank)
	for a := range perm {
		perm[a] = a
	}
	perm[0], perm[axis] = perm[axis], perm[0]

	return perm
}

// ApplyAxis left-multiplies every slice along the given axis by op,
// returning a new tensor.
// Stage 1 (Validate): axis in range, op square of the axis extent.
// Stage 2 (Execute): permute axis to the front, dense multiply the 2-D
// view, permute back.
// Complexity: O(d² · rest) for the product plus two transposes.
func ApplyAxis(t *Dense, axis int, op mat.Matrix) (*Dense, error) {
	if axis < 0 || axis >= t.Rank() {
		return nil, ErrAxisOutOfRange
	}
	d := t.shape[axis]
	if r, c := op.Dims(); r != d || c != d {
		return nil, fmt.Errorf("tensor: axis %d extent %d, operator %dx%d: %w", axis, d, r, c, ErrOperatorShape)
	}

	perm := leadingPerm(t.Rank(), axis)
	fwd, err := t.Transpose(perm...)
	if err != nil {
		return nil, err
	}

	cols := fwd.Len() / d
	view := mat.NewDense(d, cols, fwd.data)
	out := mat.NewDense(d, cols, make([]float64, d*cols))
	out.Mul(op, view)

	res := &Dense{shape: fwd.shape, data: out.RawMatrix().Data}

	return res.Transpose(perm...)
}

// SolveAxis runs the axis solver on every 1-D slice along the given axis,
// returning a new tensor. The permutation protocol is identical to
// ApplyAxis; the inner operation is a per-column solve instead of one
// matrix product.
func SolveAxis(t *Dense, axis int, slv AxisSolver) (*Dense, error) {
	if axis < 0 || axis >= t.Rank() {
		return nil, ErrAxisOutOfRange
	}

	perm := leadingPerm(t.Rank(), axis)
	fwd, err := t.Transpose(perm...)
	if err != nil {
		return nil, err
	}

	d := fwd.shape[0]
	cols := fwd.Len() / d
	rhs := make([]float64, d)
	dst := make([]float64, d)
	for j := 0; j < cols; j++ {
		for i := 0; i < d; i++ {
			rhs[i] = fwd.data[i*cols+j]
		}
		if err = slv.Solve(dst, rhs); err != nil {
			return nil, fmt.Errorf("tensor: solve along axis %d: %w", axis, err)
		}
		for i := 0; i < d; i++ {
			fwd.data[i*cols+j] = dst[i]
		}
	}

	return fwd.Transpose(perm...)
}

// ApplyAll applies ops[k] along axis k for every axis in ascending order.
// Exactly one operator per axis is required.
func ApplyAll(t *Dense, ops []mat.Matrix) (*Dense, error) {
	if len(ops) != t.Rank() {
		return nil, ErrOperatorCount
	}
	cur := t
	var err error
	for k := range ops {
		if cur, err = ApplyAxis(cur, k, ops[k]); err != nil {
			return nil, err
		}
	}

	return cur, nil
}

// SolveAll runs slvs[k] along axis k for every axis in ascending order.
// Exactly one solver per axis is required.
func SolveAll(t *Dense, slvs []AxisSolver) (*Dense, error) {
	if len(slvs) != t.Rank() {
		return nil, ErrOperatorCount
	}
	cur := t
	var err error
	for k := range slvs {
		if cur, err = SolveAxis(cur, k, slvs[k]); err != nil {
			return nil, err
		}
	}

	return cur, nil
}
