package linsys

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/popgenio/diffuse/tensor"
)

var (
	// ErrBadSize indicates an axis length too small to carry a spectrum.
	ErrBadSize = errors.New("linsys: axis length must be at least 2")

	// ErrClosureShape indicates a jackknife matrix whose dimensions do not
	// match the requested axis length.
	ErrClosureShape = errors.New("linsys: closure matrix does not match axis length")

	// ErrRateCount indicates a mutation-rate vector whose length differs
	// from the tensor rank.
	ErrRateCount = errors.New("linsys: one mutation rate per axis is required")
)

// Drift returns the unscaled drift generator for an axis of length d
// (sample size n = d-1): a tridiagonal matrix with
//
//	D[i][i-1] = (i-1)(d-i)
//	D[i][i]   = -2·i·(d-1-i)
//	D[i][i+1] = (i+1)(d-i-2)
//
// Column sums are exactly zero and the corner bins 0 and d-1 are absorbing.
// The integrator scales by 1/(4N).
func Drift(d int) (*mat.Dense, error) {
	if d < 2 {
		return nil, ErrBadSize
	}
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		if i > 1 {
			m.Set(i, i-1, float64((i-1)*(d-i)))
		}
		if i > 0 && i < d-1 {
			m.Set(i, i, float64(-2*i*(d-1-i)))
		}
		if i < d-2 {
			m.Set(i, i+1, float64((i+1)*(d-i-2)))
		}
	}

	return m, nil
}

// Selection returns the unscaled h-weighted selection component for an axis
// of length d, closed with the one-step jackknife matrix jk (shape
// (d-1) × (d-2), from jackknife.OneStep(d-1)). Row i combines the closure
// estimates of the order-(d) spectrum at bins i and i+1 with weights
//
//	g1 =  i·(d-i)/d        (zero at the low corner)
//	g2 = -(i+1)·(d-1-i)/d  (zero at the high corner)
//
// so the flux telescopes and every column sums to zero.
// The integrator scales by s·h.
func Selection(d int, jk mat.Matrix) (*mat.Dense, error) {
	if d < 2 {
		return nil, ErrBadSize
	}
	n := d - 1
	if r, c := jk.Dims(); r != n || c != n-1 {
		return nil, fmt.Errorf("linsys: axis length %d, one-step closure %dx%d: %w", d, r, c, ErrClosureShape)
	}

	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		g1 := float64(i*(d-i)) / float64(d)
		g2 := -float64((i+1)*(d-1-i)) / float64(d)
		if i >= 1 && g1 != 0 {
			accumulateRow(m, i, g1, jk, i-1) // order-(n+1) bin i
		}
		if i <= d-2 && g2 != 0 {
			accumulateRow(m, i, g2, jk, i) // order-(n+1) bin i+1
		}
	}

	return m, nil
}

// SelectionDominance returns the unscaled dominance-deviation selection
// component for an axis of length d, closed with the two-step jackknife
// matrix jk2 (shape d × (d-2), from jackknife.TwoStep(d-1)). Row i combines
// the order-(d+1) estimates at bins i+1 and i+2 with weights
//
//	g1 =  i·(i+1)·(d-i)     / (d·(d+1))
//	g2 = -(i+1)·(i+2)·(d-1-i) / (d·(d+1))
//
// and again telescopes to zero column sums.
// The integrator scales by s·(1-2h).
func SelectionDominance(d int, jk2 mat.Matrix) (*mat.Dense, error) {
	if d < 2 {
		return nil, ErrBadSize
	}
	n := d - 1
	if r, c := jk2.Dims(); r != n+1 || c != n-1 {
		return nil, fmt.Errorf("linsys: axis length %d, two-step closure %dx%d: %w", d, r, c, ErrClosureShape)
	}

	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		g1 := float64(i*(i+1)*(d-i)) / float64(d*(d+1))
		g2 := -float64((i+1)*(i+2)*(d-1-i)) / float64(d*(d+1))
		if g1 != 0 {
			accumulateRow(m, i, g1, jk2, i) // order-(n+2) bin i+1
		}
		if g2 != 0 {
			accumulateRow(m, i, g2, jk2, i+1) // order-(n+2) bin i+2
		}
	}

	return m, nil
}

// accumulateRow adds w times row jr of the closure matrix into row i of m,
// shifting closure columns (interior bins 1..d-2) to spectrum columns.
func accumulateRow(m *mat.Dense, i int, w float64, jk mat.Matrix, jr int) {
	_, cols := jk.Dims()
	for c := 0; c < cols; c++ {
		if v := jk.At(jr, c); v != 0 {
			m.Set(i, c+1, m.At(i, c+1)+w*v)
		}
	}
}

// MutationSource returns the infinite-sites mutation injection tensor for
// the given spectrum shape and per-axis rates u: mass (d_k-1)·u_k deposited
// into the singleton bin of axis k (index 1 on axis k, 0 elsewhere).
// The integrator adds dt·B once per step, independent of the tensor state.
func MutationSource(shape []int, u []float64) (*tensor.Dense, error) {
	if len(u) != len(shape) {
		return nil, ErrRateCount
	}
	b, err := tensor.New(shape...)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(shape))
	for k, d := range shape {
		if d < 2 {
			return nil, ErrBadSize
		}
		for a := range idx {
			idx[a] = 0
		}
		idx[k] = 1
		if err = b.Set(float64(d-1)*u[k], idx...); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// ReversibleMutation returns the finite-genome mutation generator for one
// axis of length d with forward rate u (0→1 mutations) and backward rate v:
//
//	M[i][i-1] =  u·(n-i+1)
//	M[i][i]   = -(u·(n-i) + v·i)
//	M[i][i+1] =  v·(i+1)
//
// with n = d-1. Column sums are exactly zero: back-mutation moves mass
// between bins, including the tracked monomorphic corners, without losing
// any. The integrator applies I + dt·M along the axis each step.
func ReversibleMutation(d int, u, v float64) (*mat.Dense, error) {
	if d < 2 {
		return nil, ErrBadSize
	}
	n := d - 1
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		if i > 0 {
			m.Set(i, i-1, u*float64(n-i+1))
		}
		m.Set(i, i, -(u*float64(n-i) + v*float64(i)))
		if i < n {
			m.Set(i, i+1, v*float64(i+1))
		}
	}

	return m, nil
}
