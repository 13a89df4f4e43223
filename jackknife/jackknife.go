package jackknife

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSampleTooSmall indicates a sample size below the minimum the
// three-point closure supports.
var ErrSampleTooSmall = errors.New("jackknife: sample size must be at least 4")

// moment returns the k-th monomial moment of bin i of an order-n spectrum:
// the value Phi_n(i) takes when the underlying density is x^k, i.e.
// C(n,i)·Beta(i+k+1, n-i+1) in closed form.
func moment(k, n, i int) float64 {
	switch k {
	case 0:
		return 1 / float64(n+1)
	case 1:
		return float64(i+1) / float64((n+1)*(n+2))
	default:
		return float64((i+1)*(i+2)) / float64((n+1)*(n+2)*(n+3))
	}
}

// anchor returns the center column of the three-point stencil used to
// estimate bin i of the order-target spectrum from an order-n spectrum,
// clamped so the stencil stays inside the interior 1..n-1.
func anchor(i, n, target int) int {
	j := int(math.Round(float64(i*n) / float64(target)))
	if j < 2 {
		j = 2
	}
	if j > n-2 {
		j = n - 2
	}

	return j
}

// closure assembles the (rows × n-1) coefficient matrix estimating interior
// bins 1..rows of the order-target spectrum from interior bins 1..n-1 of
// the order-n spectrum. For each target bin the three stencil weights solve
// the 3×3 exactness system on the monomial moments of degree 0..2.
func closure(n, target, rows int) (*mat.Dense, error) {
	coeff := mat.NewDense(rows, n-1, nil)
	a := mat.NewDense(3, 3, nil)
	b := mat.NewVecDense(3, nil)
	var x mat.VecDense
	for r := 0; r < rows; r++ {
		i := r + 1 // target interior bin
		j := anchor(i, n, target)
		for k := 0; k < 3; k++ {
			for c := 0; c < 3; c++ {
				a.Set(k, c, moment(k, n, j-1+c))
			}
			b.SetVec(k, moment(k, target, i))
		}
		if err := x.SolveVec(a, b); err != nil {
			// Distinct stencil bins make the system non-singular; failure
			// here means the inputs were malformed.
			return nil, fmt.Errorf("jackknife: closure for bin %d of order %d: %w", i, target, err)
		}
		for c := 0; c < 3; c++ {
			coeff.Set(r, j-2+c, x.AtVec(c))
		}
	}

	return coeff, nil
}

// OneStep returns the closure matrix estimating the interior of an
// order-(n+1) spectrum from the interior of an order-n spectrum.
// The result has n rows (target bins 1..n) and n-1 columns (source bins
// 1..n-1). Requires n ≥ 4.
func OneStep(n int) (*mat.Dense, error) {
	if n < 4 {
		return nil, ErrSampleTooSmall
	}

	return closure(n, n+1, n)
}

// TwoStep returns the closure matrix estimating the interior of an
// order-(n+2) spectrum from the interior of an order-n spectrum.
// The result has n+1 rows (target bins 1..n+1) and n-1 columns.
// Requires n ≥ 4.
func TwoStep(n int) (*mat.Dense, error) {
	if n < 4 {
		return nil, ErrSampleTooSmall
	}

	return closure(n, n+2, n+1)
}
