package tridiag

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSizeMismatch indicates diagonal slices of inconsistent lengths.
	ErrSizeMismatch = errors.New("tridiag: diagonals must have lengths n, n-1 and n-1")

	// ErrTooSmall indicates a system with fewer than two unknowns.
	ErrTooSmall = errors.New("tridiag: system must have at least two unknowns")

	// ErrZeroPivot indicates the pivot-free elimination hit a zero pivot;
	// the system is singular or needs pivoting.
	ErrZeroPivot = errors.New("tridiag: zero pivot encountered during factorization")

	// ErrNotFactorized indicates Solve was called before Factorize.
	ErrNotFactorized = errors.New("tridiag: Solve called before Factorize")

	// ErrVectorLength indicates a right-hand side or destination of the
	// wrong length.
	ErrVectorLength = errors.New("tridiag: vector length does not match system size")

	// ErrNotTridiagonal indicates a dense matrix with mass outside its
	// three central diagonals.
	ErrNotTridiagonal = errors.New("tridiag: matrix has entries off the three diagonals")
)

// System is a tridiagonal linear system. sub, diag and sup are the three
// diagonals of the coefficient matrix; lfac and dfac hold the pivot-free LU
// factors once Factorize has run.
type System struct {
	n              int
	sub, diag, sup []float64
	lfac, dfac     []float64
}

// New builds a System from the three diagonals: sub (length n-1, below the
// main diagonal), diag (length n) and sup (length n-1, above). The slices
// are copied; the caller keeps ownership of its own storage.
func New(sub, diag, sup []float64) (*System, error) {
	n := len(diag)
	if n < 2 {
		return nil, ErrTooSmall
	}
	if len(sub) != n-1 || len(sup) != n-1 {
		return nil, ErrSizeMismatch
	}

	return &System{
		n:    n,
		sub:  append([]float64(nil), sub...),
		diag: append([]float64(nil), diag...),
		sup:  append([]float64(nil), sup...),
	}, nil
}

// Diagonals extracts the three central diagonals of a tridiagonal dense
// matrix. Any non-zero entry outside those diagonals is rejected with
// ErrNotTridiagonal; no mass is ever dropped silently.
func Diagonals(m mat.Matrix) (sub, diag, sup []float64, err error) {
	r, c := m.Dims()
	if r != c {
		return nil, nil, nil, ErrSizeMismatch
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j < i-1 || j > i+1 {
				if m.At(i, j) != 0 {
					return nil, nil, nil, fmt.Errorf("tridiag: entry (%d,%d) is non-zero: %w", i, j, ErrNotTridiagonal)
				}
			}
		}
	}

	sub = make([]float64, r-1)
	diag = make([]float64, r)
	sup = make([]float64, r-1)
	for i := 0; i < r; i++ {
		diag[i] = m.At(i, i)
		if i > 0 {
			sub[i-1] = m.At(i, i-1)
		}
		if i < r-1 {
			sup[i] = m.At(i, i+1)
		}
	}

	return sub, diag, sup, nil
}

// N returns the number of unknowns.
func (s *System) N() int { return s.n }

// Factorize computes and caches the pivot-free LU factors (the Thomas
// scheme): for each row i, the multiplier l_i = sub_i / d'_{i-1} and the
// eliminated diagonal d'_i = diag_i - l_i · sup_{i-1}.
// Complexity: O(n). The System is immutable once built, so Factorize is
// idempotent.
func (s *System) Factorize() error {
	lfac := make([]float64, s.n-1)
	dfac := make([]float64, s.n)

	dfac[0] = s.diag[0]
	for i := 1; i < s.n; i++ {
		if dfac[i-1] == 0 {
			return fmt.Errorf("tridiag: row %d: %w", i-1, ErrZeroPivot)
		}
		lfac[i-1] = s.sub[i-1] / dfac[i-1]
		dfac[i] = s.diag[i] - lfac[i-1]*s.sup[i-1]
	}
	if dfac[s.n-1] == 0 {
		return fmt.Errorf("tridiag: row %d: %w", s.n-1, ErrZeroPivot)
	}

	s.lfac = lfac
	s.dfac = dfac

	return nil
}

// Solve solves the factorized system for one right-hand side, writing the
// solution into dst. dst and rhs must both have length n and may not alias.
// Complexity: O(n), allocation-free.
func (s *System) Solve(dst, rhs []float64) error {
	if s.lfac == nil {
		return ErrNotFactorized
	}
	if len(dst) != s.n || len(rhs) != s.n {
		return ErrVectorLength
	}

	// Forward substitution: L·y = rhs, y stored in dst.
	dst[0] = rhs[0]
	for i := 1; i < s.n; i++ {
		dst[i] = rhs[i] - s.lfac[i-1]*dst[i-1]
	}

	// Back substitution: U·x = y.
	dst[s.n-1] /= s.dfac[s.n-1]
	for i := s.n - 2; i >= 0; i-- {
		dst[i] = (dst[i] - s.sup[i]*dst[i+1]) / s.dfac[i]
	}

	return nil
}
