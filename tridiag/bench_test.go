package tridiag_test

import (
	"testing"

	"github.com/popgenio/diffuse/tridiag"
)

// BenchmarkSolve measures a single factored solve of a 201-unknown system —
// the shape of one implicit slice for a sample size of 200.
func BenchmarkSolve(b *testing.B) {
	n := 201
	sub := make([]float64, n-1)
	diag := make([]float64, n)
	sup := make([]float64, n-1)
	rhs := make([]float64, n)
	dst := make([]float64, n)
	for i := 0; i < n; i++ {
		diag[i] = 4
		rhs[i] = float64(i % 7)
		if i < n-1 {
			sub[i] = -1
			sup[i] = -1
		}
	}

	sys, err := tridiag.New(sub, diag, sup)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	if err = sys.Factorize(); err != nil {
		b.Fatalf("Factorize failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err = sys.Solve(dst, rhs); err != nil {
			b.Fatalf("Solve failed: %v", err)
		}
	}
}
