// Package tridiag implements a factor-once/solve-many tridiagonal linear
// solver — the fast path taken by the neutral integrator, where every
// per-axis operator is tridiagonal.
//
// 🚀 Why a dedicated solver?
//
//	The implicit half of a Crank–Nicolson step solves the SAME tridiagonal
//	system for every 1-D slice of the spectrum tensor — thousands of solves
//	per factorization. gonum's Tridiag re-factorizes on every solve; here
//	the pivot-free LU (Thomas) factors are computed once by Factorize and
//	reused by every Solve.
//
// The systems arising from the drift operator are strictly diagonally
// dominant, so the pivot-free elimination is numerically safe; a vanishing
// pivot is still detected and reported.
//
// ⚙️ Usage:
//
//	sys, _ := tridiag.New(sub, diag, sup)
//	_ = sys.Factorize()            // once per parameter regime
//	for each slice {
//	  _ = sys.Solve(dst, rhs)      // O(n) per slice
//	}
//
// Performance:
//
//   - Factorize: O(n)
//   - Solve:     O(n), no allocation
package tridiag
