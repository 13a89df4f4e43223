// Package tensor provides the dense N-dimensional array that carries the
// allele-frequency spectrum, together with the axis-permutation machinery
// that powers the dimensional-splitting integration scheme.
//
// 🚀 What is tensor?
//
//	A flat, row-major float64 container of rank 1..5 (and beyond) with:
//	  • O(1) element access through explicit multi-indices
//	  • materialized axis permutation (Transpose)
//	  • a splitting driver that applies a per-axis linear operator — or a
//	    per-axis linear-system solver — along every axis of the tensor in
//	    fixed ascending order
//
// The splitting protocol is always the same: permute the target axis to the
// front, view the tensor as a 2-D (axis × rest) matrix, act on it, permute
// back. Applying identity operators along every axis is a no-op — the
// round-trip law the integrators rely on.
//
// ⚙️ Usage:
//
//	fs, _ := tensor.New(11, 11)            // 2-population spectrum, n=10 each
//	out, _ := tensor.ApplyAll(fs, ops)     // explicit half-step
//	out, _ = tensor.SolveAll(out, solvers) // implicit half-step
//
// Performance:
//
//   - Transpose: O(size · rank)
//   - ApplyAxis: one dense (d×d)·(d×m) product via gonum
//   - SolveAxis: m independent 1-D solves of length d
//
// See example_test.go for runnable demonstrations.
package tensor
