// Package diffuse integrates the multi-population allele-frequency spectrum
// forward in time under drift, selection and mutation — the deterministic,
// expectation-based diffusion approximation used in demographic inference.
//
// 🚀 What is diffuse?
//
//	A pure-numerics library that advances an N-dimensional probability-mass
//	tensor (the joint site-frequency spectrum) by solving the moment system
//	of the Wright–Fisher diffusion with an operator-splitting scheme:
//		• Per-axis operators: drift, two-component dominance selection,
//		  boundary or reversible mutation
//		• Dimensional splitting: every implicit N-D solve reduced to a
//		  sequence of 1-D solves via tensor transposition
//		• Crank–Nicolson time stepping with adaptive step control tied to
//		  population-size change
//		• A tridiagonal fast path for the fully neutral case
//
// ✨ Why choose diffuse?
//
//   - Deterministic – no stochastic simulation, exact expectations
//   - Honest numerics – mass-conserving operators, factor-once solvers
//   - Small API – hand it a tensor and a size history, get a tensor back
//
// Everything is organized under five subpackages:
//
//	tensor/    — dense N-D tensor, axis permutation & splitting driver
//	tridiag/   — factor-once Thomas solver for the neutral fast path
//	jackknife/ — three-point moment-closure coefficient matrices
//	linsys/    — per-axis drift / selection / mutation operator builders
//	integrate/ — adaptive time loop and the two top-level integrators
//
// Quick start:
//
//	import "github.com/popgenio/diffuse/integrate"
//
//	fs, err := integrate.Neutral(initial, integrate.Const(1), 5, nil)
//
// See integrate/example_test.go for complete runnable scenarios.
package diffuse
