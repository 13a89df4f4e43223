// Package integrate advances an allele-frequency spectrum tensor forward
// in genetic time by solving the diffusion moment system without migration.
//
// 🚀 What does it do?
//
//	Each population axis carries a linear operator A = 1/(4N)·D + s·h·S +
//	s·(1-2h)·S2 built by linsys. A Crank–Nicolson-style split advances the
//	tensor: an explicit half-step Q = I + dt/2·A along every axis, the
//	mutation term, then an implicit half-step solving I - dt/2·A along
//	every axis — reduced to 1-D solves by the tensor splitting driver.
//
// Two entry points:
//
//   - NoMigration — arbitrary selection and dominance; the implicit solve
//     factorizes each axis operator once per parameter regime (gonum LU)
//     and reuses the factorization for every slice.
//   - Neutral — zero selection everywhere; the axis operators are purely
//     tridiagonal and the implicit solve takes the tridiag fast path.
//
// Time stepping is adaptive: the step honours a stability bound in the
// current population sizes and selection strength, and when sizes vary in
// time the controller halves the step (up to 10 times) until the relative
// size change across the step is acceptable, warning and proceeding when
// it cannot.
//
// Parameters (sizes, selection, dominance, mutation rates) are Param
// values: a constant scalar, a per-population vector, or a function of
// time, all normalized up front into evaluate-at-t closures.
//
// Conventions: tf is measured in units of 2·N_ref generations and the
// internal horizon is Tmax = 2·tf; selection coefficients are the scaled
// gamma = 2·N_ref·s; theta is the scaled mutation rate 4·N_ref·u. Frozen
// populations keep their axis but stop evolving: their size is pinned to
// an effectively infinite constant and their selection and mutation rates
// to zero.
//
// Errors are fatal and immediate: a non-positive population size at ANY
// evaluated time aborts the integration with no partial result.
package integrate
