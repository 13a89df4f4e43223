// Package linsys builds the per-axis linear operators of the spectrum
// moment system: drift, the two dominance components of selection, and the
// two mutation models.
//
// The time evolution of the order-n spectrum along one population axis is
// written as the approximated linear system
//
//	Phi' = B(N) + (1/(4N)·D + s·h·S + s·(1-2h)·S2) · Phi
//
// where D is the drift generator, S and S2 the selection components closed
// with the jackknife matrices, and B the mutation source. All builders
// return UNSCALED structural matrices; the integrator applies the
// population-size and selection scalings, which change between steps, to
// the structure, which does not.
//
// Mass bookkeeping: D, S and S2 all have exactly zero column sums, so
// drift and selection redistribute mass (including into the monomorphic
// corners) without creating or destroying it. The infinite-sites source B
// is the only term injecting new mass; the finite-genome generator from
// ReversibleMutation again has zero column sums.
package linsys
