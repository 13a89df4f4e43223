// Package jackknife builds the moment-closure coefficient matrices that let
// the selection operators express a higher-order spectrum in terms of the
// one actually tracked.
//
// The selection terms of the diffusion moment system couple the order-n
// spectrum to the order-(n+1) and order-(n+2) spectra. Closure replaces
// those unknowns with a local three-point estimate: each higher-order
// interior bin is written as a weighted sum of three consecutive interior
// bins of the order-n spectrum, with weights chosen so the estimate is
// EXACT whenever the underlying allele-frequency density is a polynomial of
// degree at most two.
//
// OneStep produces the (n × n-1) matrix reaching order n+1; TwoStep the
// ((n+1) × n-1) matrix reaching order n+2. Both matrices act on interior
// bins only (index 1..n-1 of the order-n spectrum); the monomorphic corner
// bins never participate in the closure.
//
// The three-point stencil needs room to sit inside the interior, so the
// sample size must be at least 4.
package jackknife
