package integrate

import (
	"fmt"
	"os"
)

// Param is the scalar-or-vector-or-function variant used for population
// sizes, selection coefficients, dominance coefficients and mutation rates.
//
// A Param holds exactly one of four cases:
//   - a constant scalar, broadcast to every population (Const)
//   - a constant per-population vector (PerPop)
//   - a scalar function of time, broadcast at each evaluation (Varying)
//   - a vector function of time (VaryingPerPop)
//
// The zero Param is "unset" and resolves to the consumer's default. All
// cases are normalized once, before the time loop, into a single
// evaluate-at-t closure — there is no per-use-site type switching.
type Param struct {
	kind     paramKind
	scalar   float64
	vector   []float64
	scalarFn func(t float64) float64
	vectorFn func(t float64) []float64
}

type paramKind uint8

const (
	paramUnset paramKind = iota
	paramScalar
	paramVector
	paramScalarFunc
	paramVectorFunc
)

// Const returns a Param broadcasting the scalar v to every population.
func Const(v float64) Param { return Param{kind: paramScalar, scalar: v} }

// PerPop returns a Param holding one fixed value per population. The slice
// is copied.
func PerPop(v []float64) Param {
	return Param{kind: paramVector, vector: append([]float64(nil), v...)}
}

// Varying returns a time-varying Param broadcast to every population.
// The function receives time in the caller's units (the same units as tf).
func Varying(f func(t float64) float64) Param {
	return Param{kind: paramScalarFunc, scalarFn: f}
}

// VaryingPerPop returns a time-varying per-population Param. The returned
// vector must always have one entry per population.
func VaryingPerPop(f func(t float64) []float64) Param {
	return Param{kind: paramVectorFunc, vectorFn: f}
}

// Options configures an integration run. The zero value of each field
// selects the documented default; pass nil to the integrators for all
// defaults.
//
//   - DtFac        — base step as a fraction of the horizon (default 0.1).
//   - Gamma        — scaled selection coefficients (default 0, neutral).
//   - H            — dominance coefficients (default 0.5, genic selection).
//   - Theta        — scaled mutation rate for the infinite-sites model
//     (default 1).
//   - FiniteGenome — reversible-mutation model tracking the monomorphic
//     bins; requires ThetaFD and ThetaBD, ignores Theta.
//   - ThetaFD/ThetaBD — forward/backward scaled rates (finite genome only).
//   - Frozen       — per-population flags; frozen populations keep their
//     axis but stop drifting, selecting and mutating.
//   - Warnf        — sink for non-fatal diagnostics (default: stderr).
type Options struct {
	DtFac        float64
	Gamma        Param
	H            Param
	Theta        Param
	FiniteGenome bool
	ThetaFD      Param
	ThetaBD      Param
	Frozen       []bool
	Warnf        func(format string, args ...any)
}

// DefaultOptions returns the canonical defaults: DtFac 0.1, neutral
// selection, theta 1, no frozen populations, warnings to stderr.
func DefaultOptions() Options {
	return Options{DtFac: defaultDtFac}
}

const defaultDtFac = 0.1

// warnf returns the configured diagnostic sink, or the stderr default.
func (o *Options) warnf() func(string, ...any) {
	if o.Warnf != nil {
		return o.Warnf
	}

	return func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
