package integrate

import (
	"github.com/popgenio/diffuse/tensor"
)

// evalFn produces the per-population value vector at time t (caller units).
// Callers must treat the returned slice as read-only.
type evalFn func(t float64) ([]float64, error)

// fill returns a length-n slice with every entry set to v.
func fill(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}

	return s
}

// constEval wraps a fixed vector as an evalFn.
func constEval(v []float64) evalFn {
	return func(float64) ([]float64, error) { return v, nil }
}

// resolve normalizes a Param into an evaluate-at-t closure producing nPop
// values; unset Params resolve to def broadcast. varying reports whether
// successive evaluations can differ.
func (p Param) resolve(nPop int, def float64) (eval evalFn, varying bool, err error) {
	switch p.kind {
	case paramUnset:
		return constEval(fill(nPop, def)), false, nil
	case paramScalar:
		return constEval(fill(nPop, p.scalar)), false, nil
	case paramVector:
		if len(p.vector) != nPop {
			return nil, false, ErrLengthMismatch
		}

		return constEval(append([]float64(nil), p.vector...)), false, nil
	case paramScalarFunc:
		f := p.scalarFn

		return func(t float64) ([]float64, error) { return fill(nPop, f(t)), nil }, true, nil
	default:
		f := p.vectorFn

		return func(t float64) ([]float64, error) {
			v := f(t)
			if len(v) != nPop {
				return nil, ErrLengthMismatch
			}

			return append([]float64(nil), v...), nil
		}, true, nil
	}
}

// timeVarying reports whether the Param is one of the function cases.
func (p Param) timeVarying() bool {
	return p.kind == paramScalarFunc || p.kind == paramVectorFunc
}

// rateVec resolves a mutation-rate Param to a fixed per-axis vector of
// diffusion-scaled rates u = theta/4.
func rateVec(p Param, nPop int, def float64) ([]float64, error) {
	if p.timeVarying() {
		return nil, ErrVaryingRates
	}
	eval, _, err := p.resolve(nPop, def)
	if err != nil {
		return nil, err
	}
	theta, _ := eval(0)
	u := make([]float64, nPop)
	for i := range u {
		u[i] = theta[i] / 4
	}

	return u, nil
}

// frozenSize stands in for the population size of a frozen population:
// large enough that drift over any realistic horizon is lost in rounding.
const frozenSize = 1e40

// anyTrue reports whether at least one flag is set.
func anyTrue(flags []bool) bool {
	for _, f := range flags {
		if f {
			return true
		}
	}

	return false
}

// pinFrozenSizes wraps a size closure so frozen populations always report
// frozenSize, whatever the underlying schedule says.
func pinFrozenSizes(eval evalFn, frozen []bool) evalFn {
	return func(t float64) ([]float64, error) {
		n, err := eval(t)
		if err != nil {
			return nil, err
		}
		out := append([]float64(nil), n...)
		for i, f := range frozen {
			if f {
				out[i] = frozenSize
			}
		}

		return out, nil
	}
}

// zeroFrozen wraps a closure so frozen populations always report zero —
// used for selection coefficients.
func zeroFrozen(eval evalFn, frozen []bool) evalFn {
	return func(t float64) ([]float64, error) {
		v, err := eval(t)
		if err != nil {
			return nil, err
		}
		out := append([]float64(nil), v...)
		for i, f := range frozen {
			if f {
				out[i] = 0
			}
		}

		return out, nil
	}
}

// zeroFrozenRates clears, in place, the mutation rates of frozen axes.
func zeroFrozenRates(u []float64, frozen []bool) {
	for i, f := range frozen {
		if f {
			u[i] = 0
		}
	}
}

// run holds the per-integration state shared by both integrators after
// parameter normalization.
type run struct {
	shape       []int
	nPop        int
	tmax        float64
	dtFac       float64
	size        evalFn
	sizeVarying bool
	frozen      []bool
	finite      bool
	u, v        []float64 // diffusion-scaled rates; v only for finite genome
	warn        func(string, ...any)
}

// newRun validates the common arguments and normalizes sizes, mutation
// rates and frozen flags. Selection parameters are resolved by the general
// integrator only.
func newRun(sfs *tensor.Dense, size Param, tf float64, o *Options) (*run, error) {
	if sfs == nil {
		return nil, ErrNilSpectrum
	}
	if tf < 0 {
		return nil, ErrNegativeTime
	}
	if size.kind == paramUnset {
		return nil, ErrMissingSizes
	}
	if o.DtFac < 0 {
		return nil, ErrBadStepFactor
	}

	r := &run{
		shape:  sfs.Shape(),
		nPop:   sfs.Rank(),
		tmax:   tf * timeFactor,
		dtFac:  o.DtFac,
		finite: o.FiniteGenome,
		warn:   o.warnf(),
	}
	if r.dtFac == 0 {
		r.dtFac = defaultDtFac
	}

	if len(o.Frozen) > 0 {
		if len(o.Frozen) != r.nPop {
			return nil, ErrLengthMismatch
		}
		r.frozen = o.Frozen
	} else {
		r.frozen = make([]bool, r.nPop)
	}

	var err error
	if r.size, r.sizeVarying, err = size.resolve(r.nPop, 0); err != nil {
		return nil, err
	}
	if anyTrue(r.frozen) {
		r.size = pinFrozenSizes(r.size, r.frozen)
	}

	if r.finite {
		if o.ThetaFD.kind == paramUnset || o.ThetaBD.kind == paramUnset {
			return nil, ErrMissingRates
		}
		if r.u, err = rateVec(o.ThetaFD, r.nPop, 0); err != nil {
			return nil, err
		}
		if r.v, err = rateVec(o.ThetaBD, r.nPop, 0); err != nil {
			return nil, err
		}
		zeroFrozenRates(r.v, r.frozen)
	} else {
		if r.u, err = rateVec(o.Theta, r.nPop, 1); err != nil {
			return nil, err
		}
	}
	zeroFrozenRates(r.u, r.frozen)

	return r, nil
}
