package integrate

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/popgenio/diffuse/linsys"
	"github.com/popgenio/diffuse/tensor"
	"github.com/popgenio/diffuse/tridiag"
)

// Neutral integrates the spectrum tensor to time tf under pure drift and
// mutation — no selection anywhere. It implements exactly the same
// discretization as NoMigration with zero selection, but since every axis
// operator is then tridiagonal, the implicit half-step runs on the tridiag
// factor/solve fast path instead of a general factorization.
//
// Arguments and error behaviour match NoMigration; Gamma and H in opts are
// ignored. Unlike the general path, no closure matrices are needed, so any
// sample size the spectrum shape allows is accepted.
func Neutral(sfs0 *tensor.Dense, size Param, tf float64, opts *Options) (*tensor.Dense, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	r, err := newRun(sfs0, size, tf, &o)
	if err != nil {
		return nil, err
	}

	// Drift structure per axis, plus its three diagonals for the solver.
	vd := make([]*mat.Dense, r.nPop)
	sub := make([][]float64, r.nPop)
	dg := make([][]float64, r.nPop)
	sup := make([][]float64, r.nPop)
	for k, d := range r.shape {
		if vd[k], err = linsys.Drift(d); err != nil {
			return nil, err
		}
		if sub[k], dg[k], sup[k], err = tridiag.Diagonals(vd[k]); err != nil {
			return nil, err
		}
	}

	var b *tensor.Dense
	var mg []*mat.Dense
	if r.finite {
		mg = make([]*mat.Dense, r.nPop)
		for k, d := range r.shape {
			if mg[k], err = linsys.ReversibleMutation(d, r.u[k], r.v[k]); err != nil {
				return nil, err
			}
		}
	} else if b, err = linsys.MutationSource(r.shape, r.u); err != nil {
		return nil, err
	}

	nCur, err := r.size(0)
	if err != nil {
		return nil, err
	}
	if err = validSizes(nCur); err != nil {
		return nil, err
	}
	nOld := nCur
	neff := nCur

	ctrl := &stepController{size: r.size, varying: r.sizeVarying, tmax: r.tmax, warn: r.warn}

	q := make([]mat.Matrix, r.nPop)
	slv := make([]tensor.AxisSolver, r.nPop)
	mut := make([]mat.Matrix, r.nPop)

	sfs := sfs0.Clone()
	dt := r.tmax * r.dtFac
	for t := 0.0; t < r.tmax; {
		dtOld := dt
		dt = math.Min(stableStep(nCur, nil, nil), r.tmax*r.dtFac)
		if nCur, neff, dt, err = ctrl.propose(t, dt, nOld); err != nil {
			return nil, err
		}

		// Rebuild on the first step or when size or step changed (exact
		// comparison, as in the general path).
		if t == 0 || dt != dtOld || !floats.Equal(nCur, nOld) {
			var half, tmp mat.Dense
			for k := range q {
				d := r.shape[k]
				// Q = I + dt/2 · 1/(4N) · D, i.e. dt/(8N) of the structure.
				scale := dt / (8 * neff[k])
				half.Scale(scale, vd[k])
				qk := eye(d)
				qk.Add(qk, &half)
				q[k] = qk
				half.Reset()

				// The implicit matrix I - dt/(8N)·D stays tridiagonal:
				// scale the three diagonals directly and factor once.
				sys, sysErr := tridiag.New(
					scaled(-scale, sub[k]),
					affine(1, -scale, dg[k]),
					scaled(-scale, sup[k]),
				)
				if sysErr != nil {
					return nil, sysErr
				}
				if sysErr = sys.Factorize(); sysErr != nil {
					return nil, sysErr
				}
				slv[k] = sys

				if r.finite {
					mk := eye(d)
					tmp.Scale(dt, mg[k])
					mk.Add(mk, &tmp)
					mut[k] = mk
					tmp.Reset()
				}
			}
		}

		if sfs, err = tensor.ApplyAll(sfs, q); err != nil {
			return nil, err
		}
		if r.finite {
			for k := range mut {
				if sfs, err = tensor.ApplyAxis(sfs, k, mut[k]); err != nil {
					return nil, err
				}
			}
		} else if err = sfs.AddScaled(dt, b); err != nil {
			return nil, err
		}
		if sfs, err = tensor.SolveAll(sfs, slv); err != nil {
			return nil, err
		}

		nOld = nCur
		t += dt
	}

	return sfs, nil
}

// scaled returns alpha·v as a fresh slice.
func scaled(alpha float64, v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = alpha * x
	}

	return out
}

// affine returns c + alpha·v element-wise as a fresh slice.
func affine(c, alpha float64, v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = c + alpha*x
	}

	return out
}
