package integrate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/popgenio/diffuse/jackknife"
	"github.com/popgenio/diffuse/linsys"
	"github.com/popgenio/diffuse/tensor"
)

// luSolver adapts a factorized gonum LU decomposition to the per-slice
// tensor.AxisSolver interface used by the implicit half-step.
type luSolver struct{ lu *mat.LU }

func (s luSolver) Solve(dst, rhs []float64) error {
	x := mat.NewVecDense(len(dst), dst)

	return s.lu.SolveVecTo(x, false, mat.NewVecDense(len(rhs), rhs))
}

// eye returns the d×d identity matrix.
func eye(d int) *mat.Dense {
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}

	return m
}

// NoMigration integrates the spectrum tensor to time tf under drift,
// selection with arbitrary dominance, and mutation, with no migration
// between populations.
//
// Description:
//
//	Every axis k carries the operator A_k = 1/(4N_k)·D + s_k·h_k·S +
//	s_k·(1-2h_k)·S2. Each step applies the explicit operator
//	Q_k = I + dt/2·A_k along every axis, adds the mutation term, then
//	solves I - dt/2·A_k along every axis using an LU factorization computed
//	once per parameter regime and reused for every 1-D slice.
//
// Arguments:
//   - sfs0 — initial spectrum; never mutated, a new tensor is returned.
//   - size — population sizes: PerPop vector or a Varying/VaryingPerPop
//     schedule of time (same units as tf). Required.
//   - tf   — target time in units of 2·N_ref generations.
//   - opts — selection, dominance, mutation and control options; nil for
//     defaults (neutral selection, theta = 1).
//
// The selection closure needs sample sizes of at least 4 on every axis.
//
// Errors:
//   - ErrNonPositiveSize — a size ≤ 0 at any evaluated time (fatal).
//   - ErrLengthMismatch, ErrMissingSizes, ErrMissingRates, ... — malformed
//     arguments, reported before any stepping.
//
// Complexity: per step, O(d³) once per rebuilt axis operator plus
// O(d·size(tensor)) per axis application.
func NoMigration(sfs0 *tensor.Dense, size Param, tf float64, opts *Options) (*tensor.Dense, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	r, err := newRun(sfs0, size, tf, &o)
	if err != nil {
		return nil, err
	}

	sEval, sVar, err := o.Gamma.resolve(r.nPop, 0)
	if err != nil {
		return nil, err
	}
	if anyTrue(r.frozen) {
		sEval = zeroFrozen(sEval, r.frozen)
	}
	hEval, hVar, err := o.H.resolve(r.nPop, 0.5)
	if err != nil {
		return nil, err
	}

	// Structural matrices: drift, closures, the two selection components.
	// Built once; only their scalings change between steps.
	vd := make([]*mat.Dense, r.nPop)
	vs := make([]*mat.Dense, r.nPop)
	vs2 := make([]*mat.Dense, r.nPop)
	for k, d := range r.shape {
		if vd[k], err = linsys.Drift(d); err != nil {
			return nil, err
		}
		jk, jkErr := jackknife.OneStep(d - 1)
		if jkErr != nil {
			return nil, fmt.Errorf("integrate: axis %d: %w", k, jkErr)
		}
		jk2, jkErr := jackknife.TwoStep(d - 1)
		if jkErr != nil {
			return nil, fmt.Errorf("integrate: axis %d: %w", k, jkErr)
		}
		if vs[k], err = linsys.Selection(d, jk); err != nil {
			return nil, err
		}
		if vs2[k], err = linsys.SelectionDominance(d, jk2); err != nil {
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

	sNew, err := sEval(0)
	if err != nil {
		return nil, err
	}
	hNew, err := hEval(0)
	if err != nil {
		return nil, err
	}
	sOld, hOld := sNew, hNew

	ctrl := &stepController{size: r.size, varying: r.sizeVarying, tmax: r.tmax, warn: r.warn}

	q := make([]mat.Matrix, r.nPop)
	slv := make([]tensor.AxisSolver, r.nPop)
	mut := make([]mat.Matrix, r.nPop) // I + dt·M per axis, finite genome only

	sfs := sfs0.Clone()
	dt := r.tmax * r.dtFac
	for t := 0.0; t < r.tmax; {
		dtOld := dt
		dt = math.Min(stableStep(nCur, sNew, hNew), r.tmax*r.dtFac)
		if nCur, neff, dt, err = ctrl.propose(t, dt, nOld); err != nil {
			return nil, err
		}
		if sVar {
			if sNew, err = sEval((t + dt/2) / timeFactor); err != nil {
				return nil, err
			}
		}
		if hVar {
			if hNew, err = hEval((t + dt/2) / timeFactor); err != nil {
				return nil, err
			}
		}

		// Factorization dominates the per-step cost, so operators are
		// rebuilt only when a governing parameter actually changed.
		// Deliberately exact comparisons, not tolerance-based.
		if t == 0 || dt != dtOld || !floats.Equal(nCur, nOld) ||
			!floats.Equal(sNew, sOld) || !floats.Equal(hNew, hOld) {
			var a, tmp, half mat.Dense
			for k := range q {
				d := r.shape[k]
				a.Scale(1/(4*neff[k]), vd[k])
				tmp.Scale(sNew[k]*hNew[k], vs[k])
				a.Add(&a, &tmp)
				tmp.Scale(sNew[k]*(1-2*hNew[k]), vs2[k])
				a.Add(&a, &tmp)
				half.Scale(dt/2, &a)

				qk := eye(d)
				qk.Add(qk, &half)
				q[k] = qk

				pk := eye(d)
				pk.Sub(pk, &half)
				lu := &mat.LU{}
				lu.Factorize(pk)
				slv[k] = luSolver{lu: lu}

				if r.finite {
					mk := eye(d)
					tmp.Scale(dt, mg[k])
					mk.Add(mk, &tmp)
					mut[k] = mk
				}
				a.Reset()
				tmp.Reset()
				half.Reset()
			}
		}

		// Explicit half-step along every axis.
		if sfs, err = tensor.ApplyAll(sfs, q); err != nil {
			return nil, err
		}
		// Mutation: constant boundary injection (infinite sites) or the
		// state-dependent reversible operator (finite genome).
		if r.finite {
			for k := range mut {
				if sfs, err = tensor.ApplyAxis(sfs, k, mut[k]); err != nil {
					return nil, err
				}
			}
		} else if err = sfs.AddScaled(dt, b); err != nil {
			return nil, err
		}
		// Implicit half-step along every axis.
		if sfs, err = tensor.SolveAll(sfs, slv); err != nil {
			return nil, err
		}

		nOld = nCur
		sOld, hOld = sNew, hNew
		t += dt
	}

	return sfs, nil
}
