package integrate

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Time-step control
//
// Description:
//
//	Each step proposes dt = min(stability bound, Tmax·DtFac), clipped so
//	the loop never overshoots the horizon. When the size schedule varies in
//	time, the proposal is then checked against the relative size change it
//	would cause: sizes are evaluated at the step midpoint and the step is
//	halved until the change stays below sizeChangeTol, at most
//	maxStepRetries times. A schedule the controller cannot track (a hard
//	discontinuity, say) produces a diagnostic and the best available step;
//	the run always completes.
//
// Errors:
//   - ErrNonPositiveSize — fatal, any evaluated size ≤ 0.
const (
	// timeFactor converts caller time (units of 2·N_ref generations) into
	// the internal integration horizon: Tmax = timeFactor · tf.
	timeFactor = 2.0

	// sizeChangeTol is the largest acceptable relative population-size
	// change across one accepted step.
	sizeChangeTol = 0.5

	// maxStepRetries bounds the halving loop per step.
	maxStepRetries = 10

	// effectiveSamples is the number of schedule evaluations used for the
	// time-averaged effective size over a half-interval.
	effectiveSamples = 10
)

// stableStep returns the largest step the explicit/implicit split tolerates
// for the current sizes and selection strength: the reciprocal of the
// fastest rate present, drift (0.25/min N) or selection (2·|s|·max(|h|,|1-h|)).
// Neutral callers pass nil selection slices. Returns +Inf when every rate
// vanishes; the caller clips against Tmax·DtFac.
func stableStep(n, s, h []float64) float64 {
	maxRate := 0.25 / floats.Min(n)
	for i := range s {
		hw := math.Max(math.Abs(h[i]), math.Abs(1-h[i]))
		if r := 2 * math.Abs(s[i]) * hw; r > maxRate {
			maxRate = r
		}
	}
	if maxRate <= 0 {
		return math.Inf(1)
	}

	return 1 / maxRate
}

// validSizes reports ErrNonPositiveSize unless every entry is > 0.
func validSizes(n []float64) error {
	for _, v := range n {
		if v <= 0 {
			return ErrNonPositiveSize
		}
	}

	return nil
}

// effectiveSize returns the per-population size whose constant-size drift
// over [t0,t1] matches the varying schedule: the harmonic mean of the
// schedule over the interval, sampled at effectiveSamples points.
func effectiveSize(size evalFn, t0, t1 float64) ([]float64, error) {
	if t0 == t1 {
		n, err := size(t0)
		if err != nil {
			return nil, err
		}
		if err = validSizes(n); err != nil {
			return nil, err
		}

		return append([]float64(nil), n...), nil
	}

	var acc []float64
	for k := 0; k < effectiveSamples; k++ {
		tk := t0 + (t1-t0)*float64(k)/float64(effectiveSamples-1)
		n, err := size(tk)
		if err != nil {
			return nil, err
		}
		if err = validSizes(n); err != nil {
			return nil, err
		}
		if acc == nil {
			acc = make([]float64, len(n))
		}
		for i, v := range n {
			acc[i] += 1 / v
		}
	}
	for i := range acc {
		acc[i] = effectiveSamples / acc[i]
	}

	return acc, nil
}

// relChange returns the largest relative entry-wise change from prev to cur.
func relChange(cur, prev []float64) float64 {
	worst := 0.0
	for i := range cur {
		if r := math.Abs(cur[i]-prev[i]) / prev[i]; r > worst {
			worst = r
		}
	}

	return worst
}

// stepController adapts the proposed step to the size schedule.
type stepController struct {
	size    evalFn
	varying bool
	tmax    float64
	warn    func(string, ...any)
}

// propose clips dt against the horizon and, for a varying schedule,
// evaluates the midpoint size, the half-interval effective size, and the
// halving loop. nPrev is the last accepted size vector.
// Returns the accepted sizes, effective sizes and step.
func (c *stepController) propose(t, dt float64, nPrev []float64) (n, neff []float64, dtNew float64, err error) {
	if t+dt > c.tmax {
		dt = c.tmax - t
	}
	if !c.varying {
		return nPrev, nPrev, dt, nil
	}

	eval := func(dt float64) error {
		if n, err = c.size((t + dt) / timeFactor); err != nil {
			return err
		}
		if err = validSizes(n); err != nil {
			return err
		}
		neff, err = effectiveSize(c.size, t/timeFactor, (t+dt)/timeFactor)

		return err
	}

	if err = eval(dt); err != nil {
		return nil, nil, 0, err
	}
	for retries := 0; relChange(n, nPrev) > sizeChangeTol; {
		dt /= 2
		if err = eval(dt); err != nil {
			return nil, nil, 0, err
		}
		retries++
		if retries >= maxStepRetries {
			if change := relChange(n, nPrev); change > sizeChangeTol {
				c.warn("integrate: population size changing faster than step control can follow at t = %.4f (relative change %.3g, sizes %v -> %v)",
					t/timeFactor, change, nPrev, n)
			}

			break
		}
	}

	return n, neff, dt, nil
}
