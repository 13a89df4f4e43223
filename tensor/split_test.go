package tensor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/popgenio/diffuse/tensor"
)

// eye returns the d×d identity matrix.
func eye(d int) *mat.Dense {
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}

	return m
}

// scaleSolver divides every entry by a constant — a trivial AxisSolver.
type scaleSolver struct{ f float64 }

func (s scaleSolver) Solve(dst, rhs []float64) error {
	for i, v := range rhs {
		dst[i] = v / s.f
	}

	return nil
}

// failSolver always errors.
type failSolver struct{}

var errBoom = errors.New("boom")

func (failSolver) Solve([]float64, []float64) error { return errBoom }

// TestApplyAll_IdentityLaw verifies the round-trip law: identity operators
// on every axis leave an arbitrary 2-D tensor unchanged.
func TestApplyAll_IdentityLaw(t *testing.T) {
	data := []float64{0.3, 1.2, -4, 7, 0, 2.5, 9.1, -0.25, 3, 8, 1, 0.125}
	ts, err := tensor.NewFromSlice(append([]float64(nil), data...), 3, 4)
	require.NoError(t, err)

	out, err := tensor.ApplyAll(ts, []mat.Matrix{eye(3), eye(4)})
	require.NoError(t, err)
	assert.Equal(t, data, out.Data(), "identity splitting must be a no-op")
	assert.Equal(t, ts.Shape(), out.Shape())
}

// TestApplyAxis_MatchesManual checks an axis-1 application against a
// hand-computed matrix product.
func TestApplyAxis_MatchesManual(t *testing.T) {
	// 2x2 tensor [[1,2],[3,4]], operator doubling bin 0 and zeroing bin 1.
	ts, err := tensor.NewFromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	op := mat.NewDense(2, 2, []float64{2, 0, 0, 0})

	// Along axis 0: columns are slices -> [[2,4],[0,0]].
	out, err := tensor.ApplyAxis(ts, 0, op)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 0, 0}, out.Data())

	// Along axis 1: rows are slices -> [[2,0],[6,0]].
	out, err = tensor.ApplyAxis(ts, 1, op)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0, 6, 0}, out.Data())

	// The input is never mutated.
	assert.Equal(t, []float64{1, 2, 3, 4}, ts.Data())
}

// TestApplyAxis_Rank1 covers the degenerate single-axis case.
func TestApplyAxis_Rank1(t *testing.T) {
	ts, err := tensor.NewFromSlice([]float64{1, 2, 3}, 3)
	require.NoError(t, err)
	op := mat.NewDense(3, 3, []float64{
		0, 1, 0,
		1, 0, 0,
		0, 0, 1,
	})

	out, err := tensor.ApplyAxis(ts, 0, op)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 3}, out.Data())
}

// TestSolveAxis_PerSlice verifies the per-slice solve along both axes of a
// rank-2 tensor and along the middle axis of a rank-3 tensor.
func TestSolveAxis_PerSlice(t *testing.T) {
	ts, err := tensor.NewFromSlice([]float64{2, 4, 6, 8}, 2, 2)
	require.NoError(t, err)

	out, err := tensor.SolveAxis(ts, 0, scaleSolver{f: 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, out.Data())
	assert.Equal(t, []float64{2, 4, 6, 8}, ts.Data(), "input must stay intact")

	cube := make([]float64, 27)
	for i := range cube {
		cube[i] = float64(i + 1)
	}
	ts3, err := tensor.NewFromSlice(cube, 3, 3, 3)
	require.NoError(t, err)
	out, err = tensor.SolveAxis(ts3, 1, scaleSolver{f: 0.5})
	require.NoError(t, err)
	for i := range cube {
		assert.Equal(t, cube[i]*2, out.Data()[i])
	}
}

// TestSplit_Validation covers the splitting driver error paths.
func TestSplit_Validation(t *testing.T) {
	ts, err := tensor.New(3, 4)
	require.NoError(t, err)

	_, err = tensor.ApplyAxis(ts, 2, eye(3))
	assert.ErrorIs(t, err, tensor.ErrAxisOutOfRange)

	_, err = tensor.ApplyAxis(ts, 0, eye(4))
	assert.ErrorIs(t, err, tensor.ErrOperatorShape, "operator must match the axis extent")

	_, err = tensor.ApplyAll(ts, []mat.Matrix{eye(3)})
	assert.ErrorIs(t, err, tensor.ErrOperatorCount)

	_, err = tensor.SolveAll(ts, []tensor.AxisSolver{scaleSolver{f: 1}})
	assert.ErrorIs(t, err, tensor.ErrOperatorCount)

	_, err = tensor.SolveAxis(ts, 0, failSolver{})
	assert.ErrorIs(t, err, errBoom, "solver failures must propagate wrapped")
}

// TestSolveAll_InvertsApplyAll verifies that solving with the same
// per-axis operator used for application restores the original tensor.
func TestSolveAll_InvertsApplyAll(t *testing.T) {
	data := []float64{1, 0.5, 2, 3, 1.5, 0.25}
	ts, err := tensor.NewFromSlice(append([]float64(nil), data...), 2, 3)
	require.NoError(t, err)

	tripled := []mat.Matrix{
		mat.NewDense(2, 2, []float64{3, 0, 0, 3}),
		mat.NewDense(3, 3, []float64{3, 0, 0, 0, 3, 0, 0, 0, 3}),
	}
	out, err := tensor.ApplyAll(ts, tripled)
	require.NoError(t, err)

	out, err = tensor.SolveAll(out, []tensor.AxisSolver{scaleSolver{f: 3}, scaleSolver{f: 3}})
	require.NoError(t, err)
	for i := range data {
		assert.InDelta(t, data[i], out.Data()[i], 1e-12)
	}
}
