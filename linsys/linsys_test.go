package linsys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/popgenio/diffuse/jackknife"
	"github.com/popgenio/diffuse/linsys"
)

// colSums returns the column sums of m.
func colSums(m mat.Matrix) []float64 {
	r, c := m.Dims()
	sums := make([]float64, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			sums[j] += m.At(i, j)
		}
	}

	return sums
}

// TestDrift_KnownEntries checks the drift generator for d=5 (n=4) against
// hand-computed entries.
func TestDrift_KnownEntries(t *testing.T) {
	d, err := linsys.Drift(5)
	require.NoError(t, err)

	want := mat.NewDense(5, 5, []float64{
		0, 3, 0, 0, 0,
		0, -6, 4, 0, 0,
		0, 3, -8, 3, 0,
		0, 0, 4, -6, 0,
		0, 0, 0, 3, 0,
	})
	assert.True(t, mat.EqualApprox(d, want, 0), "drift entries for d=5")
}

// TestDrift_MassConserving verifies zero column sums: drift redistributes
// mass, it never creates or destroys it.
func TestDrift_MassConserving(t *testing.T) {
	d, err := linsys.Drift(12)
	require.NoError(t, err)
	for j, s := range colSums(d) {
		assert.InDelta(t, 0, s, 1e-12, "column %d", j)
	}
}

// TestSelection_MassConserving verifies the telescoping property of both
// selection components: exactly zero column sums, so selection moves mass
// toward or away from fixation without losing any.
func TestSelection_MassConserving(t *testing.T) {
	const d = 11 // n = 10
	jk, err := jackknife.OneStep(d - 1)
	require.NoError(t, err)
	jk2, err := jackknife.TwoStep(d - 1)
	require.NoError(t, err)

	s1, err := linsys.Selection(d, jk)
	require.NoError(t, err)
	for j, s := range colSums(s1) {
		assert.InDelta(t, 0, s, 1e-12, "Selection column %d", j)
	}

	s2, err := linsys.SelectionDominance(d, jk2)
	require.NoError(t, err)
	for j, s := range colSums(s2) {
		assert.InDelta(t, 0, s, 1e-12, "SelectionDominance column %d", j)
	}
}

// TestSelection_ClosureShape rejects mismatched jackknife matrices.
func TestSelection_ClosureShape(t *testing.T) {
	jk, err := jackknife.OneStep(6)
	require.NoError(t, err)

	_, err = linsys.Selection(11, jk)
	assert.ErrorIs(t, err, linsys.ErrClosureShape)

	jk2, err := jackknife.TwoStep(6)
	require.NoError(t, err)
	_, err = linsys.SelectionDominance(11, jk2)
	assert.ErrorIs(t, err, linsys.ErrClosureShape)
}

// TestMutationSource_SingletonInjection verifies placement and scaling of
// the infinite-sites source term.
func TestMutationSource_SingletonInjection(t *testing.T) {
	b, err := linsys.MutationSource([]int{5, 7}, []float64{0.25, 0.5})
	require.NoError(t, err)

	v, err := b.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "axis-0 singleton gets (5-1)*0.25")

	v, err = b.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v, "axis-1 singleton gets (7-1)*0.5")

	assert.Equal(t, 4.0, b.Sum(), "no mass anywhere else")

	_, err = linsys.MutationSource([]int{5, 7}, []float64{1})
	assert.ErrorIs(t, err, linsys.ErrRateCount)
}

// TestReversibleMutation verifies the finite-genome generator entries and
// its zero column sums.
func TestReversibleMutation(t *testing.T) {
	m, err := linsys.ReversibleMutation(4, 0.1, 0.2) // n = 3
	require.NoError(t, err)

	want := mat.NewDense(4, 4, []float64{
		-0.3, 0.2, 0, 0,
		0.3, -0.4, 0.4, 0,
		0, 0.2, -0.5, 0.6,
		0, 0, 0.1, -0.6,
	})
	assert.True(t, mat.EqualApprox(m, want, 1e-12), "generator entries for d=4")

	for j, s := range colSums(m) {
		assert.InDelta(t, 0, s, 1e-12, "column %d", j)
	}
}

// TestBadSizes covers the trivial size validation shared by the builders.
func TestBadSizes(t *testing.T) {
	_, err := linsys.Drift(1)
	assert.ErrorIs(t, err, linsys.ErrBadSize)
	_, err = linsys.ReversibleMutation(0, 1, 1)
	assert.ErrorIs(t, err, linsys.ErrBadSize)
	_, err = linsys.MutationSource([]int{1}, []float64{1})
	assert.ErrorIs(t, err, linsys.ErrBadSize)
}
