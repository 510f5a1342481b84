package ziptie_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/ziptie/bundlemap"
	"github.com/katalvlaran/ziptie/ziptie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalize_PadsAndClamps checks zero padding, clamping to [0,1] and
// the first-step running-max update.
func TestNormalize_PadsAndClamps(t *testing.T) {
	nz := ziptie.NewNormalizer(4, ziptie.DefaultActivityThreshold)

	out, err := nz.Normalize([]float64{2, -1})
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, 1.0, out[0], "a fresh peak saturates at 1")
	assert.Equal(t, 1.0, out[1], "negative max and value divide to a positive, clamped")
	assert.Equal(t, 0.0, out[2], "padding is silent")
	assert.Equal(t, 0.0, out[3])

	// max0 = 2e-4, then catch-up: max0 += (2-2e-4)*1e-2.
	want := 2e-4 + (2-2e-4)*1e-2
	assert.InDelta(t, want, nz.Max()[0], 1e-15)
}

// TestNormalize_RejectsWithoutMutation verifies the precondition checks
// run before any running max moves.
func TestNormalize_RejectsWithoutMutation(t *testing.T) {
	nz := ziptie.NewNormalizer(2, ziptie.DefaultActivityThreshold)
	_, err := nz.Normalize([]float64{1, 1})
	require.NoError(t, err)
	before := nz.Max()

	_, err = nz.Normalize([]float64{1, 1, 1})
	require.ErrorIs(t, err, ziptie.ErrInvalidInput)
	_, err = nz.Normalize([]float64{math.NaN()})
	require.ErrorIs(t, err, ziptie.ErrInvalidInput)

	require.Equal(t, before, nz.Max())
}

// TestNormalize_SparsifiesBelowThreshold feeds a cable whose running max
// has grown, then a weak value that must snap to exactly zero.
func TestNormalize_SparsifiesBelowThreshold(t *testing.T) {
	nz := ziptie.NewNormalizer(1, ziptie.DefaultActivityThreshold)
	for i := 0; i < 2000; i++ {
		_, err := nz.Normalize([]float64{1})
		require.NoError(t, err)
	}
	require.Greater(t, nz.Max()[0], 0.9)

	out, err := nz.Normalize([]float64{0.05})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out[0])

	out, err = nz.Normalize([]float64{0.5})
	require.NoError(t, err)
	assert.Greater(t, out[0], 0.4)
	assert.LessOrEqual(t, out[0], 1.0)
}

func TestBundleActivities_MinOverMembers(t *testing.T) {
	m := bundlemap.New()
	for _, e := range []bundlemap.Entry{
		{Bundle: 0, Cable: 0}, {Bundle: 0, Cable: 1},
		{Bundle: 1, Cable: 1}, {Bundle: 1, Cable: 2}, {Bundle: 1, Cable: 2},
	} {
		require.NoError(t, m.Append(e.Bundle, e.Cable))
	}
	out := []float64{9, 9, 9, 9} // stale values are cleared
	ziptie.BundleActivitiesForTest(m, []float64{0.8, 0.5, 0, 1}, out)
	assert.Equal(t, []float64{0.5, 0, 0, 0}, out)
}

func TestResidualActivities_ThresholdOnly(t *testing.T) {
	in := []float64{0.05, 0.1, 0.7, 0}
	res := ziptie.ResidualActivitiesForTest(in, 0.1)
	assert.Equal(t, []float64{0, 0.1, 0.7, 0}, res)
	in[2] = 0 // independent copy
	assert.Equal(t, 0.7, res[2])
}
