package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/macrolens/pkg/core"
)

func TestRollingZScoreWarmup(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	out, err := RollingZScore(values, 3)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		assert.True(t, core.IsMissing(out[i]), "index %d", i)
	}
	// Window {1,2,3}: mean 2, sample stddev 1.
	assert.InDelta(t, 1.0, out[2], 1e-12)
	assert.InDelta(t, 1.0, out[3], 1e-12)
}

func TestRollingZScoreZeroVariance(t *testing.T) {
	values := []float64{5, 5, 5, 5}

	out, err := RollingZScore(values, 3)
	require.NoError(t, err)
	for i := range out {
		assert.True(t, core.IsMissing(out[i]), "index %d", i)
	}
}

func TestRollingZScoreGapInvalidatesWindow(t *testing.T) {
	values := []float64{1, core.Missing(), 3, 4, 5}

	out, err := RollingZScore(values, 3)
	require.NoError(t, err)

	assert.True(t, core.IsMissing(out[2]))
	assert.True(t, core.IsMissing(out[3]))
	assert.False(t, core.IsMissing(out[4]), "window {3,4,5} is whole again")
}

func TestRollingZScoreDeterministic(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	a, err := RollingZScore(values, 4)
	require.NoError(t, err)
	b, err := RollingZScore(values, 4)
	require.NoError(t, err)

	for i := range a {
		if core.IsMissing(a[i]) {
			assert.True(t, core.IsMissing(b[i]))
			continue
		}
		assert.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]), "index %d", i)
	}
}

func TestRollingPercentileRanks(t *testing.T) {
	values := []float64{1, 2, 3, 4, 0}

	out, err := RollingPercentile(values, 4)
	require.NoError(t, err)

	assert.True(t, core.IsMissing(out[0]))
	assert.True(t, core.IsMissing(out[2]))
	// Window {1,2,3,4}: 4 is >= all four values.
	assert.InDelta(t, 100.0, out[3], 1e-12)
	// Window {2,3,4,0}: only 0 itself is <= 0.
	assert.InDelta(t, 25.0, out[4], 1e-12)
}

func TestRollingPercentileTies(t *testing.T) {
	values := []float64{2, 2, 2, 2}

	out, err := RollingPercentile(values, 4)
	require.NoError(t, err)
	// Ties count values <= current, so a flat window ranks 100.
	assert.InDelta(t, 100.0, out[3], 1e-12)
}

func TestRollingInvalidWindow(t *testing.T) {
	_, err := RollingZScore([]float64{1}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidWindow)

	_, err = RollingPercentile([]float64{1}, -3)
	assert.ErrorIs(t, err, core.ErrInvalidWindow)
}
