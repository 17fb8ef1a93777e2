package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/macrolens/pkg/core"
)

func TestRocMissingBeforePeriod(t *testing.T) {
	values := []float64{100, 101, 102, 103, 104}

	out, err := Roc(values, 3)
	require.NoError(t, err)
	require.Len(t, out, len(values))

	for i := 0; i < 3; i++ {
		assert.True(t, core.IsMissing(out[i]), "index %d", i)
	}
	assert.InDelta(t, 0.03, out[3], 1e-12)
	assert.InDelta(t, 104.0/101.0-1, out[4], 1e-12)
}

func TestRocGapPropagation(t *testing.T) {
	// null propagates through the gap, and the observation after the gap is
	// missing because its base is missing.
	values := []float64{100, 110, core.Missing(), 121}

	out, err := Roc(values, 1)
	require.NoError(t, err)

	assert.True(t, core.IsMissing(out[0]))
	assert.InDelta(t, 0.10, out[1], 1e-12)
	assert.True(t, core.IsMissing(out[2]))
	assert.True(t, core.IsMissing(out[3]))
}

func TestRocZeroBaseStaysFinite(t *testing.T) {
	values := []float64{0, 50, 100}

	out, err := Roc(values, 1)
	require.NoError(t, err)

	assert.True(t, core.IsMissing(out[1]), "zero base must not divide")
	assert.InDelta(t, 1.0, out[2], 1e-12)
}

func TestRocPercent(t *testing.T) {
	out, err := RocPercent([]float64{100, 110}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, out[1], 1e-12)
}

func TestRocInvalidPeriod(t *testing.T) {
	_, err := Roc([]float64{1, 2}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
}
