package macrolens

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/macrolens/pkg/core"
	"github.com/macrolens/macrolens/pkg/pipeline"
)

func dailySeries(t *testing.T, start string, days int) core.Series {
	t.Helper()

	s := core.Series{
		Dates:  make([]string, days),
		Values: make([]float64, days),
	}
	date := start
	for i := 0; i < days; i++ {
		s.Dates[i] = date
		s.Values[i] = 100 + float64(i)

		next, err := core.AddDays(date, 1)
		require.NoError(t, err)
		date = next
	}
	return s
}

func TestDeriveAbsoluteIdentity(t *testing.T) {
	s := dailySeries(t, "2024-01-01", 10)

	out, err := Derive(ChartSpec{Mode: pipeline.ModeAbsolute}, s)
	require.NoError(t, err)
	assert.True(t, out.Equal(s))
}

func TestDeriveRocShiftRange(t *testing.T) {
	s := dailySeries(t, "2023-01-01", 400)

	out, err := Derive(ChartSpec{
		Mode:      pipeline.ModeRoc1M,
		ShiftDays: 14,
		Range:     "3M",
	}, s)
	require.NoError(t, err)
	require.False(t, out.Empty())

	// The shifted axis ends 14 synthetic days past the raw series.
	rawLast, _ := s.LastDate()
	wantLast, err := core.AddDays(rawLast, 14)
	require.NoError(t, err)
	gotLast, _ := out.LastDate()
	assert.Equal(t, wantLast, gotLast)

	// 3M window over a daily axis: cutoff day plus 91 trailing days.
	assert.Equal(t, 92, out.Len())
}

func TestDeriveUnknownMode(t *testing.T) {
	s := dailySeries(t, "2024-01-01", 5)

	_, err := Derive(ChartSpec{Mode: "heatmap"}, s)
	assert.ErrorIs(t, err, pipeline.ErrUnknownMode)
}

func TestDeriveRatio(t *testing.T) {
	numerator := core.Series{
		Dates:  []string{"2024-01-05", "2024-01-10"},
		Values: []float64{110, 121},
	}
	denominator := core.Series{
		Dates:  []string{"2024-01-01"},
		Values: []float64{100},
	}

	out, err := DeriveRatio(ChartSpec{}, numerator, denominator)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, out.Values[0], 1e-9)
	assert.InDelta(t, 110.0, out.Values[1], 1e-9)
}

func TestDeriveRatioValidatesDenominator(t *testing.T) {
	numerator := core.Series{Dates: []string{"2024-01-01"}, Values: []float64{1}}
	bad := core.Series{Dates: []string{"2024-01-01"}, Values: []float64{1, 2}}

	_, err := DeriveRatio(ChartSpec{}, numerator, bad)
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestWriteTable(t *testing.T) {
	s := core.Series{
		Dates:  []string{"2024-01-01", "2024-01-02"},
		Values: []float64{1.5, core.Missing()},
	}

	var buf bytes.Buffer
	WriteTable(&buf, "M2 ROC", s)

	out := buf.String()
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "1.5000")
	assert.Contains(t, out, "M2 ROC")
}

func TestWriteHistogram(t *testing.T) {
	s := dailySeries(t, "2024-01-01", 50)

	var buf bytes.Buffer
	require.NoError(t, WriteHistogram(&buf, s, 5))
	assert.NotEmpty(t, strings.TrimSpace(buf.String()))

	buf.Reset()
	empty := core.Series{Dates: []string{"2024-01-01"}, Values: []float64{core.Missing()}}
	require.NoError(t, WriteHistogram(&buf, empty, 5))
	assert.Contains(t, buf.String(), "no valid observations")
}
