package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/macrolens/pkg/core"
)

func TestAlignSparseOntoMaster(t *testing.T) {
	master := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
	}
	s := core.Series{
		Dates:  []string{"2024-01-01", "2024-01-03", "2024-01-05"},
		Values: []float64{1, 2, 3},
	}

	out := Align(master, s)

	require.Equal(t, len(master), out.Len())
	assert.Equal(t, master, out.Dates)
	assert.Equal(t, 1.0, out.Values[0])
	assert.True(t, core.IsMissing(out.Values[1]))
	assert.Equal(t, 2.0, out.Values[2])
	assert.True(t, core.IsMissing(out.Values[3]))
	assert.Equal(t, 3.0, out.Values[4])
}

func TestAlignPreservesMasterLength(t *testing.T) {
	master := []string{"2024-01-01", "2024-01-02"}

	empty := Align(master, core.Series{})
	require.Equal(t, len(master), empty.Len())
	for i := range empty.Values {
		assert.True(t, core.IsMissing(empty.Values[i]))
	}

	// Dates outside the master are dropped, not appended.
	wider := core.Series{
		Dates:  []string{"2023-12-25", "2024-01-02", "2024-06-01"},
		Values: []float64{9, 5, 7},
	}
	out := Align(master, wider)
	require.Equal(t, len(master), out.Len())
	assert.True(t, core.IsMissing(out.Values[0]))
	assert.Equal(t, 5.0, out.Values[1])
}

func TestAlignExactJoinOnly(t *testing.T) {
	// Alignment is an exact-date join; a prior observation must not bleed
	// into a nearby master slot.
	out := Align([]string{"2024-01-02"}, core.Series{
		Dates:  []string{"2024-01-01"},
		Values: []float64{1},
	})
	assert.True(t, core.IsMissing(out.Values[0]))
}

func TestAlignAll(t *testing.T) {
	master := []string{"2024-01-01", "2024-01-02"}
	a := core.Series{Dates: []string{"2024-01-01"}, Values: []float64{1}}
	b := core.Series{Dates: []string{"2024-01-02"}, Values: []float64{2}}

	out := AlignAll(master, a, b)
	require.Len(t, out, 2)
	assert.Equal(t, 1.0, out[0].Values[0])
	assert.True(t, core.IsMissing(out[0].Values[1]))
	assert.True(t, core.IsMissing(out[1].Values[0]))
	assert.Equal(t, 2.0, out[1].Values[1])
}
