package transform

import (
	"github.com/samber/lo"

	"github.com/macrolens/macrolens/pkg/core"
)

// Align reindexes a series onto a master timeline with an exact-date join.
// The output carries the master dates; positions whose date is absent from
// the input stay missing rather than being dropped, so index-based filtering
// downstream keeps working. Overlay charts use this to defensively
// re-synchronize series that should already share a calendar.
func Align(master []string, s core.Series) core.Series {
	out := core.Series{
		Dates:  make([]string, len(master)),
		Values: make([]float64, len(master)),
	}
	copy(out.Dates, master)

	// Both calendars are ascending, so a single forward scan of the input
	// tracks the master walk.
	j := 0
	for i, date := range master {
		for j < s.Len() && s.Dates[j] < date {
			j++
		}
		if j < s.Len() && s.Dates[j] == date {
			out.Values[i] = s.Values[j]
			continue
		}
		out.Values[i] = core.Missing()
	}

	return out
}

// AlignAll aligns several overlay series onto the same master timeline.
func AlignAll(master []string, series ...core.Series) []core.Series {
	return lo.Map(series, func(s core.Series, _ int) core.Series {
		return Align(master, s)
	})
}
