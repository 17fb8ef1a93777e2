package transform

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/macrolens/macrolens/pkg/core"
)

// RangeAll keeps the whole history.
const RangeAll = "ALL"

// Canonical trailing-window table. Calendar months and years map to fixed
// day offsets; the chart axis does not care about month-end arithmetic.
var rangeDays = map[string]int{
	"1W":  7,
	"1M":  30,
	"3M":  91,
	"6M":  182,
	"1Y":  365,
	"2Y":  730,
	"3Y":  1095,
	"5Y":  1825,
	"10Y": 3650,
}

// RangeTags lists the supported trailing-window tags, ALL last.
func RangeTags() []string {
	tags := lo.Keys(rangeDays)
	sort.Slice(tags, func(i, j int) bool {
		return rangeDays[tags[i]] < rangeDays[tags[j]]
	})
	return append(tags, RangeAll)
}

// FilterRange slices the series to a trailing window anchored at its own
// last date. Anchoring at the data keeps recomputation deterministic; use
// FilterRangeFrom when the caller owns the clock.
func FilterRange(s core.Series, tag string) (core.Series, error) {
	anchor, ok := s.LastDate()
	if !ok {
		return s.Clone(), nil
	}
	return FilterRangeFrom(s, tag, anchor)
}

// FilterRangeFrom slices the series to the dates on or after anchor minus
// the tag's day offset. "ALL" is the identity. Unknown tags fall back to
// day/week-suffixed durations ("90d", "26w"); anything else degrades to the
// identity rather than failing the chart. A window past the whole history
// yields an empty series, not an error.
func FilterRangeFrom(s core.Series, tag, anchor string) (core.Series, error) {
	if s.Empty() {
		return s.Clone(), nil
	}

	days, ok := rangeTagDays(tag)
	if !ok {
		return s.Clone(), nil
	}

	cutoff, err := core.AddDays(anchor, -days)
	if err != nil {
		return core.Series{}, err
	}

	from := sort.Search(s.Len(), func(i int) bool {
		return s.Dates[i] >= cutoff
	})
	return s.Slice(from, s.Len()), nil
}

func rangeTagDays(tag string) (int, bool) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == RangeAll || tag == "" {
		return 0, false
	}
	if days, ok := rangeDays[tag]; ok {
		return days, true
	}

	d, err := str2duration.ParseDuration(strings.ToLower(tag))
	if err != nil {
		return 0, false
	}
	return int(d.Hours() / 24), true
}
