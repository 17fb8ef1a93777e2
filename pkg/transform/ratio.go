package transform

import (
	"github.com/macrolens/macrolens/pkg/core"
)

// Ratio divides a numerator series by a denominator series sampled at a
// different (usually lower) frequency, e.g. a daily index price over weekly
// money supply. Each numerator date is matched to the closest prior
// denominator date. The result is rebased so the first valid ratio reads
// 100: absolute ratios between series of different scale carry no visual
// meaning, rebasing isolates relative drift from the start of the window.
//
// A position is missing when the numerator observation is missing, when no
// prior denominator date exists, or when the matched denominator is missing
// or zero. When no position is valid the raw (all-missing) series is
// returned without rebasing.
func Ratio(numerator, denominator core.Series) core.Series {
	ix := core.NewDateIndex(denominator.Dates)

	out := core.Series{
		Dates:  make([]string, numerator.Len()),
		Values: make([]float64, numerator.Len()),
	}
	copy(out.Dates, numerator.Dates)

	for i, date := range numerator.Dates {
		j := ix.ClosestPriorIndex(date)
		if j < 0 || core.IsMissing(numerator.Values[i]) {
			out.Values[i] = core.Missing()
			continue
		}

		den := denominator.Values[j]
		if core.IsMissing(den) || den == 0 {
			out.Values[i] = core.Missing()
			continue
		}
		out.Values[i] = numerator.Values[i] / den
	}

	return rebase(out)
}

// rebase scales the series so its first valid value reads 100. A first
// valid value of zero cannot anchor a rebase (the scale would be infinite),
// so the search skips zeros as well as missing positions.
func rebase(s core.Series) core.Series {
	for _, v := range s.Values {
		if core.IsMissing(v) || v == 0 {
			continue
		}

		scale := 100 / v
		for i := range s.Values {
			if !core.IsMissing(s.Values[i]) {
				s.Values[i] *= scale
			}
		}
		return s
	}
	return s
}
