package transform

import (
	"github.com/macrolens/macrolens/pkg/core"
)

// Shift moves a series by a signed number of calendar days.
//
// A zero offset is the identity. A positive offset extends the date axis
// with synthetic future days (last date + 1..offsetDays) and pushes every
// value toward that extended window, leaving the first offsetDays positions
// without an observation. A negative offset keeps the axis as-is, leaves
// the leading |offsetDays| positions without an observation and drops the
// values that fall off the end.
func Shift(s core.Series, offsetDays int) (core.Series, error) {
	if s.Empty() || offsetDays == 0 {
		return s.Clone(), nil
	}

	if offsetDays > 0 {
		return shiftForward(s, offsetDays)
	}
	return shiftBackward(s, -offsetDays), nil
}

func shiftForward(s core.Series, offset int) (core.Series, error) {
	n := s.Len()
	out := core.Series{
		Dates:  make([]string, 0, n+offset),
		Values: make([]float64, 0, n+offset),
	}

	out.Dates = append(out.Dates, s.Dates...)
	last := s.Dates[n-1]
	for k := 1; k <= offset; k++ {
		date, err := core.AddDays(last, k)
		if err != nil {
			return core.Series{}, err
		}
		out.Dates = append(out.Dates, date)
	}

	for i := 0; i < offset; i++ {
		out.Values = append(out.Values, core.Missing())
	}
	out.Values = append(out.Values, s.Values...)

	return out, nil
}

func shiftBackward(s core.Series, offset int) core.Series {
	n := s.Len()
	out := core.Series{
		Dates:  make([]string, n),
		Values: make([]float64, n),
	}
	copy(out.Dates, s.Dates)

	for i := range out.Values {
		if i < offset {
			out.Values[i] = core.Missing()
			continue
		}
		out.Values[i] = s.Values[i-offset]
	}

	return out
}
