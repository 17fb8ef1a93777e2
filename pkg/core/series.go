package core

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar format used on every series axis
const DateLayout = "2006-01-02"

// Series is a date-indexed numeric series.
// Dates are ISO calendar days, strictly ascending and unique; Values[i] is
// the observation at Dates[i]. A missing observation is NaN, which marshals
// to JSON null. Missing means "no observation", never zero.
type Series struct {
	Dates  []string
	Values []float64
}

// Point is the point-list form of one observation, used by chart consumers.
// Y is nil when the observation is missing.
type Point struct {
	X string   `json:"x"`
	Y *float64 `json:"y"`
}

// Missing returns the sentinel for an absent observation.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v denotes an absent observation.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// New builds a validated series from parallel date and value slices.
func New(dates []string, values []float64) (Series, error) {
	s := Series{Dates: dates, Values: values}
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// Len returns the number of observations in the series.
func (s Series) Len() int {
	return len(s.Dates)
}

// Empty reports whether the series has no observations.
func (s Series) Empty() bool {
	return len(s.Dates) == 0
}

// Validate checks the series contract: equal lengths, parseable dates,
// strictly ascending unique date axis. Violations are programmer errors,
// not data-quality issues, so they surface as errors instead of NaN.
func (s Series) Validate() error {
	if len(s.Dates) != len(s.Values) {
		return fmt.Errorf("%w: %d dates, %d values", ErrLengthMismatch, len(s.Dates), len(s.Values))
	}

	for i, date := range s.Dates {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return fmt.Errorf("%w: %q at index %d", ErrBadDate, date, i)
		}
		if i > 0 && s.Dates[i-1] >= date {
			return fmt.Errorf("%w: %q followed by %q", ErrUnsortedDates, s.Dates[i-1], date)
		}
	}

	return nil
}

// Clone returns a deep copy. Transforms never mutate their input, so a
// clone is the starting point for every derived series.
func (s Series) Clone() Series {
	out := Series{
		Dates:  make([]string, len(s.Dates)),
		Values: make([]float64, len(s.Values)),
	}
	copy(out.Dates, s.Dates)
	copy(out.Values, s.Values)
	return out
}

// Slice returns a copy of the observations in [from, to).
func (s Series) Slice(from, to int) Series {
	return Series{Dates: s.Dates[from:to], Values: s.Values[from:to]}.Clone()
}

// LastDate returns the most recent date on the axis, or false when empty.
func (s Series) LastDate() (string, bool) {
	if s.Empty() {
		return "", false
	}
	return s.Dates[len(s.Dates)-1], true
}

// Equal reports whether two series are bit-identical, treating missing
// observations at the same position as equal.
func (s Series) Equal(other Series) bool {
	if len(s.Dates) != len(other.Dates) || len(s.Values) != len(other.Values) {
		return false
	}
	for i := range s.Dates {
		if s.Dates[i] != other.Dates[i] {
			return false
		}
	}
	for i := range s.Values {
		if IsMissing(s.Values[i]) && IsMissing(other.Values[i]) {
			continue
		}
		if s.Values[i] != other.Values[i] {
			return false
		}
	}
	return true
}

// Points converts the series to point-list form for charting.
func (s Series) Points() []Point {
	points := make([]Point, len(s.Dates))
	for i, date := range s.Dates {
		points[i] = Point{X: date}
		if !IsMissing(s.Values[i]) {
			v := s.Values[i]
			points[i].Y = &v
		}
	}
	return points
}

// FromPoints rebuilds a series from point-list form.
func FromPoints(points []Point) Series {
	s := Series{
		Dates:  make([]string, len(points)),
		Values: make([]float64, len(points)),
	}
	for i, p := range points {
		s.Dates[i] = p.X
		if p.Y != nil {
			s.Values[i] = *p.Y
		} else {
			s.Values[i] = Missing()
		}
	}
	return s
}

type seriesJSON struct {
	Dates  []string   `json:"dates"`
	Values []*float64 `json:"values"`
}

// MarshalJSON emits {"dates": [...], "values": [...]} with missing
// observations encoded as null.
func (s Series) MarshalJSON() ([]byte, error) {
	doc := seriesJSON{Dates: s.Dates, Values: make([]*float64, len(s.Values))}
	for i, v := range s.Values {
		if !IsMissing(v) {
			value := v
			doc.Values[i] = &value
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON accepts the wire form and maps null observations to NaN.
func (s *Series) UnmarshalJSON(data []byte) error {
	var doc seriesJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	s.Dates = doc.Dates
	s.Values = make([]float64, len(doc.Values))
	for i, v := range doc.Values {
		if v == nil {
			s.Values[i] = Missing()
		} else {
			s.Values[i] = *v
		}
	}
	return nil
}
