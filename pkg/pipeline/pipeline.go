// Package pipeline composes the pure transforms into per-chart derivation
// chains. A chart picks a display mode; the mode maps to an ordered list of
// steps through a dispatch table instead of string comparisons scattered
// through call sites. Recomputation is caller-driven: rerun the pipeline
// whenever an input or parameter changes.
package pipeline

import (
	"github.com/macrolens/macrolens/pkg/core"
	"github.com/macrolens/macrolens/pkg/transform"
)

// Step is one pure derivation over a series.
type Step func(core.Series) (core.Series, error)

// Pipeline is an ordered chain of steps applied left to right.
type Pipeline struct {
	steps []Step
}

// New builds a pipeline from the given steps.
func New(steps ...Step) Pipeline {
	return Pipeline{steps: steps}
}

// Append returns a pipeline with extra steps chained after the current ones.
func (p Pipeline) Append(steps ...Step) Pipeline {
	combined := make([]Step, 0, len(p.steps)+len(steps))
	combined = append(combined, p.steps...)
	combined = append(combined, steps...)
	return Pipeline{steps: combined}
}

// Run validates the input contract once, then threads the series through
// every step. An empty pipeline is the identity.
func (p Pipeline) Run(s core.Series) (core.Series, error) {
	if err := s.Validate(); err != nil {
		return core.Series{}, err
	}

	out := s.Clone()
	for _, step := range p.steps {
		var err error
		if out, err = step(out); err != nil {
			return core.Series{}, err
		}
	}
	return out, nil
}

// RocStep derives rate-of-change over a lookback of `period` observations,
// keeping the date axis.
func RocStep(period int) Step {
	return func(s core.Series) (core.Series, error) {
		values, err := transform.Roc(s.Values, period)
		if err != nil {
			return core.Series{}, err
		}
		return core.Series{Dates: s.Dates, Values: values}, nil
	}
}

// RocPercentStep is RocStep in the percent display convention.
func RocPercentStep(period int) Step {
	return func(s core.Series) (core.Series, error) {
		values, err := transform.RocPercent(s.Values, period)
		if err != nil {
			return core.Series{}, err
		}
		return core.Series{Dates: s.Dates, Values: values}, nil
	}
}

// ShiftStep moves the series by a signed number of calendar days.
func ShiftStep(offsetDays int) Step {
	return func(s core.Series) (core.Series, error) {
		return transform.Shift(s, offsetDays)
	}
}

// AlignStep reindexes the series onto a master timeline.
func AlignStep(master []string) Step {
	return func(s core.Series) (core.Series, error) {
		return transform.Align(master, s), nil
	}
}

// RangeStep slices the series to a trailing window tag.
func RangeStep(tag string) Step {
	return func(s core.Series) (core.Series, error) {
		return transform.FilterRange(s, tag)
	}
}

// ZScoreStep normalizes the series with a trailing z-score.
func ZScoreStep(window int) Step {
	return func(s core.Series) (core.Series, error) {
		values, err := transform.RollingZScore(s.Values, window)
		if err != nil {
			return core.Series{}, err
		}
		return core.Series{Dates: s.Dates, Values: values}, nil
	}
}

// PercentileStep normalizes the series with a trailing percentile rank.
func PercentileStep(window int) Step {
	return func(s core.Series) (core.Series, error) {
		values, err := transform.RollingPercentile(s.Values, window)
		if err != nil {
			return core.Series{}, err
		}
		return core.Series{Dates: s.Dates, Values: values}, nil
	}
}

// RatioStep divides the series by a denominator sampled at any frequency,
// rebased so the first valid ratio reads 100.
func RatioStep(denominator core.Series) Step {
	return func(s core.Series) (core.Series, error) {
		return transform.Ratio(s, denominator), nil
	}
}
