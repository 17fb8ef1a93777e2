// Package transform holds the pure series transformations behind the
// dashboard charts: rate-of-change, temporal shifting, timeline alignment,
// trailing range filtering, rolling normalization and cross-frequency
// ratios. Every function is deterministic and side-effect free; data-quality
// problems degrade to missing observations instead of errors.
package transform

import (
	"github.com/macrolens/macrolens/pkg/core"
)

// Roc computes rate-of-change over a lookback of `period` observations:
// out[i] = (values[i] - values[i-period]) / values[i-period].
//
// The lookback counts observations, not calendar days, so callers must
// densify a series before deriving "7D"/"1M" style readings from it.
// out[i] is missing when there is not enough history (i < period), when the
// base observation is missing or zero, or when values[i] itself is missing.
// A degenerate base never leaks Inf or a division NaN into the output.
func Roc(values []float64, period int) ([]float64, error) {
	if period < 1 {
		return nil, core.ErrInvalidPeriod
	}

	out := make([]float64, len(values))
	for i := range values {
		if i < period {
			out[i] = core.Missing()
			continue
		}

		base := values[i-period]
		if core.IsMissing(base) || base == 0 || core.IsMissing(values[i]) {
			out[i] = core.Missing()
			continue
		}

		out[i] = (values[i] - base) / base
	}

	return out, nil
}

// RocPercent is Roc scaled to the percent display convention.
func RocPercent(values []float64, period int) ([]float64, error) {
	out, err := Roc(values, period)
	if err != nil {
		return nil, err
	}

	for i, v := range out {
		if !core.IsMissing(v) {
			out[i] = v * 100
		}
	}
	return out, nil
}
