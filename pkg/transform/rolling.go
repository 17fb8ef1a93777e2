package transform

import (
	"gonum.org/v1/gonum/stat"

	"github.com/macrolens/macrolens/pkg/core"
)

// RollingZScore standard-scores each observation against the trailing
// window of its `window` most recent observations. The output is missing
// until a full window of valid observations exists, when any observation in
// the window is missing, and when the window has zero variance.
func RollingZScore(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, core.ErrInvalidWindow
	}

	out := make([]float64, len(values))
	for i := range values {
		w, ok := trailingWindow(values, i, window)
		if !ok {
			out[i] = core.Missing()
			continue
		}

		mean, stddev := stat.MeanStdDev(w, nil)
		if core.IsMissing(stddev) || stddev == 0 {
			out[i] = core.Missing()
			continue
		}
		out[i] = (values[i] - mean) / stddev
	}

	return out, nil
}

// RollingPercentile ranks each observation within its trailing window as a
// 0-100 percentile. Ties count every window value <= the current one, as a
// fraction of the window size. Missing policy matches RollingZScore.
func RollingPercentile(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, core.ErrInvalidWindow
	}

	out := make([]float64, len(values))
	for i := range values {
		w, ok := trailingWindow(values, i, window)
		if !ok {
			out[i] = core.Missing()
			continue
		}

		count := 0
		for _, v := range w {
			if v <= values[i] {
				count++
			}
		}
		out[i] = 100 * float64(count) / float64(window)
	}

	return out, nil
}

// trailingWindow returns values[i-window+1 .. i] when every observation in
// it is valid.
func trailingWindow(values []float64, i, window int) ([]float64, bool) {
	if i < window-1 {
		return nil, false
	}

	w := values[i-window+1 : i+1]
	for _, v := range w {
		if core.IsMissing(v) {
			return nil, false
		}
	}
	return w, true
}
