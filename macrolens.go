// Package macrolens is the analytics core behind a macro-liquidity
// dashboard. It turns irregularly-sampled, date-indexed series (balance
// sheets, money supply, credit spreads, stablecoin metrics, equity indices)
// into aligned derived series: rate-of-change, temporal shifts,
// master-timeline alignment, rolling normalization and rebased
// cross-frequency ratios. Data acquisition and rendering live outside this
// module; callers hand in Series values and draw whatever comes back.
package macrolens

import (
	"fmt"
	"io"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"

	"github.com/macrolens/macrolens/pkg/core"
	"github.com/macrolens/macrolens/pkg/pipeline"
)

// ChartSpec is the scalar parameter set one chart widget owns: a display
// mode plus the optional shift, normalization window and trailing range.
type ChartSpec struct {
	Mode      pipeline.Mode
	Range     string
	ShiftDays int
	Window    int
}

// Derive runs the full per-chart pipeline over a raw series: the mode's
// derivation, then the temporal shift, then the trailing range trim.
func Derive(spec ChartSpec, s core.Series) (core.Series, error) {
	p, err := pipeline.ForMode(spec.Mode, pipeline.Options{Window: spec.Window})
	if err != nil {
		return core.Series{}, err
	}

	if spec.ShiftDays != 0 {
		p = p.Append(pipeline.ShiftStep(spec.ShiftDays))
	}
	if spec.Range != "" {
		p = p.Append(pipeline.RangeStep(spec.Range))
	}

	return p.Run(s)
}

// DeriveRatio builds the rebased cross-frequency ratio of two raw series
// and applies the spec's shift and range to the result.
func DeriveRatio(spec ChartSpec, numerator, denominator core.Series) (core.Series, error) {
	if err := denominator.Validate(); err != nil {
		return core.Series{}, fmt.Errorf("denominator: %w", err)
	}

	p := pipeline.New(pipeline.RatioStep(denominator))
	if spec.ShiftDays != 0 {
		p = p.Append(pipeline.ShiftStep(spec.ShiftDays))
	}
	if spec.Range != "" {
		p = p.Append(pipeline.RangeStep(spec.Range))
	}

	return p.Run(numerator)
}

// WriteTable renders a derived series as a two-column console table.
func WriteTable(w io.Writer, name string, s core.Series) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", name})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	valid := 0
	for i, date := range s.Dates {
		cell := "-"
		if !core.IsMissing(s.Values[i]) {
			cell = strconv.FormatFloat(s.Values[i], 'f', 4, 64)
			valid++
		}
		table.Append([]string{date, cell})
	}

	table.SetFooter([]string{"valid", strconv.Itoa(valid)})
	table.Render()
}

// WriteHistogram prints the distribution of the valid observations.
func WriteHistogram(w io.Writer, s core.Series, bins int) error {
	values := make([]float64, 0, s.Len())
	for _, v := range s.Values {
		if !core.IsMissing(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		_, err := fmt.Fprintln(w, "no valid observations")
		return err
	}

	hist := histogram.Hist(bins, values)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}
