package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/macrolens/macrolens"
	"github.com/macrolens/macrolens/internal/chartdata"
	"github.com/macrolens/macrolens/pkg/core"
	"github.com/macrolens/macrolens/pkg/pipeline"
	"github.com/macrolens/macrolens/pkg/transform"
)

// Command line flags
var (
	seriesName string
	mode       string
	rangeTag   string
	window     int
	shiftDays  int
	output     string
	bins       int

	// ratio command flags
	numSeries string
	denSeries string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "macrolens",
		Short:   "Derive dashboard series from chart-data documents",
		Version: "1.0.0",
	}

	rootCmd.AddCommand(buildDeriveCmd(), buildRatioCmd(), buildModesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildDeriveCmd() *cobra.Command {
	deriveCmd := &cobra.Command{
		Use:   "derive [files...]",
		Short: "Apply a chart pipeline to one or more series documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDerive,
	}

	deriveCmd.Flags().StringVarP(&seriesName, "series", "n", "", "Series name inside the document (default: the only series)")
	deriveCmd.Flags().StringVarP(&mode, "mode", "m", string(pipeline.ModeAbsolute), "Chart mode (see 'macrolens modes')")
	deriveCmd.Flags().StringVarP(&rangeTag, "range", "r", transform.RangeAll, "Trailing range tag (e.g. 1M, 1Y, 90d, ALL)")
	deriveCmd.Flags().IntVarP(&window, "window", "w", 0, "Trailing window for zscore/percentile modes")
	deriveCmd.Flags().IntVarP(&shiftDays, "shift", "s", 0, "Shift the derived series by signed calendar days")
	deriveCmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json, points or hist")
	deriveCmd.Flags().IntVar(&bins, "bins", 15, "Histogram bin count for -o hist")

	return deriveCmd
}

func buildRatioCmd() *cobra.Command {
	ratioCmd := &cobra.Command{
		Use:   "ratio <numerator.json> <denominator.json>",
		Short: "Rebased ratio of two series sampled at different frequencies",
		Args:  cobra.ExactArgs(2),
		RunE:  runRatio,
	}

	ratioCmd.Flags().StringVar(&numSeries, "num-series", "", "Numerator series name inside its document")
	ratioCmd.Flags().StringVar(&denSeries, "den-series", "", "Denominator series name inside its document")
	ratioCmd.Flags().StringVarP(&rangeTag, "range", "r", transform.RangeAll, "Trailing range tag")
	ratioCmd.Flags().IntVarP(&shiftDays, "shift", "s", 0, "Shift the derived series by signed calendar days")
	ratioCmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json, points or hist")
	ratioCmd.Flags().IntVar(&bins, "bins", 15, "Histogram bin count for -o hist")

	return ratioCmd
}

func buildModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List chart modes and range tags",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("modes:")
			for _, m := range pipeline.Modes() {
				fmt.Printf("  %s\n", m)
			}
			fmt.Println("range tags:")
			for _, tag := range transform.RangeTags() {
				fmt.Printf("  %s\n", tag)
			}
		},
	}
}

func runDerive(cmd *cobra.Command, args []string) error {
	spec := macrolens.ChartSpec{
		Mode:      pipeline.Mode(mode),
		Range:     rangeTag,
		ShiftDays: shiftDays,
		Window:    window,
	}

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.Default(int64(len(args)))
	}

	for _, path := range args {
		s, err := loadSeries(path, seriesName)
		if err != nil {
			return err
		}

		derived, err := macrolens.Derive(spec, s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if err := emit(path, derived); err != nil {
			return err
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				macrolens.DefaultLog.Warnf("update progressbar fail: %v", err)
			}
		}
	}

	return nil
}

func runRatio(cmd *cobra.Command, args []string) error {
	numerator, err := loadSeries(args[0], numSeries)
	if err != nil {
		return err
	}
	denominator, err := loadSeries(args[1], denSeries)
	if err != nil {
		return err
	}

	spec := macrolens.ChartSpec{Range: rangeTag, ShiftDays: shiftDays}
	derived, err := macrolens.DeriveRatio(spec, numerator, denominator)
	if err != nil {
		return err
	}

	return emit(fmt.Sprintf("%s / %s", args[0], args[1]), derived)
}

func loadSeries(path, name string) (core.Series, error) {
	doc, err := chartdata.Load(path, macrolens.DefaultLog)
	if err != nil {
		return core.Series{}, err
	}

	if name == "" {
		s, ok := doc.First()
		if !ok {
			return core.Series{}, fmt.Errorf("%s holds several series (%v), pick one with --series", path, doc.Names())
		}
		return s, nil
	}

	s, ok := doc.Series(name)
	if !ok {
		return core.Series{}, fmt.Errorf("%s has no series %q (available: %v)", path, name, doc.Names())
	}
	return s, nil
}

func emit(label string, s core.Series) error {
	switch output {
	case "table":
		macrolens.WriteTable(os.Stdout, label, s)
		return nil
	case "json":
		return emitJSON(s)
	case "points":
		return emitJSON(s.Points())
	case "hist":
		return macrolens.WriteHistogram(os.Stdout, s, bins)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func emitJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
