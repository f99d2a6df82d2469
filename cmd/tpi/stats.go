package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-terrain/stats/summary"
)

var statsPercentiles = []float64{0.02, 0.25, 0.5, 0.75, 0.98}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <raster>",
		Short: "Print summary statistics of the valid pixels of a raster",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	_, _, rio, err := setup(cmd)
	if err != nil {
		return err
	}
	r, err := rio.Read(args[0])
	if err != nil {
		return err
	}

	v := summary.ValidData(r.Grid)
	s := summary.Calculate(r.Grid)
	qs, err := summary.Percentiles(r.Grid, statsPercentiles...)
	if err != nil {
		return err
	}
	width, _ := r.Dims()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "valid\t%d of %d\t(%.2f%%)\n", v.Valid, v.Total, 100*v.Fraction)
	fmt.Fprintf(tw, "mean\t%.6g\n", s.Mean)
	fmt.Fprintf(tw, "std\t%.6g\n", s.StdDev)
	fmt.Fprintf(tw, "min\t%.6g\tat (%d,%d)\n", s.Min, s.MinPos/width, s.MinPos%width)
	fmt.Fprintf(tw, "max\t%.6g\tat (%d,%d)\n", s.Max, s.MaxPos/width, s.MaxPos%width)
	fmt.Fprintf(tw, "rms\t%.6g\n", s.RMS)
	for i, p := range statsPercentiles {
		fmt.Fprintf(tw, "p%g\t%.6g\n", 100*p, qs[i])
	}
	return tw.Flush()
}
