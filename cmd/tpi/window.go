package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-terrain/window"
)

const (
	flagAll     = "all"
	flagWeights = "weights"
)

func newWindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print properties of a neighborhood window",
		Long: `Print properties of a neighborhood window without reading any raster.

Examples:
  tpi window -w 11
  tpi window -w 11 --all
  tpi window -w 7 --shape gaussian --sigma 1.5 --weights`,
		Args: cobra.NoArgs,
		RunE: runWindow,
	}
	addWindowFlags(cmd)
	cmd.Flags().Bool(flagAll, false, "show every shape at the given size")
	cmd.Flags().Bool(flagWeights, false, "also print the weight matrix")
	return cmd
}

func runWindow(cmd *cobra.Command, _ []string) error {
	cfg, _, _, err := setup(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool(flagAll)
	weights, _ := cmd.Flags().GetBool(flagWeights)

	shapes := []string{cfg.Shape}
	if all {
		shapes = shapes[:0]
		for _, t := range window.Types() {
			shapes = append(shapes, t.String())
		}
	}

	var windows []*window.Window
	for _, shape := range shapes {
		c := cfg
		c.Shape = shape
		w, err := c.Window()
		if err != nil {
			return fmt.Errorf("%s: %w", shape, err)
		}
		windows = append(windows, w)
	}

	out := cmd.OutOrStdout()
	if err := printProperties(out, shapes, windows); err != nil {
		return err
	}
	if weights {
		for i, w := range windows {
			if err := printWeights(out, shapes[i], w); err != nil {
				return err
			}
		}
	}
	return nil
}

func printProperties(out io.Writer, shapes []string, windows []*window.Window) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Shape\tSize\tRadius\tActive\tWeight Sum\tMax Weight\tFill\n")
	fmt.Fprintf(tw, "-----\t----\t------\t------\t----------\t----------\t----\n")
	for i, w := range windows {
		p := window.Analyze(w)
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			shapes[i],
			p.Height, p.Width,
			p.RadiusY,
			p.Active,
			p.WeightSum,
			p.MaxWeight,
			p.Fill,
		)
	}
	return tw.Flush()
}

func printWeights(out io.Writer, shape string, w *window.Window) error {
	if _, err := fmt.Fprintf(out, "\n%s:\n", shape); err != nil {
		return err
	}
	for _, row := range w.Weights() {
		var line strings.Builder
		for x, v := range row {
			if x > 0 {
				line.WriteByte(' ')
			}
			fmt.Fprintf(&line, "%6.3f", v)
		}
		if _, err := fmt.Fprintln(out, line.String()); err != nil {
			return err
		}
	}
	return nil
}
