package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-terrain/raster"
	"github.com/cwbudde/algo-terrain/stats/summary"
)

const flagMaskOutput = "mask-output"

func newValidDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validdata <raster>",
		Short: "Count the valid pixels of a raster",
		Long: `Count the pixels of a raster that differ from its nodata value.

Optionally writes a binary mask with 1 for valid and 0 for missing pixels.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidData,
	}
	cmd.Flags().String(flagMaskOutput, "", "write the valid-data mask to this path (default <raster>_valid.tif when given bare)")
	cmd.Flags().Lookup(flagMaskOutput).NoOptDefVal = derivedOutput
	return cmd
}

func runValidData(cmd *cobra.Command, args []string) error {
	_, log, rio, err := setup(cmd)
	if err != nil {
		return err
	}

	r, err := rio.Read(args[0])
	if err != nil {
		return err
	}
	v := summary.ValidData(r.Grid)
	log.WithField("input", args[0]).Debug(v.String())
	fmt.Fprintf(cmd.OutOrStdout(), "valid=%d total=%d fraction=%.6f\n", v.Valid, v.Total, v.Fraction)

	maskOutput := outputFlag(cmd, flagMaskOutput, func() string {
		return raster.ValidMaskOutputPath(args[0])
	})
	if maskOutput == "" {
		return nil
	}
	// 0 marks missing pixels, so the mask carries no nodata value of its own.
	mask := raster.FromGrid(summary.ValidMask(r.Grid), r, 0)
	mask.HasNoData = false
	if err := rio.Write(maskOutput, mask); err != nil {
		return err
	}
	log.WithField("path", maskOutput).Info("wrote valid-data mask")
	return nil
}
