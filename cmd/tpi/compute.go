package main

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/internal/config"
	"github.com/cwbudde/algo-terrain/internal/logging"
	"github.com/cwbudde/algo-terrain/neighborhood"
	"github.com/cwbudde/algo-terrain/preview"
	"github.com/cwbudde/algo-terrain/raster"
	"github.com/cwbudde/algo-terrain/stats/summary"
	"github.com/cwbudde/algo-terrain/tpi"
)

const (
	flagOutput      = "output"
	flagCountOutput = "count-output"
	flagPreview     = "preview"
)

func newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute <dem>",
		Short: "Compute the TPI of a DEM",
		Long: `Compute the Topographic Position Index of a DEM.

Cells equal to the DEM's nodata value are excluded from every neighborhood
and are written as the output nodata value, as are cells whose neighborhood
holds no valid cell. The output keeps the DEM's size and georeferencing and
defaults to <dir>/<name>_TPI<size>.tif.

Examples:
  tpi compute -w 121 dem.tif
  tpi compute -w 31 --shape disk -o tpi.tif dem.tif
  tpi compute -w 501 --strategy auto --count-output=counts.tif dem.tif
  tpi compute -w 121 --count-output dem.tif`,
		Args: cobra.ExactArgs(1),
		RunE: runCompute,
	}

	def := config.Defaults()
	addWindowFlags(cmd)
	f := cmd.Flags()
	f.StringP(flagOutput, "o", "", "output raster (default <dem>_TPI<size>.tif)")
	f.String(flagCountOutput, "", "also write the valid-neighbor weight grid to this path (default <dem>_count<size>.tif when given bare)")
	f.Lookup(flagCountOutput).NoOptDefVal = derivedOutput
	f.String(flagPreview, "", "also render a heat map image to this path")
	f.String(config.FlagStrategy, def.Strategy, "aggregation strategy: overlap, fft or auto (env "+config.EnvStrategy+")")
	f.Float64(config.FlagOutNoData, def.OutNoData, "nodata value of the output (env "+config.EnvOutNoData+")")
	f.Bool(config.FlagZeroAsNoData, false, "treat elevation 0 as missing in addition to the nodata value")
	f.Bool(config.FlagStandardize, false, "rescale the TPI to zero mean and unit standard deviation")
	f.String(config.FlagCompress, "", "GeoTIFF compression, e.g. LZW or DEFLATE")
	return cmd
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, log, rio, err := setup(cmd)
	if err != nil {
		return err
	}

	input := args[0]
	output, _ := cmd.Flags().GetString(flagOutput)
	if output == "" {
		output = raster.DefaultOutputPath(input, cfg.WindowSize)
	}
	countOutput := outputFlag(cmd, flagCountOutput, func() string {
		return raster.CountOutputPath(input, cfg.WindowSize)
	})
	previewOutput, _ := cmd.Flags().GetString(flagPreview)
	outputs := &outputSet{rio: rio}
	if err := outputs.check(output, countOutput); err != nil {
		return err
	}

	w, err := cfg.Window()
	if err != nil {
		return err
	}

	dem, err := rio.Read(input)
	if err != nil {
		return err
	}
	g := dem.Grid
	if cfg.ZeroAsNoData {
		if g, err = zeroAsMissing(g); err != nil {
			return err
		}
	}

	rows, cols := g.Dims()
	strategy, _ := neighborhood.ParseStrategy(cfg.Strategy)
	if strategy == neighborhood.StrategyAuto {
		strategy = neighborhood.ChooseStrategy(rows, cols, w)
	}
	log.WithFields(logrus.Fields{
		"input":    input,
		"rows":     rows,
		"cols":     cols,
		"valid":    summary.ValidData(g).Fraction,
		"window":   cfg.WindowSize,
		"shape":    cfg.Shape,
		"offsets":  w.Active(),
		"strategy": strategy.String(),
	}).Info("computing TPI")

	opts, err := cfg.TPIOptions(neighborhood.WithProgress(logging.Progress(log, "aggregating", 10)))
	if err != nil {
		return err
	}

	start := time.Now()
	out, res, err := tpi.Compute(g, w, opts...)
	if err != nil {
		return err
	}
	if cfg.Standardize {
		if out, err = tpi.Standardize(out); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	st := summary.Calculate(out)
	log.WithFields(logrus.Fields{
		"elapsed": elapsed.Round(time.Millisecond).String(),
		"cells":   st.Count,
		"mean":    st.Mean,
		"std":     st.StdDev,
		"min":     st.Min,
		"max":     st.Max,
	}).Info("TPI computed")

	if err := outputs.write(output, raster.FromGrid(out, dem, cfg.OutNoData)); err != nil {
		return err
	}
	log.WithField("path", output).Info("wrote TPI")

	if countOutput != "" {
		counts := raster.FromGrid(res.Count, dem, 0)
		counts.HasNoData = false
		if err := outputs.write(countOutput, counts); err != nil {
			return err
		}
		log.WithField("path", countOutput).Info("wrote neighbor counts")
	}

	if previewOutput != "" {
		err := preview.Render(out, previewOutput, preview.WithTitle(fmt.Sprintf("TPI %d", cfg.WindowSize)))
		if err := outputs.track(previewOutput, err); err != nil {
			return err
		}
		log.WithField("path", previewOutput).Info("wrote preview")
	}

	for _, p := range outputs.written {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// zeroAsMissing returns a copy of g in which zero elevations are also missing.
func zeroAsMissing(g *grid.Grid) (*grid.Grid, error) {
	rows, cols := g.Dims()
	return grid.FromSentinel(rows, cols, g.Filled(math.NaN()), math.NaN(), grid.WithZeroAsMissing())
}
