package main

import (
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-terrain/internal/config"
	"github.com/cwbudde/algo-terrain/internal/logging"
	"github.com/cwbudde/algo-terrain/raster"
	"github.com/cwbudde/algo-terrain/raster/ascgrid"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tpi",
		Short: "Topographic Position Index for digital elevation models",
		Long: `tpi computes the Topographic Position Index of a DEM: the elevation of
each cell minus the mean elevation of its neighborhood.

Positive values mark ridges and peaks, negative values valleys and pits.
Configuration can be set via a JSON file, environment variables or flags.`,
		SilenceUsage: true,
	}

	def := config.Defaults()
	pf := root.PersistentFlags()
	pf.String(config.FlagConfig, "", "JSON config file")
	pf.String(config.FlagLogLevel, def.LogLevel, "log level (env "+config.EnvLogLevel+")")
	pf.String(config.FlagLogFormat, def.LogFormat, "log format: text or json (env "+config.EnvLogFormat+")")

	root.AddCommand(
		newComputeCmd(),
		newValidDataCmd(),
		newStatsCmd(),
		newWindowCmd(),
	)
	return root
}

// addWindowFlags registers the flags describing the neighborhood window.
func addWindowFlags(cmd *cobra.Command) {
	def := config.Defaults()
	f := cmd.Flags()
	f.IntP(config.FlagWindowSize, "w", def.WindowSize, "window size in cells, odd (env "+config.EnvWindowSize+")")
	f.String(config.FlagShape, def.Shape, "window shape: square, disk, annulus or gaussian (env "+config.EnvShape+")")
	f.Float64(config.FlagSigma, 0, "gaussian sigma in cells (default size/4)")
	f.Float64(config.FlagInnerRadius, 0, "annulus inner radius in cells (default radius/2)")
}

// setup resolves the configuration and builds the logger and raster I/O
// for a command.
func setup(cmd *cobra.Command) (config.Config, *logrus.Logger, *raster.IO, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return cfg, nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return cfg, nil, nil, err
	}
	rio := raster.NewIO(ascgrid.New(), gdalCodec(cfg))

	feat := cpu.DetectFeatures()
	log.WithFields(logrus.Fields{
		"codecs": rio.Names(),
		"arch":   feat.Architecture,
		"sse2":   feat.HasSSE2,
		"avx2":   feat.HasAVX2,
		"neon":   feat.HasNEON,
	}).Debug("runtime")
	return cfg, log, rio, nil
}
