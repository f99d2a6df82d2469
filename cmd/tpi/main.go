// Command tpi computes the Topographic Position Index of a digital elevation
// model: each cell's elevation minus the mean elevation of its neighborhood.
//
// Usage:
//
//	tpi compute [flags] <dem>
//	tpi validdata [flags] <raster>
//	tpi stats <raster>
//	tpi window [flags]
//
// Examples:
//
//	tpi compute -w 121 dem.tif
//	tpi compute -w 31 --shape annulus --inner-radius 10 -o tpi.tif dem.tif
//	tpi compute -w 501 --strategy auto --preview tpi.png dem.tif
//	tpi validdata --mask-output valid.tif dem.tif
//	tpi window -w 11 --all
//
// Settings resolve from flags, then TPI_* environment variables, then the
// --config JSON file, then built-in defaults.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
