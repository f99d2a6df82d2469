//go:build nogdal

package main

import (
	"github.com/cwbudde/algo-terrain/internal/config"
	"github.com/cwbudde/algo-terrain/raster"
)

// gdalCodec returns nil in builds without GDAL; only ASCII grids are supported.
func gdalCodec(config.Config) raster.Codec {
	return nil
}
