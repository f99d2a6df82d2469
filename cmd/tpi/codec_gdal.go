//go:build !nogdal

package main

import (
	"github.com/cwbudde/algo-terrain/internal/config"
	"github.com/cwbudde/algo-terrain/raster"
	"github.com/cwbudde/algo-terrain/raster/gdalio"
)

func gdalCodec(cfg config.Config) raster.Codec {
	return gdalio.New(gdalio.WithCreationOptions(cfg.CreationOptions()...))
}
