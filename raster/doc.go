// Package raster couples a grid with its georeferencing and dispatches
// reading and writing to format codecs.
//
// A [Codec] handles one file format. [IO] holds an ordered list of codecs and
// picks the first whose Match accepts a path, so a catch-all codec belongs at
// the end of the list.
//
// # Usage
//
//	rio := raster.NewIO(ascgrid.New(), gdalio.New())
//	dem, err := rio.Read("dem.tif")
//	...
//	err = rio.Write(raster.DefaultOutputPath("dem.tif", 121), raster.FromGrid(out, dem, 0))
package raster
