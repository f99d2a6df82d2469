//go:build !nogdal

// Package gdalio reads and writes rasters through GDAL.
//
// Any format GDAL can open is read; output is always a single-band Float32
// GeoTIFF. Build with -tags nogdal to leave this package, and the cgo
// dependency on libgdal, out of the binary.
package gdalio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/raster"
)

// ErrNoBand is returned when the requested band does not exist.
var ErrNoBand = errors.New("gdalio: no such band")

var registerOnce sync.Once

// Option configures a Codec.
type Option func(*config)

type config struct {
	band     int
	creation []string
}

// WithBand selects the 1-based band to read. Default 1.
func WithBand(n int) Option {
	return func(c *config) {
		c.band = n
	}
}

// WithCreationOptions adds GTiff creation options such as "COMPRESS=LZW".
func WithCreationOptions(opts ...string) Option {
	return func(c *config) {
		c.creation = append(c.creation, opts...)
	}
}

// Codec implements raster.Codec on top of GDAL. It matches every path and
// belongs last in a raster.IO.
type Codec struct {
	cfg config
}

var _ raster.Codec = (*Codec)(nil)

// New returns a GDAL codec, registering the GDAL drivers on first use.
func New(opts ...Option) *Codec {
	cfg := config{band: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	registerOnce.Do(godal.RegisterAll)
	return &Codec{cfg: cfg}
}

// Name returns "gdal".
func (c *Codec) Name() string { return "gdal" }

// Match accepts every path.
func (c *Codec) Match(string) bool { return true }

// Read reads the configured band of the dataset at path as float64.
func (c *Codec) Read(path string) (*raster.Raster, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	bands := ds.Bands()
	if c.cfg.band < 1 || c.cfg.band > len(bands) {
		return nil, fmt.Errorf("%w: band %d of %d", ErrNoBand, c.cfg.band, len(bands))
	}
	band := bands[c.cfg.band-1]

	st := band.Structure()
	width, height := st.SizeX, st.SizeY
	data := make([]float64, width*height)
	if err := band.Read(0, 0, data, width, height); err != nil {
		return nil, err
	}

	r := &raster.Raster{
		GeoTransform: raster.IdentityTransform,
		Projection:   ds.Projection(),
	}
	if gt, err := ds.GeoTransform(); err == nil {
		r.GeoTransform = gt
	}

	sentinel := math.NaN()
	if nd, ok := band.NoData(); ok {
		r.NoData, r.HasNoData = nd, true
		sentinel = nd
	}
	r.Grid, err = grid.FromSentinel(height, width, data, sentinel)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Write stores r as a Float32 GeoTIFF. A partially written file is removed on
// failure.
func (c *Codec) Write(path string, r *raster.Raster) (err error) {
	if err := r.Validate(); err != nil {
		return err
	}
	width, height := r.Dims()

	var opts []godal.DatasetCreateOption
	if len(c.cfg.creation) > 0 {
		opts = append(opts, godal.CreationOption(c.cfg.creation...))
	}
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, width, height, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ds.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := ds.SetGeoTransform(r.GeoTransform); err != nil {
		return err
	}
	if r.Projection != "" {
		if err := ds.SetProjection(r.Projection); err != nil {
			return err
		}
	}

	band := ds.Bands()[0]
	if r.HasNoData {
		if err := band.SetNoData(r.NoData); err != nil {
			return err
		}
	}
	return band.Write(0, 0, r.Samples(), width, height)
}
