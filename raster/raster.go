package raster

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-terrain/grid"
)

// Errors returned by the dispatcher and codecs.
var (
	ErrNoCodec = errors.New("raster: no codec for path")
	ErrNilGrid = errors.New("raster: nil grid")
)

// Raster is a single-band grid plus the metadata needed to write it back in
// the same place on the ground.
type Raster struct {
	Grid *grid.Grid

	// GeoTransform maps pixel (col, row) to georeferenced (x, y):
	//	x = gt[0] + col*gt[1] + row*gt[2]
	//	y = gt[3] + col*gt[4] + row*gt[5]
	GeoTransform [6]float64
	Projection   string // WKT, may be empty

	NoData    float64
	HasNoData bool
}

// IdentityTransform is the geotransform of a raster without georeferencing.
var IdentityTransform = [6]float64{0, 1, 0, 0, 0, 1}

// FromGrid returns a raster holding g with the georeferencing of like.
// Missing cells of g are written as nodata.
func FromGrid(g *grid.Grid, like *Raster, nodata float64) *Raster {
	r := &Raster{
		Grid:         g,
		GeoTransform: IdentityTransform,
		NoData:       nodata,
		HasNoData:    true,
	}
	if like != nil {
		r.GeoTransform = like.GeoTransform
		r.Projection = like.Projection
	}
	return r
}

// Dims returns the raster size as width (columns) and height (rows).
func (r *Raster) Dims() (width, height int) {
	rows, cols := r.Grid.Dims()
	return cols, rows
}

// Samples returns the row-major samples to store on disk: the grid values
// with missing cells replaced by the nodata value.
func (r *Raster) Samples() []float64 {
	return r.Grid.Filled(r.NoData)
}

// Validate checks that r can be written.
func (r *Raster) Validate() error {
	if r == nil || r.Grid == nil {
		return ErrNilGrid
	}
	return nil
}

// Codec reads and writes one raster format.
type Codec interface {
	Name() string
	Match(path string) bool
	Read(path string) (*Raster, error)
	Write(path string, r *Raster) error
}

// IO dispatches to the first codec that matches a path.
type IO struct {
	codecs []Codec
}

// NewIO returns a dispatcher trying codecs in order. Nil codecs are skipped.
func NewIO(codecs ...Codec) *IO {
	io := &IO{}
	for _, c := range codecs {
		if c != nil {
			io.codecs = append(io.codecs, c)
		}
	}
	return io
}

// Codec returns the codec responsible for path.
func (io *IO) Codec(path string) (Codec, error) {
	for _, c := range io.codecs {
		if c.Match(path) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoCodec, path)
}

// Read reads the raster at path.
func (io *IO) Read(path string) (*Raster, error) {
	c, err := io.Codec(path)
	if err != nil {
		return nil, err
	}
	r, err := c.Read(path)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", c.Name(), path, err)
	}
	return r, nil
}

// Write writes r to path.
func (io *IO) Write(path string, r *Raster) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c, err := io.Codec(path)
	if err != nil {
		return err
	}
	if err := c.Write(path, r); err != nil {
		return fmt.Errorf("%s: write %s: %w", c.Name(), path, err)
	}
	return nil
}

// Names lists the registered codec names in dispatch order.
func (io *IO) Names() []string {
	names := make([]string, len(io.codecs))
	for i, c := range io.codecs {
		names[i] = c.Name()
	}
	return names
}

// HasExt reports whether path ends in one of exts, ignoring case.
// Extensions include the leading dot.
func HasExt(path string, exts ...string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// DefaultOutputPath returns <dir>/<base>_TPI<size>.tif for an input DEM.
func DefaultOutputPath(input string, size int) string {
	return derivedPath(input, fmt.Sprintf("_TPI%d", size))
}

// CountOutputPath returns <dir>/<base>_count<size>.tif for an input DEM.
func CountOutputPath(input string, size int) string {
	return derivedPath(input, fmt.Sprintf("_count%d", size))
}

// ValidMaskOutputPath returns <dir>/<base>_valid.tif for an input raster.
func ValidMaskOutputPath(input string) string {
	return derivedPath(input, "_valid")
}

func derivedPath(input, suffix string) string {
	dir, file := filepath.Split(input)
	base := strings.TrimSuffix(file, filepath.Ext(file))
	return filepath.Join(dir, base+suffix+".tif")
}
