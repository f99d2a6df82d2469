// Package ascgrid reads and writes ESRI ASCII grids (.asc).
//
// The format is a short keyword header followed by the samples in row-major
// order from the top row down:
//
//	ncols         4
//	nrows         3
//	xllcorner     500000
//	yllcorner     7000000
//	cellsize      2
//	NODATA_value  -9999
//	10 11 12 13
//	...
//
// Both the corner and the center registration are read. GDAL's dx/dy
// extension for rectangular cells is accepted in place of cellsize.
package ascgrid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/raster"
)

// Errors returned while decoding or encoding.
var (
	ErrHeader    = errors.New("ascgrid: invalid header")
	ErrData      = errors.New("ascgrid: invalid data")
	ErrTransform = errors.New("ascgrid: geotransform not representable")
)

// Option configures a Codec.
type Option func(*config)

type config struct {
	precision int
}

// WithPrecision sets the number of significant digits written per sample.
// The default -1 writes the shortest representation that reads back exactly.
func WithPrecision(digits int) Option {
	return func(c *config) {
		c.precision = digits
	}
}

// Codec implements raster.Codec for ESRI ASCII grids.
type Codec struct {
	cfg config
}

var _ raster.Codec = (*Codec)(nil)

// New returns an ASCII grid codec.
func New(opts ...Option) *Codec {
	cfg := config{precision: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Codec{cfg: cfg}
}

// Name returns "ascgrid".
func (c *Codec) Name() string { return "ascgrid" }

// Match accepts paths ending in .asc.
func (c *Codec) Match(path string) bool { return raster.HasExt(path, ".asc") }

// Read decodes the grid stored at path.
func (c *Codec) Read(path string) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Write encodes r to path. A partially written file is removed on failure.
func (c *Codec) Write(path string, r *raster.Raster) (err error) {
	if err := r.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return c.Encode(f, r)
}

// header holds the parsed keyword block.
type header struct {
	cols, rows int
	x, y       float64
	xCenter    bool
	yCenter    bool
	dx, dy     float64
	nodata     float64
	hasNoData  bool
}

// Decode reads an ASCII grid from rd.
func Decode(rd io.Reader) (*raster.Raster, error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	h, first, err := readHeader(sc)
	if err != nil {
		return nil, err
	}

	n := h.rows * h.cols
	data := make([]float64, 0, n)
	for tok, ok := first, true; ok; tok, ok = next(sc) {
		if len(data) == n {
			return nil, fmt.Errorf("%w: more than %d samples", ErrData, n)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %q", ErrData, len(data), tok)
		}
		data = append(data, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrData, len(data), n)
	}

	nodata := math.NaN()
	if h.hasNoData {
		nodata = h.nodata
	}
	g, err := grid.FromSentinel(h.rows, h.cols, data, nodata)
	if err != nil {
		return nil, err
	}

	x0 := h.x
	if h.xCenter {
		x0 -= h.dx / 2
	}
	y0 := h.y
	if h.yCenter {
		y0 -= h.dy / 2
	}

	return &raster.Raster{
		Grid:         g,
		GeoTransform: [6]float64{x0, h.dx, 0, y0 + float64(h.rows)*h.dy, 0, -h.dy},
		NoData:       h.nodata,
		HasNoData:    h.hasNoData,
	}, nil
}

func next(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return sc.Text(), true
}

// readHeader consumes keyword/value pairs and returns the first sample token.
func readHeader(sc *bufio.Scanner) (header, string, error) {
	var h header
	seen := map[string]bool{}

	for {
		key, ok := next(sc)
		if !ok {
			if err := sc.Err(); err != nil {
				return h, "", err
			}
			return h, "", fmt.Errorf("%w: no samples", ErrHeader)
		}
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			if err := h.check(seen); err != nil {
				return h, "", err
			}
			return h, key, nil
		}

		key = strings.ToLower(key)
		val, ok := next(sc)
		if !ok {
			return h, "", fmt.Errorf("%w: %s has no value", ErrHeader, key)
		}
		if seen[key] {
			return h, "", fmt.Errorf("%w: duplicate %s", ErrHeader, key)
		}
		seen[key] = true

		if err := h.set(key, val); err != nil {
			return h, "", err
		}
	}
}

func (h *header) set(key, val string) error {
	switch key {
	case "ncols", "nrows":
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s %q", ErrHeader, key, val)
		}
		if key == "ncols" {
			h.cols = n
		} else {
			h.rows = n
		}
		return nil
	}

	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("%w: %s %q", ErrHeader, key, val)
	}
	switch key {
	case "xllcorner", "xllcenter":
		h.x, h.xCenter = v, key == "xllcenter"
	case "yllcorner", "yllcenter":
		h.y, h.yCenter = v, key == "yllcenter"
	case "cellsize":
		h.dx, h.dy = v, v
	case "dx":
		h.dx = v
	case "dy":
		h.dy = v
	case "nodata_value":
		h.nodata, h.hasNoData = v, true
	default:
		return fmt.Errorf("%w: unknown keyword %s", ErrHeader, key)
	}
	return nil
}

func (h *header) check(seen map[string]bool) error {
	for _, k := range []string{"ncols", "nrows"} {
		if !seen[k] {
			return fmt.Errorf("%w: missing %s", ErrHeader, k)
		}
	}
	if seen["xllcorner"] == seen["xllcenter"] {
		return fmt.Errorf("%w: need exactly one of xllcorner, xllcenter", ErrHeader)
	}
	if seen["yllcorner"] == seen["yllcenter"] {
		return fmt.Errorf("%w: need exactly one of yllcorner, yllcenter", ErrHeader)
	}
	if seen["cellsize"] == (seen["dx"] || seen["dy"]) || seen["dx"] != seen["dy"] {
		return fmt.Errorf("%w: need cellsize or both dx and dy", ErrHeader)
	}
	if h.dx <= 0 || h.dy <= 0 {
		return fmt.Errorf("%w: cell size must be positive", ErrHeader)
	}
	return nil
}

// Encode writes r to w in corner registration.
func (c *Codec) Encode(w io.Writer, r *raster.Raster) error {
	if err := r.Validate(); err != nil {
		return err
	}
	gt := r.GeoTransform
	if gt[2] != 0 || gt[4] != 0 || gt[1] <= 0 || gt[5] >= 0 {
		return fmt.Errorf("%w: %v", ErrTransform, gt)
	}

	rows, cols := r.Grid.Dims()
	dx, dy := gt[1], -gt[5]

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-14s%d\n", "ncols", cols)
	fmt.Fprintf(bw, "%-14s%d\n", "nrows", rows)
	fmt.Fprintf(bw, "%-14s%s\n", "xllcorner", c.format(gt[0]))
	fmt.Fprintf(bw, "%-14s%s\n", "yllcorner", c.format(gt[3]-float64(rows)*dy))
	if dx == dy {
		fmt.Fprintf(bw, "%-14s%s\n", "cellsize", c.format(dx))
	} else {
		fmt.Fprintf(bw, "%-14s%s\n", "dx", c.format(dx))
		fmt.Fprintf(bw, "%-14s%s\n", "dy", c.format(dy))
	}
	if r.HasNoData {
		fmt.Fprintf(bw, "%-14s%s\n", "NODATA_value", c.format(r.NoData))
	}

	samples := r.Samples()
	var buf []byte
	for row := 0; row < rows; row++ {
		buf = buf[:0]
		for col, v := range samples[row*cols : (row+1)*cols] {
			if col > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, v, 'g', c.cfg.precision, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (c *Codec) format(v float64) string {
	return strconv.FormatFloat(v, 'g', c.cfg.precision, 64)
}
