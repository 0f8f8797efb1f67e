// Copyright 2026 go-tiler Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tiler

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"

	"github.com/cibolabs/go-tiler/grid"
	"github.com/cibolabs/go-tiler/grid/workerpool"
)

// DefaultTileSize is the edge length of rendered tiles when TileOptions
// leaves TileSize zero.
const DefaultTileSize = 256

const maxOutVal = 255

// RescaleRange is the source value range linearly stretched onto the
// output range [0, 255].
type RescaleRange struct {
	Min, Max float64
}

// TileOptions controls how a tile is rendered.
type TileOptions struct {
	// Bands selects the zero-based bands to render: 1 (grayscale or
	// colormap), 3 (RGB) or 4 (RGBA). Nil means all bands.
	Bands []int
	// Rescaling stretches band values onto [0, 255]: either one range
	// shared by every band or one per band. Mutually exclusive with
	// Colormap.
	Rescaling []RescaleRange
	// Colormap colours a single band by value lookup.
	Colormap *Colormap
	// Method picks the kernel used when a tile asks for finer
	// resolution than the raster has. Zero value is nearest.
	Method grid.Method
	// Policy picks the no-data handling for bilinear resampling.
	Policy grid.NoDataPolicy
	// TileSize is the output edge length, DefaultTileSize when zero.
	TileSize int
	// Pool, when set, parallelizes the resampling kernels.
	Pool *workerpool.Pool
}

// GetTile renders the web mercator tile (z, x, y) of ds as a PNG.
// Out-of-coverage tiles come back fully transparent. The alpha channel
// is taken from the fourth band when present, otherwise synthesized
// from the union of the bands' no-data masks.
func GetTile(ds Dataset, z, x, y int, opts TileOptions) ([]byte, error) {
	meta, err := NewMetadata(ds)
	if err != nil {
		return nil, err
	}
	tlx, tly, brx, bry := TileExtent(z, x, y)
	size := opts.TileSize
	if size <= 0 {
		size = DefaultTileSize
	}
	img, err := RenderExtent(ds, meta, tlx, tly, brx, bry, size, size, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.WrapPrefix(err, "tiler: encoding tile", 0)
	}
	return buf.Bytes(), nil
}

// RenderExtent renders the given projected bounds of ds into an
// outW x outH RGBA image. GetTile is a thin wrapper around this; the
// server's whole-extent previews call it directly.
func RenderExtent(ds Dataset, meta *Metadata, tlx, tly, brx, bry float64,
	outW, outH int, opts TileOptions) (*image.NRGBA, error) {

	bands := opts.Bands
	if bands == nil {
		bands = make([]int, meta.BandCount)
		for i := range bands {
			bands[i] = i
		}
	}
	if len(bands) != 1 && len(bands) != 3 && len(bands) != 4 {
		return nil, errors.Errorf("tiler: invalid number of bands %d (valid: 1, 3 or 4)", len(bands))
	}
	if opts.Colormap != nil {
		if opts.Rescaling != nil {
			return nil, errors.New("tiler: rescaling and colormap are mutually exclusive")
		}
		if len(bands) != 1 {
			return nil, errors.Errorf("tiler: colormap requires exactly one band, got %d", len(bands))
		}
	}
	if opts.Rescaling != nil && len(opts.Rescaling) != 1 && len(opts.Rescaling) != len(bands) {
		return nil, errors.Errorf("tiler: %d rescaling ranges for %d bands", len(opts.Rescaling), len(bands))
	}

	ck, err := readChunk(ds, meta, outW, outH, tlx, tly, brx, bry,
		bands, opts.Method, opts.Policy, opts.Pool)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	if ck.bands == nil {
		// outside coverage: fully transparent
		return img, nil
	}

	planes := [4][]uint8{}
	for i := range planes {
		planes[i] = make([]uint8, outW*outH)
	}
	alphaSet := false
	var noDataMask *grid.Grid[uint8]

	switch {
	case opts.Colormap != nil:
		values, err := ck.bands[0].Float64s()
		if err != nil {
			return nil, err
		}
		if err := fillColormapPlanes(&planes, values, ck.dest, outW, opts.Colormap); err != nil {
			return nil, err
		}
		alphaSet = true

	default:
		noDataMask, err = fillBandPlanes(&planes, ck, bands, meta, outW, opts.Rescaling)
		if err != nil {
			return nil, err
		}
		alphaSet = len(bands) >= 4
	}

	if !alphaSet {
		fillAlpha(planes[3], noDataMask, ck.dest, outW)
	}

	assembleNRGBA(img, planes)
	return img, nil
}

// fillBandPlanes writes each selected band into its output plane,
// rescaled when ranges are given, and collects the union of the bands'
// no-data masks. Single-band grayscale replicates into R, G and B.
func fillBandPlanes(planes *[4][]uint8, ck *chunk, bands []int, meta *Metadata,
	outW int, rescaling []RescaleRange) (*grid.Grid[uint8], error) {

	masks := make([]*grid.Grid[uint8], len(bands))

	var g errgroup.Group
	for i, bandIdx := range bands {
		g.Go(func() error {
			values, err := ck.bands[i].Float64s()
			if err != nil {
				return err
			}

			if nd := meta.NoData[bandIdx]; nd != nil && i < 3 {
				mask, err := ck.bands[i].MaskEqual(*nd)
				if err != nil {
					return err
				}
				masks[i] = mask
			}

			if rescaling != nil {
				r := rescaling[0]
				if len(rescaling) > 1 {
					r = rescaling[i]
				}
				if r.Max == r.Min {
					return errors.Errorf("tiler: empty rescale range [%g, %g]", r.Min, r.Max)
				}
				scale := maxOutVal / (r.Max - r.Min)
				for j, v := range values.Data() {
					values.Data()[j] = math.Max(v-r.Min, 0) * scale
				}
			}

			writePlane(planes[i], values, ck.dest, outW)
			if len(bands) == 1 {
				copy(planes[1], planes[0])
				copy(planes[2], planes[0])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var union *grid.Grid[uint8]
	for _, m := range masks {
		if m == nil {
			continue
		}
		if union == nil {
			union = m
			continue
		}
		for j, v := range m.Data() {
			if v != 0 {
				union.Data()[j] = 1
			}
		}
	}
	return union, nil
}

// writePlane clamps values to [0, 255] and writes them into the dest
// sub-rectangle of a tile plane.
func writePlane(plane []uint8, values *grid.Grid[float64], dest grid.Rect, outW int) {
	for y := range values.Height() {
		row := values.Row(y)
		base := (dest.Y0+y)*outW + dest.X0
		for x, v := range row {
			plane[base+x] = clampToByte(v)
		}
	}
}

func fillColormapPlanes(planes *[4][]uint8, values *grid.Grid[float64], dest grid.Rect,
	outW int, cm *Colormap) error {

	for y := range values.Height() {
		row := values.Row(y)
		base := (dest.Y0+y)*outW + dest.X0
		for x, v := range row {
			col := cm.Lookup(int(v))
			planes[0][base+x] = col.R
			planes[1][base+x] = col.G
			planes[2][base+x] = col.B
			planes[3][base+x] = col.A
		}
	}
	return nil
}

// fillAlpha makes the covered area opaque except where the no-data mask
// is set; the area outside coverage stays transparent.
func fillAlpha(alpha []uint8, mask *grid.Grid[uint8], dest grid.Rect, outW int) {
	for y := dest.Y0; y < dest.Y1; y++ {
		base := y * outW
		for x := dest.X0; x < dest.X1; x++ {
			alpha[base+x] = maxOutVal
		}
	}
	if mask == nil {
		return
	}
	for y := range mask.Height() {
		row := mask.Row(y)
		base := (dest.Y0+y)*outW + dest.X0
		for x, v := range row {
			if v != 0 {
				alpha[base+x] = 0
			}
		}
	}
}

func assembleNRGBA(img *image.NRGBA, planes [4][]uint8) {
	for i := range planes[0] {
		img.Pix[i*4+0] = planes[0][i]
		img.Pix[i*4+1] = planes[1][i]
		img.Pix[i*4+2] = planes[2][i]
		img.Pix[i*4+3] = planes[3][i]
	}
}

func clampToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= maxOutVal {
		return maxOutVal
	}
	return uint8(v)
}
