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
	"github.com/go-errors/errors"

	"github.com/cibolabs/go-tiler/grid"
)

// Dataset is a georeferenced raster with optional reduced-resolution
// overviews. Band and level indices are zero based; level 0 is the full
// resolution raster.
type Dataset interface {
	// Size returns the full-resolution raster dimensions.
	Size() (width, height int)
	// Bands returns the number of bands.
	Bands() int
	// NoData returns the band's no-data value, or nil when unset.
	NoData(band int) *float64
	// GeoTransform returns the pixel-to-projected mapping.
	GeoTransform() GeoTransform
	// Overviews lists the dataset's resolution levels.
	Overviews() *OverviewSet
	// Read returns the samples of win (in level pixel coordinates)
	// scaled to outW x outH by pixel replication when the sizes
	// differ.
	Read(band, level int, win grid.Rect, outW, outH int) (*grid.Band, error)
}

// Metadata caches everything the tile path needs from a dataset so one
// request does not keep re-deriving it: sizes, no-data values, the
// inverse geotransform and the projected bounding box.
type Metadata struct {
	XSize     int
	YSize     int
	BandCount int
	Transform GeoTransform
	Inverse   GeoTransform
	NoData    []*float64
	Overviews *OverviewSet

	// projected bounds of the raster
	TLX, TLY, BRX, BRY float64
}

// NewMetadata queries ds once and caches the answers.
func NewMetadata(ds Dataset) (*Metadata, error) {
	w, h := ds.Size()
	gt := ds.GeoTransform()
	inv, err := gt.Invert()
	if err != nil {
		return nil, err
	}

	m := &Metadata{
		XSize:     w,
		YSize:     h,
		BandCount: ds.Bands(),
		Transform: gt,
		Inverse:   inv,
		NoData:    make([]*float64, ds.Bands()),
		Overviews: ds.Overviews(),
	}
	for i := range m.NoData {
		m.NoData[i] = ds.NoData(i)
	}
	m.TLX, m.TLY = gt.Apply(0, 0)
	m.BRX, m.BRY = gt.Apply(float64(w), float64(h))
	return m, nil
}

// MemDataset is an in-memory Dataset: one Band per raster band, all the
// same size, plus nearest-decimated overview pyramids built on demand.
type MemDataset struct {
	width     int
	height    int
	transform GeoTransform
	bands     []*grid.Band
	noData    []*float64

	// pyramid[level-1][band] holds the reduced levels
	pyramid [][]*grid.Band
	levels  []OverviewInfo
}

// NewMemDataset wraps the given bands. All bands must share dimensions.
func NewMemDataset(gt GeoTransform, bands ...*grid.Band) (*MemDataset, error) {
	if len(bands) == 0 {
		return nil, errors.New("tiler: dataset needs at least one band")
	}
	w, h := bands[0].Width(), bands[0].Height()
	for i, b := range bands {
		if b.Width() != w || b.Height() != h {
			return nil, errors.Errorf("tiler: band %d is %dx%d, want %dx%d",
				i, b.Width(), b.Height(), w, h)
		}
	}
	return &MemDataset{
		width:     w,
		height:    h,
		transform: gt,
		bands:     bands,
		noData:    make([]*float64, len(bands)),
	}, nil
}

// SetNoData records the no-data value for one band.
func (d *MemDataset) SetNoData(band int, value float64) error {
	if band < 0 || band >= len(d.bands) {
		return errors.Errorf("tiler: band %d out of range", band)
	}
	d.noData[band] = &value
	return nil
}

// BuildOverviews creates reduced-resolution levels by nearest-neighbour
// decimation, one per factor (2 means half size). Factors must be
// increasing and > 1. Existing overviews are replaced.
func (d *MemDataset) BuildOverviews(factors ...int) error {
	d.pyramid = d.pyramid[:0]
	d.levels = d.levels[:0]

	prev := 1
	for _, f := range factors {
		if f <= prev {
			return errors.Errorf("tiler: overview factors must be increasing and > 1, got %v", factors)
		}
		prev = f

		ovW := max(d.width/f, 1)
		ovH := max(d.height/f, 1)
		level := make([]*grid.Band, len(d.bands))
		for i, b := range d.bands {
			reduced, err := b.Resample(nil, grid.MethodNearest, ovW, ovH, nil, grid.NoDataRenormalize)
			if err != nil {
				return errors.WrapPrefix(err, "tiler: building overview", 0)
			}
			level[i] = reduced
		}
		d.pyramid = append(d.pyramid, level)
		d.levels = append(d.levels, OverviewInfo{
			XSize:            ovW,
			YSize:            ovH,
			FullResPixPerPix: float64(d.width) / float64(ovW),
			Level:            len(d.pyramid),
		})
	}
	return nil
}

// Size returns the full-resolution dimensions.
func (d *MemDataset) Size() (int, int) {
	return d.width, d.height
}

// Bands returns the band count.
func (d *MemDataset) Bands() int {
	return len(d.bands)
}

// NoData returns the band's no-data value, nil when unset or out of
// range.
func (d *MemDataset) NoData(band int) *float64 {
	if band < 0 || band >= len(d.noData) {
		return nil
	}
	return d.noData[band]
}

// GeoTransform returns the dataset's geotransform.
func (d *MemDataset) GeoTransform() GeoTransform {
	return d.transform
}

// Overviews lists the available levels.
func (d *MemDataset) Overviews() *OverviewSet {
	return NewOverviewSet(d.width, d.height, d.levels)
}

// Read extracts win from the chosen level and replicates it to
// outW x outH when the window size differs, the same contract as GDAL's
// ReadAsArray with explicit buffer dimensions.
func (d *MemDataset) Read(band, level int, win grid.Rect, outW, outH int) (*grid.Band, error) {
	if band < 0 || band >= len(d.bands) {
		return nil, errors.Errorf("tiler: band %d out of range", band)
	}
	var src *grid.Band
	switch {
	case level == 0:
		src = d.bands[band]
	case level >= 1 && level <= len(d.pyramid):
		src = d.pyramid[level-1][band]
	default:
		return nil, errors.Errorf("tiler: overview level %d out of range", level)
	}

	window, err := src.Crop(win)
	if err != nil {
		return nil, errors.WrapPrefix(err, "tiler: read window", 0)
	}
	if window.Width() == outW && window.Height() == outH {
		return window, nil
	}
	out, err := window.Resample(nil, grid.MethodNearest, outW, outH, nil, grid.NoDataRenormalize)
	if err != nil {
		return nil, errors.WrapPrefix(err, "tiler: read scaling", 0)
	}
	return out, nil
}
