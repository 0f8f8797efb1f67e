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

// Package tiler renders web-mercator map tiles from raster datasets. It
// selects the right overview level for a tile's zoom, reads the source
// window covering the tile's projected bounds, resamples with the grid
// kernels when zoomed past native resolution, and turns the result into
// an RGBA PNG via rescaling or a colormap.
package tiler

import (
	"github.com/go-errors/errors"
)

// GeoTransform is the six-coefficient affine transform mapping pixel
// (col, row) coordinates to projected (x, y) coordinates:
//
//	x = gt[0] + col*gt[1] + row*gt[2]
//	y = gt[3] + col*gt[4] + row*gt[5]
//
// The layout matches GDAL's GetGeoTransform: origin x, pixel width,
// row rotation, origin y, column rotation, pixel height (negative for
// north-up images).
type GeoTransform [6]float64

// NorthUpTransform builds the common axis-aligned transform with the
// given top-left corner and pixel size. pixelSize is positive; the y
// coefficient is negated.
func NorthUpTransform(tlx, tly, pixelSize float64) GeoTransform {
	return GeoTransform{tlx, pixelSize, 0, tly, 0, -pixelSize}
}

// Apply maps pixel coordinates to projected coordinates.
func (gt GeoTransform) Apply(col, row float64) (x, y float64) {
	x = gt[0] + col*gt[1] + row*gt[2]
	y = gt[3] + col*gt[4] + row*gt[5]
	return x, y
}

// PixelWidth returns the projected width of one pixel.
func (gt GeoTransform) PixelWidth() float64 {
	return gt[1]
}

// PixelHeight returns the projected height of one pixel, negative for
// north-up images.
func (gt GeoTransform) PixelHeight() float64 {
	return gt[5]
}

// Invert returns the transform mapping projected coordinates back to
// pixel coordinates. Fails for singular transforms (zero-area pixels).
func (gt GeoTransform) Invert() (GeoTransform, error) {
	det := gt[1]*gt[5] - gt[2]*gt[4]
	if det == 0 {
		return GeoTransform{}, errors.Errorf("tiler: singular geotransform %v", gt)
	}
	inv := 1.0 / det

	var out GeoTransform
	out[1] = gt[5] * inv
	out[2] = -gt[2] * inv
	out[4] = -gt[4] * inv
	out[5] = gt[1] * inv
	out[0] = -gt[0]*out[1] - gt[3]*out[2]
	out[3] = -gt[0]*out[4] - gt[3]*out[5]
	return out, nil
}
