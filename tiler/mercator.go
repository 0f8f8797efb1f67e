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

// Web mercator (EPSG:3857) tiling scheme constants. The origin values
// follow gdal2tiles, not the rounded numbers published on epsg.io.
const (
	MercatorXOrigin = -20037508.342789244
	MercatorYOrigin = 20037508.342789244

	// Projected units per pixel at zoom 0, for the 512-pixel
	// reference tile of the global-mercator TMS profile.
	MercatorUnitsPerPixelZ0 = 78271.516
	MercatorTileSize        = 512
)

// TileExtent returns the projected bounding box (tlx, tly, brx, bry) of
// the web mercator tile at the given zoom and grid position. y counts
// down from the north edge (XYZ convention).
func TileExtent(z, x, y int) (tlx, tly, brx, bry float64) {
	unitsPerPixel := MercatorUnitsPerPixelZ0 / float64(int(1)<<uint(z))
	tileSize := unitsPerPixel * MercatorTileSize

	tlx = MercatorXOrigin + tileSize*float64(x)
	tly = MercatorYOrigin - tileSize*float64(y)
	brx = tlx + tileSize
	bry = tly - tileSize
	return tlx, tly, brx, bry
}
