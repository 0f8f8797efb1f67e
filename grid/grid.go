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

// Package grid provides single-band 2D raster grids over a closed set of
// numeric element types, and the resampling kernels that operate on them.
//
// A Grid holds one band of sample data in row-major order. The kernels
// (ResampleBilinear, ResampleNearest and their parallel and half-precision
// variants) produce a newly allocated grid of arbitrary target dimensions
// and never mutate their source. An optional no-data sentinel excludes
// masked samples from interpolation; see NoDataPolicy for the two
// propagation rules.
//
// Example usage:
//
//	src, _ := grid.NewFromSlice[uint16](data, 512, 512)
//	nd := uint16(0)
//	dst, err := grid.ResampleBilinear(src, 256, 256, &nd, grid.NoDataRenormalize)
package grid

// Grid is a single-channel 2D sample array in row-major order.
// The zero value is not usable; construct grids with New or NewFromSlice.
type Grid[T Elems] struct {
	data   []T
	width  int
	height int
}

// New creates a zero-filled grid of the given dimensions.
// Both dimensions must be at least 1.
func New[T Elems](width, height int) (*Grid[T], error) {
	if width < 1 || height < 1 {
		return nil, errInvalidArgumentf("grid dimensions %dx%d", width, height)
	}
	return &Grid[T]{
		data:   make([]T, width*height),
		width:  width,
		height: height,
	}, nil
}

// NewFromSlice creates a grid backed by data, which must hold exactly
// width*height elements in row-major order. The slice is used directly,
// not copied.
func NewFromSlice[T Elems](data []T, width, height int) (*Grid[T], error) {
	if width < 1 || height < 1 {
		return nil, errInvalidArgumentf("grid dimensions %dx%d", width, height)
	}
	if len(data) != width*height {
		return nil, errInvalidArgumentf("data length %d for %dx%d grid", len(data), width, height)
	}
	return &Grid[T]{data: data, width: width, height: height}, nil
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid[T]) Height() int {
	return g.height
}

// DType returns the runtime element type of the grid.
func (g *Grid[T]) DType() DType {
	return DTypeOf[T]()
}

// Row returns the mutable slice for row y.
func (g *Grid[T]) Row(y int) []T {
	if y < 0 || y >= g.height {
		return nil
	}
	start := y * g.width
	return g.data[start : start+g.width]
}

// Data returns the backing slice in row-major order.
func (g *Grid[T]) Data() []T {
	return g.data
}

// At returns the value at column x, row y.
// Out-of-bounds coordinates return the zero value.
func (g *Grid[T]) At(x, y int) T {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		var zero T
		return zero
	}
	return g.data[y*g.width+x]
}

// Set stores value at column x, row y. Out-of-bounds coordinates are a no-op.
func (g *Grid[T]) Set(x, y int, value T) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.data[y*g.width+x] = value
}

// Fill sets every sample to value.
func (g *Grid[T]) Fill(value T) {
	for i := range g.data {
		g.data[i] = value
	}
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{data: data, width: g.width, height: g.height}
}

// Bounds returns the grid's bounding rectangle.
func (g *Grid[T]) Bounds() Rect {
	return Rect{X1: g.width, Y1: g.height}
}

// Crop returns a copy of the samples inside r, which must be a non-empty
// rectangle within the grid bounds.
func (g *Grid[T]) Crop(r Rect) (*Grid[T], error) {
	if r.IsEmpty() || r.X0 < 0 || r.Y0 < 0 || r.X1 > g.width || r.Y1 > g.height {
		return nil, errInvalidArgumentf("crop %+v of %dx%d grid", r, g.width, g.height)
	}
	out := &Grid[T]{
		data:   make([]T, r.Width()*r.Height()),
		width:  r.Width(),
		height: r.Height(),
	}
	for y := r.Y0; y < r.Y1; y++ {
		copy(out.Row(y-r.Y0), g.Row(y)[r.X0:r.X1])
	}
	return out, nil
}

// Rect is a rectangular region. X0/Y0 are inclusive, X1/Y1 exclusive.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// Width returns the rectangle width.
func (r Rect) Width() int {
	return r.X1 - r.X0
}

// Height returns the rectangle height.
func (r Rect) Height() int {
	return r.Y1 - r.Y0
}

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Intersect returns the intersection of two rectangles.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		X0: max(r.X0, other.X0),
		Y0: max(r.Y0, other.Y0),
		X1: min(r.X1, other.X1),
		Y1: min(r.Y1, other.Y1),
	}
}

// Clamp returns index clamped to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}
