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

package grid

import "github.com/cibolabs/go-tiler/grid/workerpool"

// Band wraps a Grid whose element type is only known at run time, the
// usual situation when the type comes from raster file metadata. Band
// operations dispatch once per call over the closed DType set; a band
// holding anything else fails with ErrUnsupportedType before any output
// is allocated.
type Band struct {
	dtype  DType
	width  int
	height int
	data   any // *Grid[T] for one of the supported T
}

// BandOf wraps a typed grid.
func BandOf[T Elems](g *Grid[T]) *Band {
	return &Band{
		dtype:  DTypeOf[T](),
		width:  g.width,
		height: g.height,
		data:   g,
	}
}

// NewBand creates a zero-filled band of the given element type.
func NewBand(dt DType, width, height int) (*Band, error) {
	switch dt {
	case DTypeInt8:
		return newBandTyped[int8](width, height)
	case DTypeUint8:
		return newBandTyped[uint8](width, height)
	case DTypeInt16:
		return newBandTyped[int16](width, height)
	case DTypeUint16:
		return newBandTyped[uint16](width, height)
	case DTypeInt32:
		return newBandTyped[int32](width, height)
	case DTypeUint32:
		return newBandTyped[uint32](width, height)
	case DTypeInt64:
		return newBandTyped[int64](width, height)
	case DTypeUint64:
		return newBandTyped[uint64](width, height)
	case DTypeFloat16:
		return newBandTyped[Float16](width, height)
	case DTypeFloat32:
		return newBandTyped[float32](width, height)
	case DTypeFloat64:
		return newBandTyped[float64](width, height)
	default:
		return nil, errUnsupportedType(dt)
	}
}

func newBandTyped[T Elems](width, height int) (*Band, error) {
	g, err := New[T](width, height)
	if err != nil {
		return nil, err
	}
	return BandOf(g), nil
}

// GridOf returns the typed grid backing b, if T matches its element type.
func GridOf[T Elems](b *Band) (*Grid[T], bool) {
	g, ok := b.data.(*Grid[T])
	return g, ok
}

// DType returns the band's element type.
func (b *Band) DType() DType {
	return b.dtype
}

// Width returns the number of columns.
func (b *Band) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Band) Height() int {
	return b.height
}

// Resample produces a new band of the requested dimensions using the
// given method. noData, when non-nil, is narrowed into the band's element
// type the way the upstream metadata intends (truncation for integer
// types) and excluded from bilinear blends per policy. A nil pool runs
// the serial kernels.
func (b *Band) Resample(pool *workerpool.Pool, method Method, width, height int, noData *float64, policy NoDataPolicy) (*Band, error) {
	switch g := b.data.(type) {
	case *Grid[int8]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[uint8]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[int16]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[uint16]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[int32]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[uint32]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[int64]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[uint64]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[float32]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[float64]:
		return resampleBand(pool, g, method, width, height, noData, policy)
	case *Grid[Float16]:
		return resampleBandF16(pool, g, method, width, height, noData, policy)
	default:
		return nil, errUnsupportedType(b.dtype)
	}
}

func resampleBand[T Samples](pool *workerpool.Pool, g *Grid[T], method Method, width, height int, noData *float64, policy NoDataPolicy) (*Band, error) {
	var nd *T
	if noData != nil {
		v := T(*noData)
		nd = &v
	}
	var out *Grid[T]
	var err error
	switch method {
	case MethodNearest:
		out, err = ParallelResampleNearest(pool, g, width, height)
	case MethodBilinear:
		out, err = ParallelResampleBilinear(pool, g, width, height, nd, policy)
	default:
		err = errInvalidArgumentf("unknown resample method %d", method)
	}
	if err != nil {
		return nil, err
	}
	return BandOf(out), nil
}

func resampleBandF16(pool *workerpool.Pool, g *Grid[Float16], method Method, width, height int, noData *float64, policy NoDataPolicy) (*Band, error) {
	var nd *Float16
	if noData != nil {
		v := Float16FromFloat64(*noData)
		nd = &v
	}
	var out *Grid[Float16]
	var err error
	switch method {
	case MethodNearest:
		out, err = ParallelResampleNearest(pool, g, width, height)
	case MethodBilinear:
		out, err = ParallelResampleBilinearF16(pool, g, width, height, nd, policy)
	default:
		err = errInvalidArgumentf("unknown resample method %d", method)
	}
	if err != nil {
		return nil, err
	}
	return BandOf(out), nil
}

// Crop returns a copy of the samples inside r as a new band.
func (b *Band) Crop(r Rect) (*Band, error) {
	switch g := b.data.(type) {
	case *Grid[int8]:
		return cropBand(g, r)
	case *Grid[uint8]:
		return cropBand(g, r)
	case *Grid[int16]:
		return cropBand(g, r)
	case *Grid[uint16]:
		return cropBand(g, r)
	case *Grid[int32]:
		return cropBand(g, r)
	case *Grid[uint32]:
		return cropBand(g, r)
	case *Grid[int64]:
		return cropBand(g, r)
	case *Grid[uint64]:
		return cropBand(g, r)
	case *Grid[Float16]:
		return cropBand(g, r)
	case *Grid[float32]:
		return cropBand(g, r)
	case *Grid[float64]:
		return cropBand(g, r)
	default:
		return nil, errUnsupportedType(b.dtype)
	}
}

func cropBand[T Elems](g *Grid[T], r Rect) (*Band, error) {
	out, err := g.Crop(r)
	if err != nil {
		return nil, err
	}
	return BandOf(out), nil
}

// Float64s widens the band's samples into a float64 grid, for rescaling
// and colormap lookups where the exact element type no longer matters.
func (b *Band) Float64s() (*Grid[float64], error) {
	switch g := b.data.(type) {
	case *Grid[int8]:
		return widenGrid(g), nil
	case *Grid[uint8]:
		return widenGrid(g), nil
	case *Grid[int16]:
		return widenGrid(g), nil
	case *Grid[uint16]:
		return widenGrid(g), nil
	case *Grid[int32]:
		return widenGrid(g), nil
	case *Grid[uint32]:
		return widenGrid(g), nil
	case *Grid[int64]:
		return widenGrid(g), nil
	case *Grid[uint64]:
		return widenGrid(g), nil
	case *Grid[float32]:
		return widenGrid(g), nil
	case *Grid[float64]:
		return g.Clone(), nil
	case *Grid[Float16]:
		out := &Grid[float64]{data: make([]float64, len(g.data)), width: g.width, height: g.height}
		for i, v := range g.data {
			out.data[i] = v.Float64()
		}
		return out, nil
	default:
		return nil, errUnsupportedType(b.dtype)
	}
}

func widenGrid[T Samples](g *Grid[T]) *Grid[float64] {
	out := &Grid[float64]{data: make([]float64, len(g.data)), width: g.width, height: g.height}
	for i, v := range g.data {
		out.data[i] = float64(v)
	}
	return out
}

// MaskEqual returns a grid holding 1 where the band's sample equals value
// and 0 elsewhere. The comparison happens in the band's element type, the
// same exact-match rule the resampling kernels use for no-data sentinels.
func (b *Band) MaskEqual(value float64) (*Grid[uint8], error) {
	switch g := b.data.(type) {
	case *Grid[int8]:
		return maskEqual(g, int8(value)), nil
	case *Grid[uint8]:
		return maskEqual(g, uint8(value)), nil
	case *Grid[int16]:
		return maskEqual(g, int16(value)), nil
	case *Grid[uint16]:
		return maskEqual(g, uint16(value)), nil
	case *Grid[int32]:
		return maskEqual(g, int32(value)), nil
	case *Grid[uint32]:
		return maskEqual(g, uint32(value)), nil
	case *Grid[int64]:
		return maskEqual(g, int64(value)), nil
	case *Grid[uint64]:
		return maskEqual(g, uint64(value)), nil
	case *Grid[float32]:
		return maskEqual(g, float32(value)), nil
	case *Grid[float64]:
		return maskEqual(g, value), nil
	case *Grid[Float16]:
		return maskEqual(g, Float16FromFloat64(value)), nil
	default:
		return nil, errUnsupportedType(b.dtype)
	}
}

func maskEqual[T Elems](g *Grid[T], value T) *Grid[uint8] {
	out := &Grid[uint8]{data: make([]uint8, len(g.data)), width: g.width, height: g.height}
	for i, v := range g.data {
		if v == value {
			out.data[i] = 1
		}
	}
	return out
}
