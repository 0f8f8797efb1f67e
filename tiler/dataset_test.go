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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cibolabs/go-tiler/grid"
)

func gradientBand(t *testing.T, width, height int) *grid.Band {
	t.Helper()
	g, err := grid.New[uint8](width, height)
	require.NoError(t, err)
	for y := range height {
		for x := range width {
			g.Set(x, y, uint8((x+y)%256))
		}
	}
	return grid.BandOf(g)
}

func TestNewMemDataset(t *testing.T) {
	gt := NorthUpTransform(0, 0, 1)

	_, err := NewMemDataset(gt)
	require.Error(t, err, "no bands")

	b1 := gradientBand(t, 16, 8)
	b2 := gradientBand(t, 16, 9)
	_, err = NewMemDataset(gt, b1, b2)
	require.Error(t, err, "mismatched band sizes")

	ds, err := NewMemDataset(gt, b1, gradientBand(t, 16, 8))
	require.NoError(t, err)
	w, h := ds.Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, 2, ds.Bands())
	assert.Equal(t, gt, ds.GeoTransform())
}

func TestMemDataset_NoData(t *testing.T) {
	ds, err := NewMemDataset(NorthUpTransform(0, 0, 1), gradientBand(t, 4, 4))
	require.NoError(t, err)

	assert.Nil(t, ds.NoData(0))
	require.NoError(t, ds.SetNoData(0, 255))
	require.NotNil(t, ds.NoData(0))
	assert.Equal(t, 255.0, *ds.NoData(0))

	assert.Error(t, ds.SetNoData(1, 0))
	assert.Nil(t, ds.NoData(1))
	assert.Nil(t, ds.NoData(-1))
}

func TestMemDataset_BuildOverviews(t *testing.T) {
	ds, err := NewMemDataset(NorthUpTransform(0, 0, 1), gradientBand(t, 64, 32))
	require.NoError(t, err)

	require.NoError(t, ds.BuildOverviews(2, 4))
	levels := ds.Overviews().Levels()
	require.Len(t, levels, 3)
	assert.Equal(t, 64, levels[0].XSize)
	assert.Equal(t, 32, levels[1].XSize)
	assert.Equal(t, 16, levels[1].YSize)
	assert.Equal(t, 2.0, levels[1].FullResPixPerPix)
	assert.Equal(t, 16, levels[2].XSize)
	assert.Equal(t, 4.0, levels[2].FullResPixPerPix)

	assert.Error(t, ds.BuildOverviews(1), "factor 1 not allowed")
	assert.Error(t, ds.BuildOverviews(4, 2), "factors must increase")
}

func TestMemDataset_Read(t *testing.T) {
	ds, err := NewMemDataset(NorthUpTransform(0, 0, 1), gradientBand(t, 16, 16))
	require.NoError(t, err)

	// window at native size
	b, err := ds.Read(0, 0, grid.Rect{X0: 2, Y0: 3, X1: 6, Y1: 5}, 4, 2)
	require.NoError(t, err)
	g, ok := grid.GridOf[uint8](b)
	require.True(t, ok)
	assert.Equal(t, uint8(5), g.At(0, 0)) // source (2,3)
	assert.Equal(t, uint8(9), g.At(3, 1)) // source (5,4)

	// scaled up by replication
	b, err = ds.Read(0, 0, grid.Rect{X0: 0, Y0: 0, X1: 2, Y1: 2}, 4, 4)
	require.NoError(t, err)
	g, _ = grid.GridOf[uint8](b)
	assert.Equal(t, uint8(0), g.At(0, 0))
	assert.Equal(t, uint8(0), g.At(1, 1))
	assert.Equal(t, uint8(1), g.At(2, 0)) // source (1,0)
}

func TestMemDataset_ReadOverview(t *testing.T) {
	ds, err := NewMemDataset(NorthUpTransform(0, 0, 1), gradientBand(t, 16, 16))
	require.NoError(t, err)
	require.NoError(t, ds.BuildOverviews(2))

	b, err := ds.Read(0, 1, grid.Rect{X0: 0, Y0: 0, X1: 8, Y1: 8}, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, b.Width())
	g, _ := grid.GridOf[uint8](b)
	// overview pixel (1,1) replicates full-res (2,2)
	assert.Equal(t, uint8(4), g.At(1, 1))
}

func TestMemDataset_Read_Errors(t *testing.T) {
	ds, err := NewMemDataset(NorthUpTransform(0, 0, 1), gradientBand(t, 8, 8))
	require.NoError(t, err)

	_, err = ds.Read(1, 0, grid.Rect{X1: 2, Y1: 2}, 2, 2)
	assert.Error(t, err, "band out of range")
	_, err = ds.Read(0, 3, grid.Rect{X1: 2, Y1: 2}, 2, 2)
	assert.Error(t, err, "level out of range")
	_, err = ds.Read(0, 0, grid.Rect{X0: 4, Y0: 0, X1: 12, Y1: 2}, 8, 2)
	assert.Error(t, err, "window outside raster")
}

func TestNewMetadata(t *testing.T) {
	gt := NorthUpTransform(1000, 2000, 10)
	ds, err := NewMemDataset(gt, gradientBand(t, 32, 16))
	require.NoError(t, err)
	require.NoError(t, ds.SetNoData(0, 0))

	meta, err := NewMetadata(ds)
	require.NoError(t, err)
	assert.Equal(t, 32, meta.XSize)
	assert.Equal(t, 16, meta.YSize)
	assert.Equal(t, 1, meta.BandCount)
	require.NotNil(t, meta.NoData[0])
	assert.Equal(t, 1000.0, meta.TLX)
	assert.Equal(t, 2000.0, meta.TLY)
	assert.Equal(t, 1320.0, meta.BRX) // 1000 + 32*10
	assert.Equal(t, 1840.0, meta.BRY) // 2000 - 16*10

	// inverse roundtrip through cached transform
	col, row := meta.Inverse.Apply(meta.TLX, meta.TLY)
	assert.InDelta(t, 0, col, 1e-9)
	assert.InDelta(t, 0, row, 1e-9)
}
