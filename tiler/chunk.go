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
	"math"

	"github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"

	"github.com/cibolabs/go-tiler/grid"
	"github.com/cibolabs/go-tiler/grid/workerpool"
)

// chunk is the raster data backing one tile request. When the requested
// bounds fall entirely outside the raster, bands is nil. When they are
// partially covered, dest is the sub-rectangle of the tile the data
// occupies; the rest of the tile is background.
type chunk struct {
	bands []*grid.Band
	dest  grid.Rect
}

// readChunk reads the window of ds covering the projected bounds
// (tlx, tly, brx, bry) for an outW x outH tile. The best overview for
// the zoom is selected first. When the tile asks for finer resolution
// than the raster has (imgPixPerWinPix < 1), whole source pixels are
// read with a method-dependent margin, resampled up, and the fractional
// pixel extras trimmed off.
func readChunk(ds Dataset, meta *Metadata, outW, outH int, tlx, tly, brx, bry float64,
	bands []int, method grid.Method, policy grid.NoDataPolicy, pool *workerpool.Pool) (*chunk, error) {

	imgPixX := (brx - tlx) / meta.Transform.PixelWidth()
	imgPixY := (bry - tly) / meta.Transform.PixelHeight()

	origPixLeft, origPixTop := meta.Inverse.Apply(tlx, tly)
	origPixRight := origPixLeft + imgPixX
	origPixBottom := origPixTop + imgPixY
	imgPixPerWinPix := (origPixRight - origPixLeft) / float64(outW)

	selected := meta.Overviews.FindBest(imgPixPerWinPix)

	// entirely outside the raster?
	switch {
	case origPixTop < 0 && origPixBottom < 0,
		origPixLeft < 0 && origPixRight < 0,
		origPixLeft > float64(meta.XSize) && origPixRight > float64(meta.XSize),
		origPixTop > float64(meta.YSize) && origPixBottom > float64(meta.YSize):
		return &chunk{}, nil
	}

	frp := selected.FullResPixPerPix

	pixTop := math.Max(origPixTop, 0)
	pixLeft := math.Max(origPixLeft, 0)
	pixBottom := math.Min(origPixBottom, float64(meta.YSize))
	pixRight := math.Min(origPixRight, float64(meta.XSize))

	ovTop := max(int(pixTop/frp), 0)
	ovLeft := max(int(pixLeft/frp), 0)
	ovBottom := min(int(math.Ceil(pixBottom/frp)), selected.YSize)
	ovRight := min(int(math.Ceil(pixRight/frp)), selected.XSize)
	window := grid.Rect{X0: ovLeft, Y0: ovTop, X1: ovRight, Y1: ovBottom}

	// Tile coordinates of the covered area. Sizes are computed in
	// float and rounded once at the end; rounding each corner
	// separately leaves dark seams at coverage edges.
	dspRastLeft := int(math.Round((pixLeft - origPixLeft) / imgPixPerWinPix))
	dspRastTop := int(math.Round((pixTop - origPixTop) / imgPixPerWinPix))
	dspRastRight := int(math.Round((pixRight - origPixLeft) / imgPixPerWinPix))
	dspRastBottom := int(math.Round((pixBottom - origPixTop) / imgPixPerWinPix))
	dspRastXSize := dspRastRight - dspRastLeft
	dspRastYSize := dspRastBottom - dspRastTop
	if dspRastXSize <= 0 || dspRastYSize <= 0 {
		// coverage is a sliver thinner than half a tile pixel
		return &chunk{}, nil
	}

	var dspLeftExtra, dspTopExtra, dspRightExtra, dspBottomExtra int
	if imgPixPerWinPix < 1 {
		// whole source pixels are read, so the window sticks out by
		// up to a pixel on each side; these extras are trimmed after
		// resampling
		dspRastAbsLeft := int((math.Floor(pixLeft) - origPixLeft) / imgPixPerWinPix)
		dspRastAbsTop := int((math.Floor(pixTop) - origPixTop) / imgPixPerWinPix)
		dspRastAbsRight := int((math.Ceil(pixRight) - origPixLeft) / imgPixPerWinPix)
		dspRastAbsBottom := int((math.Ceil(pixBottom) - origPixTop) / imgPixPerWinPix)
		dspLeftExtra = int(float64(dspRastLeft-dspRastAbsLeft) / frp)
		dspTopExtra = int(float64(dspRastTop-dspRastAbsTop) / frp)
		dspRightExtra = max(int(float64(dspRastAbsRight-dspRastRight)/frp), 0)
		dspBottomExtra = max(int(float64(dspRastAbsBottom-dspRastBottom)/frp), 0)
	}

	result := &chunk{
		bands: make([]*grid.Band, len(bands)),
		dest: grid.Rect{
			X0: dspRastLeft,
			Y0: dspRastTop,
			X1: dspRastLeft + dspRastXSize,
			Y1: dspRastTop + dspRastYSize,
		},
	}

	var g errgroup.Group
	for i, bandIdx := range bands {
		g.Go(func() error {
			if bandIdx < 0 || bandIdx >= meta.BandCount {
				return errors.Errorf("tiler: band %d out of range (dataset has %d)", bandIdx, meta.BandCount)
			}

			if imgPixPerWinPix >= 1 {
				data, err := ds.Read(bandIdx, selected.Level, window, dspRastXSize, dspRastYSize)
				if err != nil {
					return err
				}
				result.bands[i] = data
				return nil
			}

			// zoomed past native resolution: read whole pixels with a
			// margin, resample, then cut out the target area
			m := resampleMargins(method, window, selected)
			raw, err := ds.Read(bandIdx, selected.Level,
				grid.Rect{
					X0: window.X0 - m.left,
					Y0: window.Y0 - m.top,
					X1: window.X1 + m.right,
					Y1: window.Y1 + m.bottom,
				},
				window.Width()+m.left+m.right,
				window.Height()+m.top+m.bottom)
			if err != nil {
				return err
			}

			trimLeft := dspLeftExtra + int(math.Round(float64(m.left)/imgPixPerWinPix))
			trimTop := dspTopExtra + int(math.Round(float64(m.top)/imgPixPerWinPix))
			trimRight := dspRightExtra + int(math.Round(float64(m.right)/imgPixPerWinPix))
			trimBottom := dspBottomExtra + int(math.Round(float64(m.bottom)/imgPixPerWinPix))

			resampled, err := raw.Resample(pool, method,
				dspRastXSize+trimLeft+trimRight,
				dspRastYSize+trimTop+trimBottom,
				meta.NoData[bandIdx], policy)
			if err != nil {
				return errors.WrapPrefix(err, "tiler: resampling chunk", 0)
			}
			data, err := resampled.Crop(grid.Rect{
				X0: trimLeft,
				Y0: trimTop,
				X1: trimLeft + dspRastXSize,
				Y1: trimTop + dspRastYSize,
			})
			if err != nil {
				return errors.WrapPrefix(err, "tiler: trimming chunk", 0)
			}
			result.bands[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// margins holds the per-edge pixel margin actually available for a
// resample read, clipped at the physical raster edge.
type margins struct {
	left, top, right, bottom int
}

func resampleMargins(method grid.Method, window grid.Rect, level OverviewInfo) margins {
	want := method.Margin()
	if want == 0 {
		return margins{}
	}
	return margins{
		left:   min(want, window.X0),
		top:    min(want, window.Y0),
		right:  min(want, level.XSize-window.X1),
		bottom: min(want, level.YSize-window.Y1),
	}
}
