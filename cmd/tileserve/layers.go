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

package main

import (
	"image"
	"image/png"
	"math"
	"os"

	"github.com/go-errors/errors"

	"github.com/cibolabs/go-tiler/grid"
	"github.com/cibolabs/go-tiler/internal/server"
	"github.com/cibolabs/go-tiler/tiler"
)

// mercatorSquareTransform spreads a width x height raster over the
// whole web mercator square.
func mercatorSquareTransform(width int) tiler.GeoTransform {
	tlx, tly, brx, _ := tiler.TileExtent(0, 0, 0)
	return tiler.NorthUpTransform(tlx, tly, (brx-tlx)/float64(width))
}

// loadPNGLayer reads a PNG into an in-memory dataset: grayscale images
// become one band, everything else four NRGBA bands.
func loadPNGLayer(name, path string) (server.Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return server.Layer{}, errors.WrapPrefix(err, "opening layer", 0)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return server.Layer{}, errors.WrapPrefix(err, "decoding layer", 0)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var bands []*grid.Band
	switch src := img.(type) {
	case *image.Gray:
		g, err := grid.New[uint8](w, h)
		if err != nil {
			return server.Layer{}, err
		}
		for y := range h {
			for x := range w {
				g.Set(x, y, src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		bands = []*grid.Band{grid.BandOf(g)}
	default:
		planes := make([]*grid.Grid[uint8], 4)
		for i := range planes {
			g, err := grid.New[uint8](w, h)
			if err != nil {
				return server.Layer{}, err
			}
			planes[i] = g
		}
		for y := range h {
			for x := range w {
				r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				planes[0].Set(x, y, uint8(r>>8))
				planes[1].Set(x, y, uint8(g>>8))
				planes[2].Set(x, y, uint8(b>>8))
				planes[3].Set(x, y, uint8(a>>8))
			}
		}
		bands = make([]*grid.Band, 4)
		for i, p := range planes {
			bands[i] = grid.BandOf(p)
		}
	}

	ds, err := tiler.NewMemDataset(mercatorSquareTransform(w), bands...)
	if err != nil {
		return server.Layer{}, err
	}
	if err := ds.BuildOverviews(2, 4, 8); err != nil {
		return server.Layer{}, err
	}

	return server.Layer{
		Name:    name,
		Dataset: ds,
		Options: tiler.TileOptions{Method: grid.MethodBilinear},
	}, nil
}

// demoLayer synthesizes a colormapped interference pattern so the
// server has something to show out of the box.
func demoLayer() server.Layer {
	const size = 1024
	g, _ := grid.New[uint8](size, size)
	for y := range size {
		for x := range size {
			fx := float64(x) / 64
			fy := float64(y) / 64
			v := math.Sin(fx)*math.Cos(fy) + math.Sin(math.Hypot(fx-8, fy-8)/2)
			g.Set(x, y, uint8((v+2)*63.5))
		}
	}

	ds, _ := tiler.NewMemDataset(mercatorSquareTransform(size), grid.BandOf(g))
	_ = ds.BuildOverviews(2, 4)

	cm, _ := tiler.ColormapFromPoints([]tiler.Point{
		{Value: 0, Color: tiler.RGBA{R: 13, G: 8, B: 135, A: 255}},
		{Value: 128, Color: tiler.RGBA{R: 204, G: 71, B: 120, A: 255}},
		{Value: 254, Color: tiler.RGBA{R: 240, G: 249, B: 33, A: 255}},
	})

	return server.Layer{
		Name:    "demo",
		Dataset: ds,
		Options: tiler.TileOptions{
			Colormap: cm,
			Method:   grid.MethodBilinear,
		},
	}
}
