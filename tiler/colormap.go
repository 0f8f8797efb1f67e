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
	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is one colormap entry.
type RGBA struct {
	R, G, B, A uint8
}

// Interval colours the half-open pixel-value range [Min, Max). The Max
// of one interval should be the Min of the next.
type Interval struct {
	Min, Max int
	Color    RGBA
}

// Point anchors a colour at an exact pixel value; values between
// anchors are interpolated.
type Point struct {
	Value int
	Color RGBA
}

// Colormap maps integer pixel values to colours via four channel
// tables. Lookups clamp out-of-range values into the table.
type Colormap struct {
	r, g, b, a []uint8
}

// ColormapFromIntervals builds a stepped colormap from ordered value
// intervals. The table covers [0, lastInterval.Max); gaps between
// intervals keep the zero colour.
func ColormapFromIntervals(intervals []Interval) (*Colormap, error) {
	if len(intervals) == 0 {
		return nil, errors.New("tiler: colormap needs at least one interval")
	}
	size := intervals[len(intervals)-1].Max
	if size <= 0 {
		return nil, errors.Errorf("tiler: colormap table size %d", size)
	}

	c := newColormap(size)
	for _, iv := range intervals {
		if iv.Min < 0 || iv.Max > size || iv.Min >= iv.Max {
			return nil, errors.Errorf("tiler: bad colormap interval [%d, %d)", iv.Min, iv.Max)
		}
		for v := iv.Min; v < iv.Max; v++ {
			c.r[v] = iv.Color.R
			c.g[v] = iv.Color.G
			c.b[v] = iv.Color.B
			c.a[v] = iv.Color.A
		}
	}
	return c, nil
}

// ColormapFromPoints builds a gradient colormap from ordered anchor
// points. Colours blend in linear RGB space so mid-gradient values do
// not darken the way naive sRGB averaging does; alpha interpolates
// linearly. The table covers [0, lastPoint.Value]; values before the
// first anchor hold its colour.
func ColormapFromPoints(points []Point) (*Colormap, error) {
	if len(points) < 2 {
		return nil, errors.New("tiler: colormap needs at least two points")
	}
	for i, p := range points {
		if p.Value < 0 {
			return nil, errors.Errorf("tiler: negative colormap point value %d", p.Value)
		}
		if i > 0 && p.Value <= points[i-1].Value {
			return nil, errors.Errorf("tiler: colormap points must be strictly increasing, got %d after %d",
				p.Value, points[i-1].Value)
		}
	}

	size := points[len(points)-1].Value + 1
	c := newColormap(size)

	seg := 0
	for v := range size {
		for seg < len(points)-2 && v >= points[seg+1].Value {
			seg++
		}
		lo, hi := points[seg], points[seg+1]
		switch {
		case v <= lo.Value:
			c.set(v, lo.Color)
		case v >= hi.Value:
			c.set(v, hi.Color)
		default:
			t := float64(v-lo.Value) / float64(hi.Value-lo.Value)
			blended := toColorful(lo.Color).BlendLinearRgb(toColorful(hi.Color), t).Clamped()
			r, g, b := blended.RGB255()
			c.set(v, RGBA{
				R: r,
				G: g,
				B: b,
				A: uint8(float64(lo.Color.A) + t*(float64(hi.Color.A)-float64(lo.Color.A)) + 0.5),
			})
		}
	}
	return c, nil
}

func newColormap(size int) *Colormap {
	return &Colormap{
		r: make([]uint8, size),
		g: make([]uint8, size),
		b: make([]uint8, size),
		a: make([]uint8, size),
	}
}

func (c *Colormap) set(v int, col RGBA) {
	c.r[v] = col.R
	c.g[v] = col.G
	c.b[v] = col.B
	c.a[v] = col.A
}

func toColorful(c RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Size returns the number of table entries.
func (c *Colormap) Size() int {
	return len(c.r)
}

// Lookup returns the colour for a pixel value, clamping into the table.
func (c *Colormap) Lookup(v int) RGBA {
	if v < 0 {
		v = 0
	}
	if v >= len(c.r) {
		v = len(c.r) - 1
	}
	return RGBA{R: c.r[v], G: c.g[v], B: c.b[v], A: c.a[v]}
}
