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
)

func TestColormapFromIntervals(t *testing.T) {
	cm, err := ColormapFromIntervals([]Interval{
		{Min: 0, Max: 10, Color: RGBA{R: 255, A: 255}},
		{Min: 10, Max: 20, Color: RGBA{G: 255, A: 255}},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, cm.Size())

	assert.Equal(t, RGBA{R: 255, A: 255}, cm.Lookup(0))
	assert.Equal(t, RGBA{R: 255, A: 255}, cm.Lookup(9))
	assert.Equal(t, RGBA{G: 255, A: 255}, cm.Lookup(10))
	assert.Equal(t, RGBA{G: 255, A: 255}, cm.Lookup(19))
}

func TestColormapFromIntervals_Errors(t *testing.T) {
	_, err := ColormapFromIntervals(nil)
	assert.Error(t, err)
	_, err = ColormapFromIntervals([]Interval{{Min: 5, Max: 5}})
	assert.Error(t, err)
	_, err = ColormapFromIntervals([]Interval{{Min: -1, Max: 5}})
	assert.Error(t, err)
}

func TestColormapFromPoints(t *testing.T) {
	cm, err := ColormapFromPoints([]Point{
		{Value: 0, Color: RGBA{R: 10, G: 10, B: 10, A: 0}},
		{Value: 100, Color: RGBA{R: 10, G: 10, B: 10, A: 200}},
	})
	require.NoError(t, err)
	assert.Equal(t, 101, cm.Size())

	// endpoints exact
	assert.Equal(t, RGBA{R: 10, G: 10, B: 10, A: 0}, cm.Lookup(0))
	assert.Equal(t, RGBA{R: 10, G: 10, B: 10, A: 200}, cm.Lookup(100))

	// same colour at both anchors: every entry keeps it, alpha ramps
	mid := cm.Lookup(50)
	assert.Equal(t, uint8(10), mid.R)
	assert.Equal(t, uint8(10), mid.G)
	assert.Equal(t, uint8(10), mid.B)
	assert.Equal(t, uint8(100), mid.A)
}

func TestColormapFromPoints_GradientMonotonic(t *testing.T) {
	cm, err := ColormapFromPoints([]Point{
		{Value: 0, Color: RGBA{A: 255}},
		{Value: 50, Color: RGBA{R: 255, A: 255}},
	})
	require.NoError(t, err)

	prev := -1
	for v := range 51 {
		r := int(cm.Lookup(v).R)
		assert.GreaterOrEqual(t, r, prev, "value %d", v)
		prev = r
	}
	assert.Equal(t, uint8(255), cm.Lookup(50).R)
}

func TestColormapFromPoints_MultiSegment(t *testing.T) {
	cm, err := ColormapFromPoints([]Point{
		{Value: 0, Color: RGBA{R: 100}},
		{Value: 10, Color: RGBA{R: 200}},
		{Value: 30, Color: RGBA{R: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, uint8(200), cm.Lookup(10).R)
	assert.Equal(t, uint8(0), cm.Lookup(30).R)
}

func TestColormapFromPoints_Errors(t *testing.T) {
	_, err := ColormapFromPoints([]Point{{Value: 0}})
	assert.Error(t, err, "need two points")
	_, err = ColormapFromPoints([]Point{{Value: 5}, {Value: 5}})
	assert.Error(t, err, "not strictly increasing")
	_, err = ColormapFromPoints([]Point{{Value: -1}, {Value: 5}})
	assert.Error(t, err, "negative value")
}

func TestColormap_LookupClamps(t *testing.T) {
	cm, err := ColormapFromIntervals([]Interval{
		{Min: 0, Max: 4, Color: RGBA{B: 9, A: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, cm.Lookup(0), cm.Lookup(-5))
	assert.Equal(t, cm.Lookup(3), cm.Lookup(99))
}
