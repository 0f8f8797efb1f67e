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
)

func pyramidSet() *OverviewSet {
	return NewOverviewSet(1024, 1024, []OverviewInfo{
		{XSize: 256, YSize: 256, FullResPixPerPix: 4, Level: 2},
		{XSize: 512, YSize: 512, FullResPixPerPix: 2, Level: 1},
	})
}

func TestOverviewSet_SortedBiggestFirst(t *testing.T) {
	levels := pyramidSet().Levels()
	assert.Len(t, levels, 3)
	assert.Equal(t, 1024, levels[0].XSize)
	assert.Equal(t, 0, levels[0].Level)
	assert.Equal(t, 1.0, levels[0].FullResPixPerPix)
	assert.Equal(t, 512, levels[1].XSize)
	assert.Equal(t, 256, levels[2].XSize)
}

func TestOverviewSet_FindBest(t *testing.T) {
	s := pyramidSet()

	tests := []struct {
		imgPixPerWinPix float64
		wantXSize       int
	}{
		{0.25, 1024}, // zoomed in past native: full res
		{1.0, 1024},
		{1.5, 1024}, // half-res overview would drop detail
		{2.0, 512},
		{3.9, 512},
		{4.0, 256},
		{100, 256}, // coarser than everything: smallest overview
	}
	for _, tc := range tests {
		got := s.FindBest(tc.imgPixPerWinPix)
		assert.Equal(t, tc.wantXSize, got.XSize, "imgPixPerWinPix=%v", tc.imgPixPerWinPix)
	}
}

func TestOverviewSet_FullResOnly(t *testing.T) {
	s := NewOverviewSet(100, 80, nil)
	got := s.FindBest(50)
	assert.Equal(t, 0, got.Level)
	assert.Equal(t, 100, got.XSize)
	assert.Equal(t, 80, got.YSize)
}
