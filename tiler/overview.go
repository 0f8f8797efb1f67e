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

import "sort"

// OverviewInfo describes one resolution level of a dataset. Level 0 is
// always the full-resolution raster with FullResPixPerPix == 1.
type OverviewInfo struct {
	XSize int
	YSize int
	// FullResPixPerPix is how many full-resolution pixels each pixel
	// of this level covers.
	FullResPixPerPix float64
	// Level indexes Dataset.Read; 0 is full resolution.
	Level int
}

// OverviewSet holds a dataset's resolution levels sorted biggest first.
type OverviewSet struct {
	overviews []OverviewInfo
}

// NewOverviewSet builds a set from the full-resolution size and the
// reduced levels. Levels are re-sorted by area, biggest first, so
// FindBest can scan from the front.
func NewOverviewSet(fullXSize, fullYSize int, reduced []OverviewInfo) *OverviewSet {
	s := &OverviewSet{
		overviews: make([]OverviewInfo, 0, len(reduced)+1),
	}
	s.overviews = append(s.overviews, OverviewInfo{
		XSize:            fullXSize,
		YSize:            fullYSize,
		FullResPixPerPix: 1.0,
		Level:            0,
	})
	s.overviews = append(s.overviews, reduced...)
	sort.SliceStable(s.overviews, func(i, j int) bool {
		return s.overviews[i].XSize*s.overviews[i].YSize > s.overviews[j].XSize*s.overviews[j].YSize
	})
	return s
}

// Levels returns the levels, biggest first.
func (s *OverviewSet) Levels() []OverviewInfo {
	return s.overviews
}

// FindBest returns the smallest level that still has more resolution
// than the requested imgPixPerWinPix (full-resolution pixels per
// display pixel). When even the smallest overview is too coarse the
// last acceptable one wins; full resolution is always acceptable.
func (s *OverviewSet) FindBest(imgPixPerWinPix float64) OverviewInfo {
	selected := s.overviews[0]
	for _, ovi := range s.overviews[1:] {
		if ovi.FullResPixPerPix > imgPixPerWinPix {
			break
		}
		selected = ovi
	}
	return selected
}
