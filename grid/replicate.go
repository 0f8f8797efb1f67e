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

// ResampleNearest resamples src to width x height by replicating the
// nearest source sample. Source indices are found by truncating
// out*srcDim/dstDim per axis, so every output pixel copies exactly one
// input sample; no arithmetic is performed on the values, which makes the
// method safe for thematic (categorical) bands and for any element type
// including Float16.
func ResampleNearest[T Elems](src *Grid[T], width, height int) (*Grid[T], error) {
	dst, err := resampleTarget(src, width, height)
	if err != nil {
		return nil, err
	}
	replicateRows(src, dst, 0, height)
	return dst, nil
}

func replicateRows[T Elems](src, dst *Grid[T], yFrom, yTo int) {
	cols := nearestIndex(src.width, dst.width)
	for ro := yFrom; ro < yTo; ro++ {
		in := src.Row(nearestLookup(ro, src.height, dst.height))
		out := dst.Row(ro)
		for co, ci := range cols {
			out[co] = in[ci]
		}
	}
}

// nearestIndex builds the per-column source lookup table for one axis.
func nearestIndex(srcSize, dstSize int) []int {
	idx := make([]int, dstSize)
	for i := range idx {
		idx[i] = nearestLookup(i, srcSize, dstSize)
	}
	return idx
}

func nearestLookup(o, srcSize, dstSize int) int {
	return Clamp(int(float64(o)*float64(srcSize)/float64(dstSize)), srcSize)
}
