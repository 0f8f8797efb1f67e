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

// Half-precision variant of the bilinear kernel. Float16 stores raw bits,
// so the generic kernel cannot blend it directly; this version promotes
// each corner through float64 and narrows the result back with
// round-to-nearest-even. No-data comparison happens on the raw bits, so
// even a NaN sentinel matches its own bit pattern, unlike the wider
// float types where NaN never compares equal.

// ResampleBilinearF16 is ResampleBilinear for half-precision grids.
func ResampleBilinearF16(src *Grid[Float16], width, height int, noData *Float16, policy NoDataPolicy) (*Grid[Float16], error) {
	dst, err := resampleTarget(src, width, height)
	if err != nil {
		return nil, err
	}
	if noData != nil && policy != NoDataRenormalize && policy != NoDataPropagate {
		return nil, errInvalidArgumentf("unknown no-data policy %d", policy)
	}
	switch {
	case noData == nil:
		bilinearRowsF16(src, dst, 0, height)
	case policy == NoDataPropagate:
		bilinearPropagateRowsF16(src, dst, *noData, 0, height)
	default:
		bilinearRenormRowsF16(src, dst, *noData, 0, height)
	}
	return dst, nil
}

func bilinearRowsF16(src, dst *Grid[Float16], yFrom, yTo int) {
	rowScale := float64(src.height) / float64(dst.height)
	colScale := float64(src.width) / float64(dst.width)

	for ro := yFrom; ro < yTo; ro++ {
		riL, riU, rowW := corners(ro, rowScale, src.height)
		top := src.Row(riL)
		bot := src.Row(riU)
		out := dst.Row(ro)
		for co := range out {
			ciL, ciU, colW := corners(co, colScale, src.width)
			a := top[ciL].Float64()
			b := top[ciU].Float64()
			c := bot[ciL].Float64()
			d := bot[ciU].Float64()
			out[co] = Float16FromFloat64(a*(1-colW)*(1-rowW) +
				b*colW*(1-rowW) +
				c*rowW*(1-colW) +
				d*colW*rowW)
		}
	}
}

func bilinearRenormRowsF16(src, dst *Grid[Float16], noData Float16, yFrom, yTo int) {
	rowScale := float64(src.height) / float64(dst.height)
	colScale := float64(src.width) / float64(dst.width)

	for ro := yFrom; ro < yTo; ro++ {
		riL, riU, rowW := corners(ro, rowScale, src.height)
		top := src.Row(riL)
		bot := src.Row(riU)
		out := dst.Row(ro)
		for co := range out {
			ciL, ciU, colW := corners(co, colScale, src.width)

			var sum, weight float64
			if v := top[ciL]; v != noData {
				w := (1 - colW) * (1 - rowW)
				sum += v.Float64() * w
				weight += w
			}
			if v := top[ciU]; v != noData {
				w := colW * (1 - rowW)
				sum += v.Float64() * w
				weight += w
			}
			if v := bot[ciL]; v != noData {
				w := rowW * (1 - colW)
				sum += v.Float64() * w
				weight += w
			}
			if v := bot[ciU]; v != noData {
				w := colW * rowW
				sum += v.Float64() * w
				weight += w
			}

			if weight > 0 {
				out[co] = Float16FromFloat64(sum / weight)
			} else {
				out[co] = noData
			}
		}
	}
}

func bilinearPropagateRowsF16(src, dst *Grid[Float16], noData Float16, yFrom, yTo int) {
	rowScale := float64(src.height) / float64(dst.height)
	colScale := float64(src.width) / float64(dst.width)

	for ro := yFrom; ro < yTo; ro++ {
		riL, riU, rowW := corners(ro, rowScale, src.height)
		top := src.Row(riL)
		bot := src.Row(riU)
		out := dst.Row(ro)
		for co := range out {
			ciL, ciU, colW := corners(co, colScale, src.width)
			a := top[ciL]
			b := top[ciU]
			c := bot[ciL]
			d := bot[ciU]
			if a == noData || b == noData || c == noData || d == noData {
				out[co] = noData
				continue
			}
			out[co] = Float16FromFloat64(a.Float64()*(1-colW)*(1-rowW) +
				b.Float64()*colW*(1-rowW) +
				c.Float64()*rowW*(1-colW) +
				d.Float64()*colW*rowW)
		}
	}
}
