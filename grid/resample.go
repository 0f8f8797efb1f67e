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

import "math"

// Method selects a resampling kernel.
type Method int

const (
	// MethodNearest replicates the nearest source sample.
	MethodNearest Method = iota
	// MethodBilinear blends the four nearest source samples.
	MethodBilinear
)

// String returns the conventional short name for the method.
func (m Method) String() string {
	switch m {
	case MethodNearest:
		return "near"
	case MethodBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// MethodFromString parses the names accepted in tile request parameters.
func MethodFromString(s string) (Method, error) {
	switch s {
	case "near", "nearest":
		return MethodNearest, nil
	case "bilinear":
		return MethodBilinear, nil
	default:
		return 0, errInvalidArgumentf("unknown resample method %q", s)
	}
}

// Margin returns the number of source pixels the kernel reads beyond a
// window edge. Callers reading a sub-window of a larger raster widen the
// window by this amount so that interpolation near the window edge sees
// its real neighbours; at the physical raster edge the kernel clamps
// instead.
func (m Method) Margin() int {
	if m == MethodBilinear {
		return 1
	}
	return 0
}

// NoDataPolicy controls how a no-data sentinel among the four corner
// samples of a bilinear lookup affects the output. The two policies are
// both used in practice and are not interchangeable; the choice is
// therefore an explicit argument rather than a default.
type NoDataPolicy int

const (
	// NoDataRenormalize skips sentinel corners and renormalizes the blend
	// over the weights of the remaining valid corners. Only when all four
	// corners are the sentinel does the output become the sentinel.
	NoDataRenormalize NoDataPolicy = iota
	// NoDataPropagate writes the sentinel as soon as any corner is the
	// sentinel; interpolation runs only over fully valid neighbourhoods.
	NoDataPropagate
)

// String returns a short name for the policy.
func (p NoDataPolicy) String() string {
	switch p {
	case NoDataRenormalize:
		return "renormalize"
	case NoDataPropagate:
		return "propagate"
	default:
		return "unknown"
	}
}

// ResampleBilinear resamples src to width x height using bilinear
// interpolation with a pixel-center coordinate convention: output pixel
// (co, ro) samples the continuous source position
//
//	((co+0.5)*srcW/dstW - 0.5, (ro+0.5)*srcH/dstH - 0.5)
//
// and blends the four surrounding samples by their fractional distances.
// Neighbour indices are clamped at the physical edge of the grid.
//
// If noData is non-nil, samples equal to *noData (exact comparison, also
// for floating types) are excluded from the blend according to policy.
// With a nil noData every sample participates and the policy is ignored.
//
// The blend is accumulated in float64 and narrowed back to T on store;
// for integer T the narrowing truncates toward zero. The source is never
// mutated and the result is always fully populated.
func ResampleBilinear[T Samples](src *Grid[T], width, height int, noData *T, policy NoDataPolicy) (*Grid[T], error) {
	dst, err := resampleTarget(src, width, height)
	if err != nil {
		return nil, err
	}
	if noData != nil && policy != NoDataRenormalize && policy != NoDataPropagate {
		return nil, errInvalidArgumentf("unknown no-data policy %d", policy)
	}
	// The path is picked here, once per call, not per pixel.
	switch {
	case noData == nil:
		bilinearRows(src, dst, 0, height)
	case policy == NoDataPropagate:
		bilinearPropagateRows(src, dst, *noData, 0, height)
	default:
		bilinearRenormRows(src, dst, *noData, 0, height)
	}
	return dst, nil
}

// resampleTarget validates the kernel contract shared by all resamplers
// and allocates the output grid.
func resampleTarget[T Elems](src *Grid[T], width, height int) (*Grid[T], error) {
	if src == nil || len(src.data) == 0 {
		return nil, errInvalidArgumentf("nil or empty source grid")
	}
	return New[T](width, height)
}

// corners computes the clamped neighbour indices and fractional weight
// for one axis of the pixel-center mapping.
func corners(o int, scale float64, size int) (lo, hi int, w float64) {
	i := (float64(o)+0.5)*scale - 0.5
	lo = Clamp(int(math.Floor(i)), size)
	hi = Clamp(int(math.Ceil(i)), size)
	// Weight relative to the clamped lower neighbour. Outside the physical
	// edge both neighbours collapse to the same sample and the weight
	// cancels out of the blend.
	w = i - float64(lo)
	return lo, hi, w
}

func bilinearRows[T Samples](src, dst *Grid[T], yFrom, yTo int) {
	rowScale := float64(src.height) / float64(dst.height)
	colScale := float64(src.width) / float64(dst.width)

	for ro := yFrom; ro < yTo; ro++ {
		riL, riU, rowW := corners(ro, rowScale, src.height)
		top := src.Row(riL)
		bot := src.Row(riU)
		out := dst.Row(ro)
		for co := range out {
			ciL, ciU, colW := corners(co, colScale, src.width)
			a := float64(top[ciL])
			b := float64(top[ciU])
			c := float64(bot[ciL])
			d := float64(bot[ciU])
			out[co] = T(a*(1-colW)*(1-rowW) +
				b*colW*(1-rowW) +
				c*rowW*(1-colW) +
				d*colW*rowW)
		}
	}
}

func bilinearRenormRows[T Samples](src, dst *Grid[T], noData T, yFrom, yTo int) {
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
				sum += float64(v) * w
				weight += w
			}
			if v := top[ciU]; v != noData {
				w := colW * (1 - rowW)
				sum += float64(v) * w
				weight += w
			}
			if v := bot[ciL]; v != noData {
				w := rowW * (1 - colW)
				sum += float64(v) * w
				weight += w
			}
			if v := bot[ciU]; v != noData {
				w := colW * rowW
				sum += float64(v) * w
				weight += w
			}

			if weight > 0 {
				out[co] = T(sum / weight)
			} else {
				out[co] = noData
			}
		}
	}
}

func bilinearPropagateRows[T Samples](src, dst *Grid[T], noData T, yFrom, yTo int) {
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
			out[co] = T(float64(a)*(1-colW)*(1-rowW) +
				float64(b)*colW*(1-rowW) +
				float64(c)*rowW*(1-colW) +
				float64(d)*colW*rowW)
		}
	}
}
