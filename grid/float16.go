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

// Float16 is an IEEE 754 half-precision (binary16) sample value, stored
// as raw bits. Raster formats use half precision for dense continuous
// data (elevation, reflectance) where range matters more than precision.
//
// Format: sign (1 bit) | exponent (5 bits, bias 15) | mantissa (10 bits).
//
// Float16 is not part of the Samples constraint because its underlying
// type is uint16; kernels operating on half-precision bands use the
// dedicated ...F16 variants which promote through float32.
type Float16 uint16

const (
	float16SignMask = 0x8000
	float16ExpShift = 10
	float16ExpMask  = 0x1F
	float16MantMask = 0x3FF
)

// Float16FromBits reinterprets raw bits as a half-precision value.
func Float16FromBits(bits uint16) Float16 {
	return Float16(bits)
}

// Bits returns the raw bit representation.
func (h Float16) Bits() uint16 {
	return uint16(h)
}

// IsNaN reports whether h is a NaN value.
func (h Float16) IsNaN() bool {
	return (h>>float16ExpShift)&float16ExpMask == float16ExpMask && h&float16MantMask != 0
}

// IsInf reports whether h is positive or negative infinity.
func (h Float16) IsInf() bool {
	return (h>>float16ExpShift)&float16ExpMask == float16ExpMask && h&float16MantMask == 0
}

// Float32 converts h to float32. The conversion is exact: every binary16
// value is representable in binary32.
func (h Float16) Float32() float32 {
	bits := uint32(h)
	sign := bits >> 15
	exp := (bits >> 10) & float16ExpMask
	mant := bits & float16MantMask

	switch exp {
	case 0:
		if mant == 0 {
			// signed zero
			return math.Float32frombits(sign << 31)
		}
		// subnormal: normalize into the binary32 domain
		exp = 1
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= float16MantMask
		exp = uint32(int32(exp) + 127 - 15)
	case float16ExpMask:
		if mant == 0 {
			return math.Float32frombits(sign<<31 | 0x7F800000)
		}
		// quiet the NaN, keep the payload bits that fit
		return math.Float32frombits(sign<<31 | 0x7FC00000 | mant<<13)
	default:
		exp += 127 - 15
	}
	return math.Float32frombits(sign<<31 | exp<<23 | mant<<13)
}

// Float64 converts h to float64.
func (h Float16) Float64() float64 {
	return float64(h.Float32())
}

// Float16FromFloat32 converts f to half precision with round-to-nearest-even.
// Values beyond the binary16 range become infinities; values below the
// smallest subnormal become signed zero.
func Float16FromFloat32(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := uint16(bits >> 16 & float16SignMask)
	exp := int(bits>>23&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	switch {
	case exp <= 0:
		if exp < -10 {
			return Float16(sign)
		}
		// subnormal result: shift in the implicit leading bit
		mant = (mant | 0x800000) >> uint(1-exp)
		if mant&0x1000 != 0 && mant&0x2FFF != 0 {
			mant += 0x2000
		}
		return Float16(sign | uint16(mant>>13))
	case exp == 0xFF-127+15:
		if mant != 0 {
			return Float16(sign | 0x7E00 | uint16(mant>>13))
		}
		return Float16(sign | 0x7C00)
	case exp >= 31:
		return Float16(sign | 0x7C00)
	}

	// round to nearest even; bit 12 is the rounding bit
	if mant&0x1000 != 0 && mant&0x2FFF != 0 {
		mant += 0x2000
		if mant&0x800000 != 0 {
			mant = 0
			exp++
			if exp >= 31 {
				return Float16(sign | 0x7C00)
			}
		}
	}
	return Float16(sign | uint16(exp)<<float16ExpShift | uint16(mant>>13))
}

// Float16FromFloat64 converts f to half precision.
func Float16FromFloat64(f float64) Float16 {
	return Float16FromFloat32(float32(f))
}
