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

// The element-type set is deliberately closed: these constraints list the
// exact types rather than underlying-type approximations (~uint16 would
// also admit Float16, whose bits are not integers).

// Floats is a constraint for the supported floating-point element types.
// Half precision is handled separately; see Float16 and the ...F16
// function variants.
type Floats interface {
	float32 | float64
}

// SignedInts is a constraint for the supported signed integer element types.
type SignedInts interface {
	int8 | int16 | int32 | int64
}

// UnsignedInts is a constraint for the supported unsigned integer element types.
type UnsignedInts interface {
	uint8 | uint16 | uint32 | uint64
}

// Integers is a constraint for all supported integer element types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Samples is a constraint for every element type the kernels accept
// through the generic API. Together with Float16 it forms the full set of
// pixel encodings supported by the library.
type Samples interface {
	Integers | Floats
}

// Elems is the storage constraint for Grid: the Samples set plus half
// precision. Arithmetic on Float16 goes through the ...F16 kernel
// variants rather than the generic ones.
type Elems interface {
	Samples | Float16
}

// DType identifies an element type at run time. It is the dynamic
// counterpart of the Samples constraint plus Float16, used where the
// element type of a band is only known from file metadata.
type DType int

// Supported element types.
const (
	DTypeUnknown DType = iota
	DTypeInt8
	DTypeUint8
	DTypeInt16
	DTypeUint16
	DTypeInt32
	DTypeUint32
	DTypeInt64
	DTypeUint64
	DTypeFloat16
	DTypeFloat32
	DTypeFloat64
)

// Size returns the width of the element type in bytes.
func (dt DType) Size() int {
	switch dt {
	case DTypeInt8, DTypeUint8:
		return 1
	case DTypeInt16, DTypeUint16, DTypeFloat16:
		return 2
	case DTypeInt32, DTypeUint32, DTypeFloat32:
		return 4
	case DTypeInt64, DTypeUint64, DTypeFloat64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether the element type is a floating-point encoding.
func (dt DType) IsFloat() bool {
	switch dt {
	case DTypeFloat16, DTypeFloat32, DTypeFloat64:
		return true
	}
	return false
}

// Valid reports whether dt is one of the supported element types.
func (dt DType) Valid() bool {
	return dt > DTypeUnknown && dt <= DTypeFloat64
}

// String returns the conventional name for the element type.
func (dt DType) String() string {
	switch dt {
	case DTypeInt8:
		return "int8"
	case DTypeUint8:
		return "uint8"
	case DTypeInt16:
		return "int16"
	case DTypeUint16:
		return "uint16"
	case DTypeInt32:
		return "int32"
	case DTypeUint32:
		return "uint32"
	case DTypeInt64:
		return "int64"
	case DTypeUint64:
		return "uint64"
	case DTypeFloat16:
		return "float16"
	case DTypeFloat32:
		return "float32"
	case DTypeFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// DTypeOf returns the DType for an element type instantiation.
func DTypeOf[T Elems]() DType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return DTypeInt8
	case uint8:
		return DTypeUint8
	case int16:
		return DTypeInt16
	case uint16:
		return DTypeUint16
	case int32:
		return DTypeInt32
	case uint32:
		return DTypeUint32
	case int64:
		return DTypeInt64
	case uint64:
		return DTypeUint64
	case Float16:
		return DTypeFloat16
	case float32:
		return DTypeFloat32
	case float64:
		return DTypeFloat64
	default:
		return DTypeUnknown
	}
}
