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

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned when a band's element type is outside
// the supported set. It is never retryable and callers must surface it
// unchanged.
var ErrUnsupportedType = errors.New("grid: unsupported element type")

// ErrInvalidArgument is returned for zero-sized grids, non-positive
// target dimensions and other caller-contract violations.
var ErrInvalidArgument = errors.New("grid: invalid argument")

func errUnsupportedType(dt DType) error {
	return fmt.Errorf("%w: %v", ErrUnsupportedType, dt)
}

func errInvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
