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

import "github.com/cibolabs/go-tiler/grid/workerpool"

// Output rows carry no data dependency on one another, so the kernels
// split cleanly across workers; below this many output rows the handoff
// overhead outweighs the work and the serial kernel runs instead.
const minParallelRows = 64

// ParallelResampleBilinear is ResampleBilinear with output rows spread
// across the pool. Results are identical to the serial kernel. A nil pool
// or a small output falls back to the serial path.
func ParallelResampleBilinear[T Samples](pool *workerpool.Pool, src *Grid[T], width, height int, noData *T, policy NoDataPolicy) (*Grid[T], error) {
	dst, err := resampleTarget(src, width, height)
	if err != nil {
		return nil, err
	}
	if noData != nil && policy != NoDataRenormalize && policy != NoDataPropagate {
		return nil, errInvalidArgumentf("unknown no-data policy %d", policy)
	}

	var rows func(yFrom, yTo int)
	switch {
	case noData == nil:
		rows = func(yFrom, yTo int) { bilinearRows(src, dst, yFrom, yTo) }
	case policy == NoDataPropagate:
		rows = func(yFrom, yTo int) { bilinearPropagateRows(src, dst, *noData, yFrom, yTo) }
	default:
		rows = func(yFrom, yTo int) { bilinearRenormRows(src, dst, *noData, yFrom, yTo) }
	}

	runRows(pool, height, rows)
	return dst, nil
}

// ParallelResampleBilinearF16 is ResampleBilinearF16 with output rows
// spread across the pool.
func ParallelResampleBilinearF16(pool *workerpool.Pool, src *Grid[Float16], width, height int, noData *Float16, policy NoDataPolicy) (*Grid[Float16], error) {
	dst, err := resampleTarget(src, width, height)
	if err != nil {
		return nil, err
	}
	if noData != nil && policy != NoDataRenormalize && policy != NoDataPropagate {
		return nil, errInvalidArgumentf("unknown no-data policy %d", policy)
	}

	var rows func(yFrom, yTo int)
	switch {
	case noData == nil:
		rows = func(yFrom, yTo int) { bilinearRowsF16(src, dst, yFrom, yTo) }
	case policy == NoDataPropagate:
		rows = func(yFrom, yTo int) { bilinearPropagateRowsF16(src, dst, *noData, yFrom, yTo) }
	default:
		rows = func(yFrom, yTo int) { bilinearRenormRowsF16(src, dst, *noData, yFrom, yTo) }
	}

	runRows(pool, height, rows)
	return dst, nil
}

// ParallelResampleNearest is ResampleNearest with output rows spread
// across the pool.
func ParallelResampleNearest[T Elems](pool *workerpool.Pool, src *Grid[T], width, height int) (*Grid[T], error) {
	dst, err := resampleTarget(src, width, height)
	if err != nil {
		return nil, err
	}
	runRows(pool, height, func(yFrom, yTo int) { replicateRows(src, dst, yFrom, yTo) })
	return dst, nil
}

func runRows(pool *workerpool.Pool, height int, rows func(yFrom, yTo int)) {
	if pool == nil || height < minParallelRows {
		rows(0, height)
		return
	}
	pool.ParallelFor(height, rows)
}
