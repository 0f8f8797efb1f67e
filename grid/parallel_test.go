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
	"math"
	"testing"

	"github.com/cibolabs/go-tiler/grid/workerpool"
)

func noisyGrid(width, height int) *Grid[float32] {
	g, _ := New[float32](width, height)
	for i := range g.Data() {
		g.Data()[i] = float32(math.Sin(float64(i) * 0.37 * float64(i%7)))
	}
	return g
}

// Row partitioning must not change results; the parallel kernels are
// exact, not approximate.
func TestParallelResampleBilinear_MatchesSerial(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	src := noisyGrid(200, 150)
	nd := src.At(3, 3)

	cases := []struct {
		name   string
		noData *float32
		policy NoDataPolicy
	}{
		{"fast", nil, NoDataRenormalize},
		{"renormalize", &nd, NoDataRenormalize},
		{"propagate", &nd, NoDataPropagate},
	}
	for _, tc := range cases {
		serial, err := ResampleBilinear(src, 97, 131, tc.noData, tc.policy)
		if err != nil {
			t.Fatalf("%s serial: %v", tc.name, err)
		}
		parallel, err := ParallelResampleBilinear(pool, src, 97, 131, tc.noData, tc.policy)
		if err != nil {
			t.Fatalf("%s parallel: %v", tc.name, err)
		}
		for i, v := range parallel.Data() {
			if v != serial.Data()[i] {
				t.Fatalf("%s data[%d]: parallel %v != serial %v", tc.name, i, v, serial.Data()[i])
			}
		}
	}
}

func TestParallelResampleNearest_MatchesSerial(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()

	src := noisyGrid(80, 120)
	serial, err := ResampleNearest(src, 201, 99)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	parallel, err := ParallelResampleNearest(pool, src, 201, 99)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	checkGrid(t, parallel, serial.Data())
}

func TestParallelResampleBilinearF16_MatchesSerial(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	src, _ := New[Float16](64, 80)
	for i := range src.Data() {
		src.Data()[i] = Float16FromFloat32(float32(i%251) * 0.25)
	}

	serial, err := ResampleBilinearF16(src, 90, 100, nil, NoDataRenormalize)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	parallel, err := ParallelResampleBilinearF16(pool, src, 90, 100, nil, NoDataRenormalize)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	checkGrid(t, parallel, serial.Data())
}

// nil pool means serial execution, small outputs skip the pool entirely;
// both must still produce full results.
func TestParallelResample_Fallbacks(t *testing.T) {
	src := noisyGrid(10, 10)

	out, err := ParallelResampleBilinear(nil, src, 20, 20, nil, NoDataRenormalize)
	if err != nil {
		t.Fatalf("nil pool: %v", err)
	}
	want, _ := ResampleBilinear(src, 20, 20, nil, NoDataRenormalize)
	checkGrid(t, out, want.Data())

	pool := workerpool.New(2)
	defer pool.Close()
	out, err = ParallelResampleBilinear(pool, src, 8, 8, nil, NoDataRenormalize)
	if err != nil {
		t.Fatalf("small output: %v", err)
	}
	want, _ = ResampleBilinear(src, 8, 8, nil, NoDataRenormalize)
	checkGrid(t, out, want.Data())
}

func BenchmarkParallelResampleBilinear(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	src := noisyGrid(2048, 2048)
	b.Run("serial", func(b *testing.B) {
		for b.Loop() {
			_, _ = ResampleBilinear(src, 512, 512, nil, NoDataRenormalize)
		}
	})
	b.Run("parallel", func(b *testing.B) {
		for b.Loop() {
			_, _ = ParallelResampleBilinear(pool, src, 512, 512, nil, NoDataRenormalize)
		}
	})
}
