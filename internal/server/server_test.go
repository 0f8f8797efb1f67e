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

package server

import (
	"bytes"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cibolabs/go-tiler/grid"
	"github.com/cibolabs/go-tiler/tiler"
)

func testServer(t *testing.T) *TileServer {
	t.Helper()

	g, err := grid.New[uint8](256, 256)
	require.NoError(t, err)
	for y := range 256 {
		for x := range 256 {
			g.Set(x, y, uint8(x%256))
		}
	}
	tlx, tly, brx, _ := tiler.TileExtent(2, 1, 1)
	gt := tiler.NorthUpTransform(tlx, tly, (brx-tlx)/256)
	ds, err := tiler.NewMemDataset(gt, grid.BandOf(g))
	require.NoError(t, err)

	s := New(Config{Addr: ":0", TileSize: 256},
		slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	s.AddLayer(Layer{Name: "demo", Dataset: ds})
	return s
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleTile(t *testing.T) {
	h := testServer(t).Handler()

	rec := get(t, h, "/tiles/demo/2/1/1.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestHandleTile_NoSuffix(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/tiles/demo/2/1/1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleTile_UnknownLayer(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/tiles/nope/2/1/1.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTile_BadCoordinates(t *testing.T) {
	h := testServer(t).Handler()
	for _, url := range []string{
		"/tiles/demo/a/1/1.png",
		"/tiles/demo/2/b/1.png",
		"/tiles/demo/2/1/c.png",
		"/tiles/demo/-1/0/0.png",
	} {
		rec := get(t, h, url)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

func TestHandleTile_OutOfCoverageStillServes(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/tiles/demo/2/0/0.png")
	assert.Equal(t, http.StatusOK, rec.Code, "empty tiles are valid PNGs")
}

func TestHandlePreview(t *testing.T) {
	h := testServer(t).Handler()

	rec := get(t, h, "/preview/demo?width=128")
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())

	rec = get(t, h, "/preview/demo?width=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = get(t, h, "/preview/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	h := testServer(t).Handler()
	rec := get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"layers":1`)
}

func TestAddLayer_Replaces(t *testing.T) {
	s := testServer(t)
	l, ok := s.layer("demo")
	require.True(t, ok)

	l.Options.TileSize = 64
	s.AddLayer(l)
	got, ok := s.layer("demo")
	require.True(t, ok)
	assert.Equal(t, 64, got.Options.TileSize)
}
