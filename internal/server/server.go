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

// Package server exposes registered datasets as an XYZ tile endpoint
// plus whole-extent previews.
package server

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/cibolabs/go-tiler/grid/workerpool"
	"github.com/cibolabs/go-tiler/tiler"
)

// Layer is one published dataset with its render options.
type Layer struct {
	Name    string
	Dataset tiler.Dataset
	Options tiler.TileOptions
}

// Config carries the server settings.
type Config struct {
	Addr     string
	TileSize int
}

// TileServer serves registered layers as web mercator tiles.
type TileServer struct {
	cfg    Config
	log    *slog.Logger
	pool   *workerpool.Pool
	mu     sync.RWMutex
	layers map[string]Layer
}

// New creates a server. A nil logger falls back to slog.Default();
// pool may be nil to run the kernels serially.
func New(cfg Config, log *slog.Logger, pool *workerpool.Pool) *TileServer {
	if log == nil {
		log = slog.Default()
	}
	return &TileServer{
		cfg:    cfg,
		log:    log,
		pool:   pool,
		layers: map[string]Layer{},
	}
}

// AddLayer publishes a layer, replacing any previous layer of the same
// name.
func (s *TileServer) AddLayer(l Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers[l.Name] = l
}

func (s *TileServer) layer(name string) (Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layers[name]
	return l, ok
}

// Handler returns the route table.
func (s *TileServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tiles/{layer}/{z}/{x}/{y}", s.handleTile)
	mux.HandleFunc("GET /preview/{layer}", s.handlePreview)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.withRequestLog(mux)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *TileServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("tile server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *TileServer) handleTile(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layer(r.PathValue("layer"))
	if !ok {
		http.Error(w, "unknown layer", http.StatusNotFound)
		return
	}

	z, errZ := strconv.Atoi(r.PathValue("z"))
	x, errX := strconv.Atoi(r.PathValue("x"))
	y, errY := strconv.Atoi(strings.TrimSuffix(r.PathValue("y"), ".png"))
	if errZ != nil || errX != nil || errY != nil || z < 0 || z > 30 {
		http.Error(w, "bad tile coordinates", http.StatusBadRequest)
		return
	}

	opts := l.Options
	if opts.TileSize == 0 {
		opts.TileSize = s.cfg.TileSize
	}
	opts.Pool = s.pool

	data, err := tiler.GetTile(l.Dataset, z, x, y, opts)
	if err != nil {
		s.log.Error("tile render failed",
			"layer", l.Name, "z", z, "x", x, "y", y, "err", err)
		http.Error(w, "tile render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// handlePreview renders the layer's whole extent and scales it to the
// requested width (default 512, capped at 2048), preserving aspect.
func (s *TileServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layer(r.PathValue("layer"))
	if !ok {
		http.Error(w, "unknown layer", http.StatusNotFound)
		return
	}

	outW := 512
	if q := r.URL.Query().Get("width"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > 2048 {
			http.Error(w, "bad width", http.StatusBadRequest)
			return
		}
		outW = v
	}

	meta, err := tiler.NewMetadata(l.Dataset)
	if err != nil {
		http.Error(w, "preview failed", http.StatusInternalServerError)
		return
	}

	// render near source resolution, then scale down for display
	srcW, srcH := l.Dataset.Size()
	renderW := min(srcW, 2048)
	renderH := max(renderW*srcH/srcW, 1)

	opts := l.Options
	opts.Pool = s.pool
	img, err := tiler.RenderExtent(l.Dataset, meta,
		meta.TLX, meta.TLY, meta.BRX, meta.BRY, renderW, renderH, opts)
	if err != nil {
		s.log.Error("preview render failed", "layer", l.Name, "err", err)
		http.Error(w, "preview failed", http.StatusInternalServerError)
		return
	}

	outH := max(outW*renderH/renderW, 1)
	scaled := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		http.Error(w, "preview failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *TileServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	n := len(s.layers)
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","layers":%d}`+"\n", n)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestLog tags every request with an ID and logs it on the way
// out.
func (s *TileServer) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
