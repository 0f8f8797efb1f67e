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

// tileserve publishes raster datasets as a web mercator tile service.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cibolabs/go-tiler/grid/workerpool"
	"github.com/cibolabs/go-tiler/internal/server"
	"github.com/cibolabs/go-tiler/tiler"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tileserve",
		Short:         "Web mercator tile server for raster datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(serveCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		addr     string
		tileSize int
		workers  int
		layers   []string
		demo     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve registered layers over HTTP",
		Long: `Serve registered layers as XYZ tiles.

Layers are given as name=path.png; each PNG spans the whole web
mercator square. With no layers a synthetic demo layer is published.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			pool := workerpool.New(workers)
			defer pool.Close()

			srv := server.New(server.Config{Addr: addr, TileSize: tileSize}, log, pool)

			for _, spec := range layers {
				name, path, ok := strings.Cut(spec, "=")
				if !ok {
					return fmt.Errorf("bad layer spec %q, want name=path.png", spec)
				}
				layer, err := loadPNGLayer(name, path)
				if err != nil {
					return err
				}
				srv.AddLayer(layer)
				log.Info("layer loaded", "name", name, "path", path)
			}
			if len(layers) == 0 && demo {
				srv.AddLayer(demoLayer())
				log.Info("demo layer published", "name", "demo")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envStr("TILESERVE_ADDR", ":8080"), "listen address")
	cmd.Flags().IntVar(&tileSize, "tile-size", envInt("TILESERVE_TILE_SIZE", tiler.DefaultTileSize), "tile edge length in pixels")
	cmd.Flags().IntVar(&workers, "workers", 0, "resampling workers (0 = GOMAXPROCS)")
	cmd.Flags().StringArrayVar(&layers, "layer", nil, "layer to publish as name=path.png (repeatable)")
	cmd.Flags().BoolVar(&demo, "demo", true, "publish a synthetic demo layer when no layers are given")
	return cmd
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
