// Command envmap samples the environment-field generator over a coordinate
// window and renders the result: one PNG per requested layer, an optional
// SQLite snapshot of the sampled grid, and an optional HTTP API for
// interactive consumers.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/envfield/internal/api"
	"github.com/talgya/envfield/internal/grid"
	"github.com/talgya/envfield/internal/store"
	"github.com/talgya/envfield/pkg/envfield"
)

func main() {
	seed := flag.Int64("seed", 0, "base seed for the noise layers (0 = library defaults)")
	window := flag.String("window", "-2,-1,2,1", "sample window as minX,minY,maxX,maxY")
	width := flag.Int("width", 800, "output width in cells")
	height := flag.Int("height", 400, "output height in cells")
	workers := flag.Int("workers", 4, "sampling worker goroutines")
	layers := flag.String("layers", "elevation,temperature", "comma-separated layers: "+strings.Join(layerNames(), ","))
	out := flag.String("out", ".", "output directory for PNG layers")
	dbPath := flag.String("db", "", "SQLite path to persist the sampled grid (empty = no persistence)")
	serve := flag.Int("serve", 0, "HTTP API port (0 = don't serve)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	w, err := parseWindow(*window)
	if err != nil {
		slog.Error("bad window", "error", err)
		os.Exit(1)
	}

	provider, err := envfield.NewProvider(envfield.DefaultParameters(), seedsFor(*seed))
	if err != nil {
		slog.Error("building provider", "error", err)
		os.Exit(1)
	}
	slog.Info("provider ready", "seed", *seed, "layers", envfield.NoiseLayerCount)

	slog.Info("sampling grid",
		"window", *window,
		"cells", humanize.Comma(int64(*width)*int64(*height)),
		"workers", *workers,
	)
	g, err := grid.Sample(provider, w, *width, *height, *workers)
	if err != nil {
		slog.Error("sampling failed", "error", err)
		os.Exit(1)
	}
	slog.Info("grid sampled",
		"valid_cells", humanize.Comma(int64(g.ValidCount())),
		"total_cells", humanize.Comma(int64(len(g.Cells))),
	)

	for _, name := range strings.Split(*layers, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		path := filepath.Join(*out, fmt.Sprintf("envmap_%s.png", name))
		size, err := writeLayerPNG(g, name, path)
		if err != nil {
			slog.Error("rendering layer", "layer", name, "error", err)
			os.Exit(1)
		}
		slog.Info("layer written", "layer", name, "path", path, "size", humanize.Bytes(uint64(size)))
	}

	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			slog.Error("opening grid store", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		id, err := db.SaveGrid(g, *seed)
		if err != nil {
			slog.Error("persisting grid", "error", err)
			os.Exit(1)
		}
		if err := db.SaveMeta("last_seed", strconv.FormatInt(*seed, 10)); err != nil {
			slog.Error("persisting metadata", "error", err)
		}
		slog.Info("grid persisted", "id", id, "path", *dbPath)
	}

	if *serve > 0 {
		server := &api.Server{Provider: provider, Seed: *seed, Port: *serve, Workers: *workers}
		server.Start()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		slog.Info("shutting down")
	}
}

// parseWindow parses "minX,minY,maxX,maxY".
func parseWindow(s string) (grid.Window, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return grid.Window{}, fmt.Errorf("want 4 comma-separated numbers, got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return grid.Window{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		vals[i] = v
	}
	w := grid.Window{MinX: vals[0], MinY: vals[1], MaxX: vals[2], MaxY: vals[3]}
	if w.Width() <= 0 || w.Height() <= 0 {
		return grid.Window{}, fmt.Errorf("window %q has non-positive extent", s)
	}
	return w, nil
}

// seedsFor expands a single base seed into per-layer seeds. Zero keeps the
// library's deterministic defaults.
func seedsFor(base int64) []int64 {
	if base == 0 {
		return nil
	}
	seeds := make([]int64, envfield.NoiseLayerCount)
	for i := range seeds {
		seeds[i] = base + int64(i)
	}
	return seeds
}
