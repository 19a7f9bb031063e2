// Package api serves environment-field queries over HTTP.
// All endpoints are GET and read-only; the provider is immutable, so the
// server needs no locking around queries.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/envfield/internal/grid"
	"github.com/talgya/envfield/pkg/envfield"
)

// Bulk sampling is capped so one request cannot pin a core for minutes.
const maxGridCells = 512 * 512

// Server serves field queries for a single provider.
type Server struct {
	Provider *envfield.Provider
	Seed     int64
	Port     int
	Workers  int // worker goroutines for bulk sampling; 0 = serial
}

// Handler builds the route table. Split from Start for tests.
func (s *Server) Handler() http.Handler {
	gridLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/factors", s.handleFactors)
	mux.HandleFunc("/api/v1/grid", RateLimitMiddleware(gridLimiter, s.handleGrid))

	return corsMiddleware(mux)
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	handler := s.Handler()
	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Set CORS_ORIGINS env var to a comma-separated list of allowed origins.
// Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return v, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return v, nil
}

// handleStatus reports the seed and a few headline parameters.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	params := s.Provider.Parameters()
	writeJSON(w, map[string]any{
		"seed":            s.Seed,
		"shelf_depth":     params.ShelfDepth,
		"elevation_range": []float64{params.ElevationRange.Min, params.ElevationRange.Max},
		"gradient": map[string]int{
			"sample_num": params.GradientSampleNum,
			"iterations": params.GradientIterations,
		},
	})
}

type factorsResponse struct {
	X                  float64 `json:"x"`
	Y                  float64 `json:"y"`
	VirtualLatitude    float64 `json:"virtual_latitude"`
	SurfaceTemperature float64 `json:"temperature_surface"`

	AtmospherePressure float64 `json:"atmosphere_pressure_normalized"`
	WindAngle          float64 `json:"atmosphere_current_angle"`
	WindMagnitude      float64 `json:"atmosphere_current_magnitude"`

	Shelf                 float64 `json:"shelf"`
	PersistenceNormalized float64 `json:"persistence_normalized"`
	LandBase              float64 `json:"land_base"`
	Elevation             float64 `json:"elevation"`
	ElevationNormalized   float64 `json:"elevation_normalized"`

	OceanCurrentAngle     float64 `json:"ocean_current_angle"`
	OceanCurrentMagnitude float64 `json:"ocean_current_magnitude"`
}

func factorsEntry(x, y float64, f envfield.EnvironmentFactors) factorsResponse {
	return factorsResponse{
		X:                  x,
		Y:                  y,
		VirtualLatitude:    f.VirtualLatitude,
		SurfaceTemperature: f.SurfaceTemperature,

		AtmospherePressure: f.AtmospherePressure,
		WindAngle:          f.WindAngle,
		WindMagnitude:      f.WindMagnitude,

		Shelf:                 f.Elevation.Shelf,
		PersistenceNormalized: f.Elevation.Persistence.Normalized,
		LandBase:              f.Elevation.LandBase,
		Elevation:             f.Elevation.Elevation.Value,
		ElevationNormalized:   f.Elevation.Elevation.Normalized,

		OceanCurrentAngle:     f.OceanCurrentAngle,
		OceanCurrentMagnitude: f.OceanCurrentMagnitude,
	}
}

// handleFactors answers a single point query: GET /api/v1/factors?x=&y=.
func (s *Server) handleFactors(w http.ResponseWriter, r *http.Request) {
	x, err := queryFloat(r, "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := queryFloat(r, "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, ok := s.Provider.Factors(x, y)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("coordinate (%g, %g) is outside the domain", x, y))
		return
	}

	writeJSON(w, factorsEntry(x, y, f))
}

// handleGrid samples a window in bulk:
// GET /api/v1/grid?min_x=&min_y=&max_x=&max_y=&width=&height=.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	var window grid.Window
	var err error
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"min_x", &window.MinX},
		{"min_y", &window.MinY},
		{"max_x", &window.MaxX},
		{"max_y", &window.MaxY},
	} {
		if *p.dst, err = queryFloat(r, p.name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	width, err := queryInt(r, "width", 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := queryInt(r, "height", 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if width < 1 || height < 1 || width*height > maxGridCells {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("grid size %dx%d outside limits (max %d cells)", width, height, maxGridCells))
		return
	}

	start := time.Now()
	g, err := grid.Sample(s.Provider, window, width, height, s.Workers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Debug("grid sampled", "cells", len(g.Cells), "duration", time.Since(start))

	cells := make([]factorsResponse, 0, g.ValidCount())
	for _, c := range g.Cells {
		if c.Valid {
			cells = append(cells, factorsEntry(c.X, c.Y, c.Factors))
		}
	}

	writeJSON(w, map[string]any{
		"width":  g.Width,
		"height": g.Height,
		"window": window,
		"cells":  cells,
	})
}
