// Package colormap maps scalar field values to colors through piecewise
// linear ramps between anchored stops.
package colormap

import (
	"fmt"
	"image/color"
)

// RGB is a color with channels in [0, 1].
type RGB [3]float64

// Ramp interpolates linearly between colors anchored at ascending thresholds.
// Values below the first threshold clamp to the first color, values above the
// last clamp to the last.
type Ramp struct {
	colors     []RGB
	thresholds []float64
}

// New builds a ramp. colors and thresholds must have equal, non-zero length
// and thresholds must be strictly ascending.
func New(colors []RGB, thresholds []float64) (Ramp, error) {
	if len(colors) == 0 || len(colors) != len(thresholds) {
		return Ramp{}, fmt.Errorf("need equal non-empty colors and thresholds, got %d and %d",
			len(colors), len(thresholds))
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return Ramp{}, fmt.Errorf("thresholds must ascend, got %g after %g",
				thresholds[i], thresholds[i-1])
		}
	}
	return Ramp{colors: colors, thresholds: thresholds}, nil
}

// At returns the interpolated color for v.
func (r Ramp) At(v float64) RGB {
	if v <= r.thresholds[0] {
		return r.colors[0]
	}
	last := len(r.thresholds) - 1
	if v >= r.thresholds[last] {
		return r.colors[last]
	}

	// Find the surrounding stop pair.
	hi := 1
	for r.thresholds[hi] < v {
		hi++
	}
	lo := hi - 1

	t := (v - r.thresholds[lo]) / (r.thresholds[hi] - r.thresholds[lo])
	var out RGB
	for c := 0; c < 3; c++ {
		out[c] = r.colors[lo][c] + t*(r.colors[hi][c]-r.colors[lo][c])
	}
	return out
}

// RGBA converts the interpolated color for v to 8-bit RGBA.
func (r Ramp) RGBA(v float64) color.RGBA {
	c := r.At(v)
	return color.RGBA{
		R: uint8(clamp01(c[0]) * 255),
		G: uint8(clamp01(c[1]) * 255),
		B: uint8(clamp01(c[2]) * 255),
		A: 255,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Temperature is the stock ramp for surface temperature in degrees:
// blue through green to red across [-30, 30].
func Temperature() Ramp {
	r, _ := New(
		[]RGB{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}},
		[]float64{-30, 0, 30},
	)
	return r
}

// Grayscale is the stock ramp for normalized scalar layers over [0, 1].
func Grayscale() Ramp {
	r, _ := New(
		[]RGB{{0, 0, 0}, {1, 1, 1}},
		[]float64{0, 1},
	)
	return r
}

// Terrain is the stock ramp for normalized elevation: deep blue below sea
// level, green lowlands rising to white peaks.
func Terrain() Ramp {
	r, _ := New(
		[]RGB{{0.05, 0.12, 0.45}, {0.16, 0.35, 0.75}, {0.25, 0.55, 0.25}, {0.55, 0.48, 0.33}, {0.95, 0.95, 0.95}},
		[]float64{-1, -0.02, 0.02, 0.4, 1},
	)
	return r
}
