package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/talgya/envfield/internal/colormap"
	"github.com/talgya/envfield/internal/grid"
)

// Cells outside the provider's domain render as this background.
var outOfDomain = color.RGBA{R: 24, G: 24, B: 24, A: 255}

// arrowSpacing is the cell stride between vector strokes.
const arrowSpacing = 16

type scalarLayer struct {
	ramp  colormap.Ramp
	value func(grid.Cell) float64
}

type vectorLayer struct {
	angle     func(grid.Cell) float64
	magnitude func(grid.Cell) float64
}

func scalarLayers() map[string]scalarLayer {
	return map[string]scalarLayer{
		"elevation": {
			ramp:  colormap.Terrain(),
			value: func(c grid.Cell) float64 { return c.Factors.Elevation.Elevation.Normalized },
		},
		// Shelf lives in [-depth, 0]; shift into the grayscale ramp's domain.
		"shelf": {
			ramp:  colormap.Grayscale(),
			value: func(c grid.Cell) float64 { return c.Factors.Elevation.Shelf + 1.0 },
		},
		"persistence": {
			ramp:  colormap.Grayscale(),
			value: func(c grid.Cell) float64 { return c.Factors.Elevation.Persistence.Normalized },
		},
		"temperature": {
			ramp:  colormap.Temperature(),
			value: func(c grid.Cell) float64 { return c.Factors.SurfaceTemperature },
		},
		"pressure": {
			ramp:  colormap.Grayscale(),
			value: func(c grid.Cell) float64 { return c.Factors.AtmospherePressure },
		},
	}
}

func vectorLayers() map[string]vectorLayer {
	return map[string]vectorLayer{
		"ocean_current": {
			angle:     func(c grid.Cell) float64 { return c.Factors.OceanCurrentAngle },
			magnitude: func(c grid.Cell) float64 { return c.Factors.OceanCurrentMagnitude },
		},
		"wind": {
			angle:     func(c grid.Cell) float64 { return c.Factors.WindAngle },
			magnitude: func(c grid.Cell) float64 { return c.Factors.WindMagnitude },
		},
	}
}

func layerNames() []string {
	names := []string{"elevation", "shelf", "persistence", "temperature", "pressure", "ocean_current", "wind"}
	return names
}

// writeLayerPNG renders one named layer of the grid to path and returns the
// encoded size in bytes.
func writeLayerPNG(g *grid.Grid, name, path string) (int64, error) {
	var img *image.RGBA
	if layer, ok := scalarLayers()[name]; ok {
		img = renderScalar(g, layer)
	} else if layer, ok := vectorLayers()[name]; ok {
		img = renderVector(g, layer)
	} else {
		return 0, fmt.Errorf("unknown layer %q", name)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return 0, fmt.Errorf("encode %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func renderScalar(g *grid.Grid, layer scalarLayer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for iy := 0; iy < g.Height; iy++ {
		for ix := 0; ix < g.Width; ix++ {
			cell := g.At(ix, iy)
			if !cell.Valid {
				img.SetRGBA(ix, iy, outOfDomain)
				continue
			}
			img.SetRGBA(ix, iy, layer.ramp.RGBA(layer.value(cell)))
		}
	}
	return img
}

// renderVector draws the scalar magnitude as a faint grayscale underlay with
// red direction strokes every arrowSpacing cells, stroke length scaled by
// magnitude.
func renderVector(g *grid.Grid, layer vectorLayer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	gray := colormap.Grayscale()

	for iy := 0; iy < g.Height; iy++ {
		for ix := 0; ix < g.Width; ix++ {
			cell := g.At(ix, iy)
			if !cell.Valid {
				img.SetRGBA(ix, iy, outOfDomain)
				continue
			}
			c := gray.RGBA(math.Abs(layer.magnitude(cell)))
			// Dim the underlay so strokes stay readable.
			c.R /= 3
			c.G /= 3
			c.B /= 3
			img.SetRGBA(ix, iy, c)
		}
	}

	stroke := color.RGBA{R: 230, G: 60, B: 40, A: 255}
	for iy := arrowSpacing / 2; iy < g.Height; iy += arrowSpacing {
		for ix := arrowSpacing / 2; ix < g.Width; ix += arrowSpacing {
			cell := g.At(ix, iy)
			if !cell.Valid {
				continue
			}
			length := math.Abs(layer.magnitude(cell)) * float64(arrowSpacing)
			if length < 1 {
				continue
			}
			drawStroke(img, ix, iy, layer.angle(cell), length, stroke)
		}
	}
	return img
}

// drawStroke draws a line segment from (ix, iy) along angle. Screen y grows
// downward, so the y component is negated to keep angles in field space.
func drawStroke(img *image.RGBA, ix, iy int, angle, length float64, c color.RGBA) {
	steps := int(length*2) + 1
	for i := 0; i <= steps; i++ {
		t := length * float64(i) / float64(steps)
		x := ix + int(math.Round(math.Cos(angle)*t))
		y := iy - int(math.Round(math.Sin(angle)*t))
		if x < 0 || y < 0 || x >= img.Rect.Dx() || y >= img.Rect.Dy() {
			continue
		}
		img.SetRGBA(x, y, c)
	}
}
