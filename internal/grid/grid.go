// Package grid evaluates an environment provider over a rectangular
// coordinate window at a fixed pixel resolution. The provider itself performs
// no caching and is cheap per query, so bulk evaluation lives here, on the
// caller's side, where it can be parallelized freely.
package grid

import (
	"fmt"

	"github.com/talgya/envfield/pkg/envfield"
)

// Window is the coordinate rectangle to sample.
type Window struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (w Window) Width() float64 { return w.MaxX - w.MinX }

// Height returns MaxY - MinY.
func (w Window) Height() float64 { return w.MaxY - w.MinY }

// Cell is one sampled point. Valid mirrors the provider's domain predicate;
// Factors is the zero value when Valid is false.
type Cell struct {
	X, Y    float64
	Valid   bool
	Factors envfield.EnvironmentFactors
}

// Grid holds a sampled window in row-major order, top row first.
type Grid struct {
	Window Window
	Width  int
	Height int
	Cells  []Cell
}

// At returns the cell at pixel (ix, iy).
func (g *Grid) At(ix, iy int) Cell {
	return g.Cells[iy*g.Width+ix]
}

// ValidCount returns how many cells fell inside the provider's domain.
func (g *Grid) ValidCount() int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Valid {
			n++
		}
	}
	return n
}

// Sample evaluates the provider at width x height cells across the window.
// Rows are distributed over workers goroutines; each query is independent and
// touches no shared mutable state, so no synchronization beyond the join is
// needed. workers < 1 falls back to serial sampling.
func Sample(p *envfield.Provider, w Window, width, height, workers int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	if w.Width() <= 0 || w.Height() <= 0 {
		return nil, fmt.Errorf("window must have positive extent, got %+v", w)
	}

	g := &Grid{
		Window: w,
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}

	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}

	rows := make(chan int, height)
	for iy := 0; iy < height; iy++ {
		rows <- iy
	}
	close(rows)

	done := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		go func() {
			for iy := range rows {
				sampleRow(p, g, iy)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}

	return g, nil
}

func sampleRow(p *envfield.Provider, g *Grid, iy int) {
	// Cell centers, so a 1-pixel grid samples the window midpoint.
	y := g.Window.MinY + (float64(iy)+0.5)/float64(g.Height)*g.Window.Height()
	for ix := 0; ix < g.Width; ix++ {
		x := g.Window.MinX + (float64(ix)+0.5)/float64(g.Width)*g.Window.Width()

		cell := Cell{X: x, Y: y}
		if factors, ok := p.Factors(x, y); ok {
			cell.Valid = true
			cell.Factors = factors
		}
		g.Cells[iy*g.Width+ix] = cell
	}
}
