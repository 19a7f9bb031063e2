package envfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeShelf(t *testing.T) {
	tests := []struct {
		name  string
		n     float64
		power float64
		depth float64
		want  float64
	}{
		// A zero continent sample pins the shelf at its full depth.
		{"zero sample", 0, 0.5, 0.3, -0.3},
		{"unit sample", 1, 0.5, 0.3, 0},
		{"negative unit sample", -1, 0.5, 0.3, -0.6},
		{"zero sample deeper shelf", 0, 2.0, 1.0, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, shapeShelf(tt.n, tt.power, tt.depth), 1e-12)
		})
	}
}

func TestElevationFactorsBounds(t *testing.T) {
	p, err := NewProvider(DefaultParameters(), nil)
	require.NoError(t, err)

	depth := p.Parameters().ShelfDepth

	for x := -2.0; x <= 2.0; x += 0.2 {
		for y := -0.95; y <= 0.95; y += 0.19 {
			f := p.elevation.factors(x, y)

			assert.GreaterOrEqual(t, f.Shelf, -depth, "shelf at (%v,%v)", x, y)
			assert.LessOrEqual(t, f.Shelf, 0.0, "shelf at (%v,%v)", x, y)

			assert.GreaterOrEqual(t, f.Persistence.Normalized, 0.0, "persistence at (%v,%v)", x, y)
			assert.LessOrEqual(t, f.Persistence.Normalized, 1.0, "persistence at (%v,%v)", x, y)

			assert.GreaterOrEqual(t, f.LandBase, 0.0, "land base at (%v,%v)", x, y)
		}
	}
}

func TestElevationDenormalization(t *testing.T) {
	p, err := NewProvider(DefaultParameters(), nil)
	require.NoError(t, err)

	r := p.Parameters().ElevationRange
	f := p.elevation.factors(0.5, 0.25)

	// The absolute elevation must reconstruct exactly from its normalized
	// form and the configured range.
	assert.Equal(t, r.Min+f.Elevation.Normalized*(r.Max-r.Min), f.Elevation.Value)
	pr := p.Parameters().PersistenceRange
	assert.Equal(t, pr.Min+f.Persistence.Normalized*(pr.Max-pr.Min), f.Persistence.Value)
}

func TestElevationDeterministic(t *testing.T) {
	a, err := NewProvider(DefaultParameters(), nil)
	require.NoError(t, err)
	b, err := NewProvider(DefaultParameters(), nil)
	require.NoError(t, err)

	for _, pt := range [][2]float64{{0, 0}, {1.1, -0.4}, {-3.7, 0.9}} {
		assert.Equal(t, a.elevation.factors(pt[0], pt[1]), b.elevation.factors(pt[0], pt[1]))
	}
}
