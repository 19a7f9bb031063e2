package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/envfield/pkg/envfield"
)

func defaultProvider(t *testing.T) *envfield.Provider {
	t.Helper()
	p, err := envfield.NewProvider(envfield.DefaultParameters(), nil)
	require.NoError(t, err)
	return p
}

func TestSampleDimensions(t *testing.T) {
	p := defaultProvider(t)

	g, err := Sample(p, Window{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}, 8, 6, 2)
	require.NoError(t, err)

	assert.Equal(t, 8, g.Width)
	assert.Equal(t, 6, g.Height)
	assert.Len(t, g.Cells, 48)
}

func TestSampleRejectsBadInput(t *testing.T) {
	p := defaultProvider(t)

	_, err := Sample(p, Window{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}, 0, 4, 1)
	assert.Error(t, err)

	_, err = Sample(p, Window{MinX: 1, MinY: -1, MaxX: -1, MaxY: 1}, 4, 4, 1)
	assert.Error(t, err)
}

func TestSampleValidityMask(t *testing.T) {
	p := defaultProvider(t)

	// Window straddles the default domain boundary |y| < 1: the outer rows
	// land beyond it, the inner rows inside.
	g, err := Sample(p, Window{MinX: -1, MinY: -2, MaxX: 1, MaxY: 2}, 4, 8, 2)
	require.NoError(t, err)

	for iy := 0; iy < g.Height; iy++ {
		for ix := 0; ix < g.Width; ix++ {
			cell := g.At(ix, iy)
			wantValid := cell.Y > -1 && cell.Y < 1
			assert.Equal(t, wantValid, cell.Valid, "cell (%d,%d) at y=%v", ix, iy, cell.Y)
		}
	}

	assert.Equal(t, 4*4, g.ValidCount())
}

func TestSampleParallelMatchesSerial(t *testing.T) {
	p := defaultProvider(t)
	w := Window{MinX: -1.5, MinY: -0.9, MaxX: 1.5, MaxY: 0.9}

	serial, err := Sample(p, w, 16, 12, 1)
	require.NoError(t, err)
	parallel, err := Sample(p, w, 16, 12, 8)
	require.NoError(t, err)

	assert.Equal(t, serial.Cells, parallel.Cells)
}

func TestSampleDeterministic(t *testing.T) {
	w := Window{MinX: -1, MinY: -0.5, MaxX: 1, MaxY: 0.5}

	a, err := Sample(defaultProvider(t), w, 10, 10, 4)
	require.NoError(t, err)
	b, err := Sample(defaultProvider(t), w, 10, 10, 4)
	require.NoError(t, err)

	assert.Equal(t, a.Cells, b.Cells)
}
