package envfield

import "math"

// PrimitiveElevationFactors bundles the elevation sub-fields at one point.
// Elevation.Normalized = LandBase + Shelf, reshaped by the land power when
// positive; Elevation.Value is the same quantity denormalized into meters.
type PrimitiveElevationFactors struct {
	// Shelf is the continental-shape component, in [-ShelfDepth, 0].
	Shelf float64
	// Persistence is the local octave decay factor; Normalized in [0, 1],
	// Value inside the configured persistence range.
	Persistence ValueWithNormalized
	// LandBase is the absolute landmass fractal amplitude, >= 0.
	LandBase float64
	Elevation ValueWithNormalized
}

// elevationModel derives shelf, persistence, land base, and final elevation.
// Pure function of (x, y) and configuration.
type elevationModel struct {
	bank   *noiseBank
	params *Parameters
}

func (m elevationModel) factors(x, y float64) PrimitiveElevationFactors {
	p := m.params

	shelf := shapeShelf(
		m.bank.sampleFractal(noiseContinent, x/p.ShelfScale, y/p.ShelfScale, 3, 0.5),
		p.ShelfPower, p.ShelfDepth,
	)

	// Remap the raw [-1, 1] sample to [0, 1] before denormalizing.
	persistence := FromNormalized(
		m.bank.sampleFractal(noisePersistence, x/p.PersistenceScale, y/p.PersistenceScale, 3, 0.5)*0.5+0.5,
		p.PersistenceRange,
	)

	// The local persistence value drives the octave decay here: rough where
	// persistence is high, smooth where it is low.
	landBase := math.Abs(
		m.bank.sampleFractal(noiseLand, x/p.LandScale, y/p.LandScale, 8, persistence.Value),
	)

	n := landBase + shelf
	if n > 0 {
		// Land power sharpens peaks; ocean depths stay unshaped.
		n = math.Pow(n, p.LandPower)
	}

	return PrimitiveElevationFactors{
		Shelf:       shelf,
		Persistence: persistence,
		LandBase:    landBase,
		Elevation:   FromNormalized(n, p.ElevationRange),
	}
}

// shapeShelf applies sign-preserving power shaping to a raw continent sample
// and maps the result into [-depth, 0].
func shapeShelf(n, power, depth float64) float64 {
	sign := 1.0
	if n < 0 {
		sign = -1.0
	}
	return (math.Pow(math.Abs(n), power)*sign - 1.0) * depth
}
