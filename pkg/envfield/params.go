package envfield

import (
	"fmt"
	"math"
)

// Parameters configures a Provider. All scale fields are used as divisors and
// must be non-zero; Validate enforces this at construction time so a bad
// configuration fails fast instead of leaking NaN through later queries.
type Parameters struct {
	// Continental shelf shaping.
	ShelfScale float64
	ShelfPower float64
	ShelfDepth float64

	// Acceptable range of the per-point octave decay factor.
	PersistenceRange ValueRange
	PersistenceScale float64

	// Landmass fractal.
	LandScale float64
	LandPower float64

	// Real elevation range (m).
	ElevationRange ValueRange

	OceanCurrentScale float64
	// Max distance the current carries climate laterally (temperature advection).
	OceanCurrentEffectDistance float64

	// Probe distances fed to the gradient search. Calibration knobs, tuned to
	// the frequency of the field each estimator runs on.
	OceanProbeDistance      float64
	AtmosphereProbeDistance float64

	// Angular probes per gradient iteration (>= 2) and iteration count (>= 1),
	// shared by the ocean-current and wind estimators.
	GradientSampleNum  int
	GradientIterations int

	AtmospherePressureScale     float64
	AtmospherePressureNoiseProp float64

	// VirtualLatitude maps a coordinate to a latitude in [-pi/2, pi/2].
	VirtualLatitude func(x, y float64) float64
	// Valid reports whether a coordinate is inside the queryable domain.
	Valid func(x, y float64) bool
	// SurfaceTemperature maps a latitude to a temperature in degrees.
	SurfaceTemperature func(latitude float64) float64
}

// DefaultParameters returns the reference configuration: a world strip where
// |y| < 1 is queryable, elevation spans ±5000 m, and temperature runs from
// equatorial +30° toward polar -60°.
func DefaultParameters() Parameters {
	return Parameters{
		ShelfScale: 1.0,
		ShelfPower: 0.5,
		ShelfDepth: 0.3,

		PersistenceRange: ValueRange{Min: 0.2, Max: 0.8},
		PersistenceScale: 0.3,

		LandScale: 1.0,
		LandPower: 2.0,

		ElevationRange: ValueRange{Min: -5000.0, Max: 5000.0},

		OceanCurrentScale:          0.8,
		OceanCurrentEffectDistance: 0.3,

		OceanProbeDistance:      1e-9,
		AtmosphereProbeDistance: 1e-5,

		GradientSampleNum:  16,
		GradientIterations: 2,

		AtmospherePressureScale:     1.0,
		AtmospherePressureNoiseProp: 0.2,

		VirtualLatitude: func(_, y float64) float64 {
			return math.Sin(y * math.Pi / 4.0)
		},
		Valid: func(_, y float64) bool {
			return math.Abs(y) < 1.0
		},
		SurfaceTemperature: func(latitude float64) float64 {
			return 30.0 * (1.0 - math.Abs(math.Sin(latitude))*3.0)
		},
	}
}

// Validate checks the configuration contract. It is called by NewProvider;
// callers tweaking parameters by hand can also run it directly.
func (p Parameters) Validate() error {
	scales := []struct {
		name  string
		value float64
	}{
		{"shelf scale", p.ShelfScale},
		{"persistence scale", p.PersistenceScale},
		{"land scale", p.LandScale},
		{"ocean current scale", p.OceanCurrentScale},
		{"atmosphere pressure scale", p.AtmospherePressureScale},
	}
	for _, s := range scales {
		if s.value == 0 {
			return fmt.Errorf("%s must be non-zero (used as a divisor)", s.name)
		}
	}

	if p.OceanProbeDistance <= 0 {
		return fmt.Errorf("ocean probe distance must be positive, got %g", p.OceanProbeDistance)
	}
	if p.AtmosphereProbeDistance <= 0 {
		return fmt.Errorf("atmosphere probe distance must be positive, got %g", p.AtmosphereProbeDistance)
	}

	if p.GradientSampleNum < 2 {
		return fmt.Errorf("gradient sample num must be >= 2, got %d", p.GradientSampleNum)
	}
	if p.GradientIterations < 1 {
		return fmt.Errorf("gradient iterations must be >= 1, got %d", p.GradientIterations)
	}

	if p.PersistenceRange.Min > p.PersistenceRange.Max {
		return fmt.Errorf("persistence range inverted: min %g > max %g",
			p.PersistenceRange.Min, p.PersistenceRange.Max)
	}
	if p.ElevationRange.Min > p.ElevationRange.Max {
		return fmt.Errorf("elevation range inverted: min %g > max %g",
			p.ElevationRange.Min, p.ElevationRange.Max)
	}

	if p.VirtualLatitude == nil {
		return fmt.Errorf("virtual latitude function must be set")
	}
	if p.Valid == nil {
		return fmt.Errorf("validity function must be set")
	}
	if p.SurfaceTemperature == nil {
		return fmt.Errorf("surface temperature function must be set")
	}

	return nil
}
