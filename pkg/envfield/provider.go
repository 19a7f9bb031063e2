package envfield

import "fmt"

// EnvironmentFactors is the per-query result bundle. Immutable once returned.
type EnvironmentFactors struct {
	// VirtualLatitude is in radians, within [-pi/2, pi/2].
	VirtualLatitude float64
	// SurfaceTemperature is in degrees; practically within [-90, 60] with the
	// default mapping.
	SurfaceTemperature float64

	// AtmospherePressure is normalized, approximately within [-1, 1].
	AtmospherePressure float64
	WindAngle          float64
	WindMagnitude      float64

	Elevation PrimitiveElevationFactors

	// OceanCurrentAngle is in radians; OceanCurrentMagnitude roughly in [0, 1],
	// forced toward zero over land.
	OceanCurrentAngle     float64
	OceanCurrentMagnitude float64
}

// Provider is the environment-field facade. It exclusively owns its noise
// generators and parameters, mutates nothing after construction, and is safe
// for unlimited concurrent read-only queries.
type Provider struct {
	params Parameters
	bank   *noiseBank

	elevation  elevationModel
	ocean      oceanCurrentModel
	atmosphere atmosphereModel
	climate    climateModel
}

// NewProvider builds a provider from the given parameters. seeds either is
// nil (deterministic defaults: layer index as seed) or supplies one seed per
// noise layer. Configuration is validated eagerly; a provider that constructs
// without error never panics on finite query coordinates.
func NewProvider(params Parameters, seeds []int64) (*Provider, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if seeds != nil && len(seeds) != noiseLayerCount {
		return nil, fmt.Errorf("seed slice must have %d entries, got %d", noiseLayerCount, len(seeds))
	}

	p := &Provider{
		params: params,
		bank:   newNoiseBank(seeds),
	}

	grad := gradientEstimator{
		sampleNum:  params.GradientSampleNum,
		iterations: params.GradientIterations,
	}
	p.elevation = elevationModel{bank: p.bank, params: &p.params}
	p.ocean = oceanCurrentModel{bank: p.bank, params: &p.params, grad: grad}
	p.atmosphere = atmosphereModel{bank: p.bank, params: &p.params, grad: grad}
	p.climate = climateModel{params: &p.params}

	return p, nil
}

// Parameters returns the configuration the provider was built with.
func (p *Provider) Parameters() Parameters {
	return p.params
}

// Factors evaluates every field at (x, y). The second return is false when
// the coordinate is outside the configured domain; that is the only
// recoverable condition the query contract exposes.
func (p *Provider) Factors(x, y float64) (EnvironmentFactors, bool) {
	if !p.params.Valid(x, y) {
		return EnvironmentFactors{}, false
	}

	elevation := p.elevation.factors(x, y)
	currentAngle, currentMagnitude := p.ocean.current(x, y, elevation.Elevation.Normalized)

	latitude := p.climate.virtualLatitude(x, y)
	temperature := p.climate.surfaceTemperature(x, y, currentAngle, currentMagnitude)

	pressure := p.atmosphere.pressure(x, y)
	windAngle, windMagnitude := p.atmosphere.wind(x, y)

	return EnvironmentFactors{
		VirtualLatitude:    latitude,
		SurfaceTemperature: temperature,

		AtmospherePressure: pressure,
		WindAngle:          windAngle,
		WindMagnitude:      windMagnitude,

		Elevation: elevation,

		OceanCurrentAngle:     currentAngle,
		OceanCurrentMagnitude: currentMagnitude,
	}, true
}
