package envfield

import "math"

// atmosphereModel derives a normalized pressure field and a wind vector.
// Pressure is latitude-banded with a noise blend; wind follows the pressure
// gradient, turned by a latitude-dependent deflection approximating
// rotational (Coriolis-like) bending.
type atmosphereModel struct {
	bank   *noiseBank
	params *Parameters
	grad   gradientEstimator
}

// pressure returns the normalized pressure at (x, y): a period-1 cosine band
// in y blended with a 1-octave noise sample by the configured proportion.
func (m atmosphereModel) pressure(x, y float64) float64 {
	p := m.params

	base := -math.Cos(y*math.Pi*2.0)*0.5 + 0.5
	noise := m.bank.sampleFractal(
		noiseAtmospherePressure,
		x/p.AtmospherePressureScale, y/p.AtmospherePressureScale,
		1, 0.5,
	)
	return base*(1.0-p.AtmospherePressureNoiseProp) + noise*p.AtmospherePressureNoiseProp
}

// wind returns the wind angle (radians) and magnitude at (x, y).
func (m atmosphereModel) wind(x, y float64) (angle, magnitude float64) {
	gradAngle, diff := m.grad.estimate(m.pressure, x, y, m.params.AtmosphereProbeDistance)

	// Deflection is a function of y alone, flipping with the latitude band.
	deflection := -math.Atan(math.Abs(math.Tan((y+0.5)*math.Pi)) * math.Sin(y*math.Pi))

	return gradAngle + deflection, diff / math.Pi
}
