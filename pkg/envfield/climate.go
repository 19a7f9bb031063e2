package envfield

import "math"

// climateModel derives surface temperature from virtual latitude, warped by
// the ocean current: the latitude is re-read a short distance downstream of
// the current before the latitude-to-temperature mapping is applied, so
// currents carry climate laterally.
type climateModel struct {
	params *Parameters
}

func (m climateModel) virtualLatitude(x, y float64) float64 {
	return m.params.VirtualLatitude(x, y)
}

func (m climateModel) surfaceTemperature(x, y, currentAngle, currentMagnitude float64) float64 {
	p := m.params

	dx := math.Cos(currentAngle) * p.OceanCurrentEffectDistance * currentMagnitude
	dy := math.Sin(currentAngle) * p.OceanCurrentEffectDistance * currentMagnitude

	return p.SurfaceTemperature(p.VirtualLatitude(x+dx, y+dy))
}
