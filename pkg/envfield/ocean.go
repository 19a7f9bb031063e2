package envfield

import "math"

// maxNoiseGradient approximates the steepest slope the simplex kernel can
// produce in one dimension, extended to 2D. Not exact, but close enough to
// keep current magnitudes roughly within [0, 1].
var maxNoiseGradient = func() float64 {
	g1d := 30.0 / 8.0
	return 2.0 * math.Sqrt(g1d*g1d*2.0)
}()

// oceanCurrentModel derives a current vector from the ocean-current noise
// layer, bent by elevation: currents die out over land.
type oceanCurrentModel struct {
	bank   *noiseBank
	params *Parameters
	grad   gradientEstimator
}

// current returns the current angle (radians) and magnitude at (x, y).
// elevationNormalized is the already-computed elevation at the same point;
// anything above sea level scales the magnitude toward zero.
func (m oceanCurrentModel) current(x, y, elevationNormalized float64) (angle, magnitude float64) {
	p := m.params

	field := func(x, y float64) float64 {
		return m.bank.sampleFractal(noiseOceanCurrent, x/p.OceanCurrentScale, y/p.OceanCurrentScale, 1, 0.0)
	}

	gradAngle, diff := m.grad.estimate(field, x, y, p.OceanProbeDistance)

	// Fixed quarter-turn off the descent direction, a stylized deflection.
	angle = gradAngle + math.Pi/4.0
	magnitude = diff * (1.0 - math.Max(elevationNormalized, 0.0)) / maxNoiseGradient * p.OceanCurrentScale
	return angle, magnitude
}
