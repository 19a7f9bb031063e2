package envfield

import "math"

// FieldFunc is a scalar field over the coordinate domain.
type FieldFunc func(x, y float64) float64

// gradientEstimator locates the direction of steepest descent of a scalar
// field at a point by iterative angular bisection. The underlying fields are
// composed noise functions with no analytic derivative, so the search is
// sampling-based: each iteration probes sampleNum equally spaced angles at
// distance d, keeps the minimum, and narrows the angular range to ± half a
// step around it. Cost is sampleNum*iterations field evaluations per call.
type gradientEstimator struct {
	sampleNum  int
	iterations int
}

// estimate returns the descent angle and the signed slope
// (f(along that angle) - f(x, y)) / d. sampleNum must be >= 2; Parameters
// validation guarantees this before an estimator is ever built.
func (g gradientEstimator) estimate(f FieldFunc, x, y, d float64) (angle, slope float64) {
	lo, hi := 0.0, 2.0*math.Pi

	var finalAngle, finalValue float64
	for it := 0; it < g.iterations; it++ {
		minValue := math.MaxFloat64
		minAngle := 0.0
		step := (hi - lo) / float64(g.sampleNum-1)
		for i := 0; i < g.sampleNum; i++ {
			a := lo + step*float64(i)
			v := f(x+math.Cos(a)*d, y+math.Sin(a)*d)
			if v < minValue {
				minValue = v
				minAngle = a
			}
		}
		lo, hi = minAngle-step*0.5, minAngle+step*0.5
		finalAngle = minAngle
		finalValue = minValue
	}

	return finalAngle, (finalValue - f(x, y)) / d
}
