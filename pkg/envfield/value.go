// Package envfield derives continuous physical fields — elevation, ocean
// current, atmospheric pressure and wind, surface temperature — over a 2D
// coordinate domain. Fields are built from layered simplex noise and a
// derivative-free gradient search, and are sampled point-by-point through a
// Provider: deterministic for fixed seeds, pure, and safe for unlimited
// concurrent queries.
package envfield

// ValueRange is a closed real interval [Min, Max].
type ValueRange struct {
	Min float64
	Max float64
}

// Width returns Max - Min.
func (r ValueRange) Width() float64 {
	return r.Max - r.Min
}

// ValueWithNormalized pairs an absolute value with its normalized form.
// The two are related by an exact affine map over the originating range:
// Value = range.Min + Normalized*(range.Max - range.Min).
type ValueWithNormalized struct {
	Value      float64
	Normalized float64
}

// FromNormalized denormalizes a value into the given range.
func FromNormalized(normalized float64, r ValueRange) ValueWithNormalized {
	return ValueWithNormalized{
		Value:      r.Min + normalized*(r.Max-r.Min),
		Normalized: normalized,
	}
}
