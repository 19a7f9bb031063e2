package envfield

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise layer enumeration. Each physical field draws from its own independent
// generator so that reseeding one layer never disturbs another.
const (
	noiseContinent = iota
	noisePersistence
	noiseLand
	noiseOceanCurrent
	noiseAtmospherePressure

	// Layers above noiseAtmospherePressure are reserved; the bank always
	// constructs the full set so seed slices keep a stable meaning.
	noiseLayerCount = 10
)

// NoiseLayerCount is the number of independent noise layers a Provider owns,
// and the required length of an explicit seed slice.
const NoiseLayerCount = noiseLayerCount

// noiseBank owns one seeded simplex generator per layer. Identical seeds
// produce identical samplers over the whole domain.
type noiseBank struct {
	layers []opensimplex.Noise
}

// newNoiseBank builds the bank from explicit per-layer seeds, or from the
// deterministic defaults (layer index as seed) when seeds is nil.
func newNoiseBank(seeds []int64) *noiseBank {
	layers := make([]opensimplex.Noise, noiseLayerCount)
	for i := range layers {
		seed := int64(i)
		if seeds != nil {
			seed = seeds[i]
		}
		layers[i] = opensimplex.New(seed)
	}
	return &noiseBank{layers: layers}
}

// sampleFractal sums octaves of the named layer at doubling frequency and
// geometrically decaying amplitude, normalized by the maximum attainable
// amplitude sum so the result stays near the base generator's native range
// regardless of octave count. With octaves=1 this is exactly one raw sample.
// An out-of-range layer samples as 0.0; that is the documented contract for
// reserved layers, not an error.
func (b *noiseBank) sampleFractal(layer int, x, y float64, octaves int, persistence float64) float64 {
	if layer < 0 || layer >= len(b.layers) {
		return 0.0
	}

	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += b.layers[layer].Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
