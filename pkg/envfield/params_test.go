package envfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParametersValid(t *testing.T) {
	require.NoError(t, DefaultParameters().Validate())
}

func TestValidateRejectsMisconfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr string
	}{
		{
			"zero shelf scale",
			func(p *Parameters) { p.ShelfScale = 0 },
			"shelf scale",
		},
		{
			"zero persistence scale",
			func(p *Parameters) { p.PersistenceScale = 0 },
			"persistence scale",
		},
		{
			"zero land scale",
			func(p *Parameters) { p.LandScale = 0 },
			"land scale",
		},
		{
			"zero ocean current scale",
			func(p *Parameters) { p.OceanCurrentScale = 0 },
			"ocean current scale",
		},
		{
			"zero atmosphere pressure scale",
			func(p *Parameters) { p.AtmospherePressureScale = 0 },
			"atmosphere pressure scale",
		},
		{
			"sample num too small",
			func(p *Parameters) { p.GradientSampleNum = 1 },
			"gradient sample num",
		},
		{
			"no iterations",
			func(p *Parameters) { p.GradientIterations = 0 },
			"gradient iterations",
		},
		{
			"negative ocean probe distance",
			func(p *Parameters) { p.OceanProbeDistance = -1e-9 },
			"ocean probe distance",
		},
		{
			"zero atmosphere probe distance",
			func(p *Parameters) { p.AtmosphereProbeDistance = 0 },
			"atmosphere probe distance",
		},
		{
			"inverted persistence range",
			func(p *Parameters) { p.PersistenceRange = ValueRange{Min: 0.8, Max: 0.2} },
			"persistence range inverted",
		},
		{
			"inverted elevation range",
			func(p *Parameters) { p.ElevationRange = ValueRange{Min: 5000, Max: -5000} },
			"elevation range inverted",
		},
		{
			"nil virtual latitude",
			func(p *Parameters) { p.VirtualLatitude = nil },
			"virtual latitude",
		},
		{
			"nil validity predicate",
			func(p *Parameters) { p.Valid = nil },
			"validity function",
		},
		{
			"nil temperature mapping",
			func(p *Parameters) { p.SurfaceTemperature = nil },
			"surface temperature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewProviderValidatesEagerly(t *testing.T) {
	p := DefaultParameters()
	p.GradientSampleNum = 1

	_, err := NewProvider(p, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid parameters")
}

func TestNewProviderSeedLength(t *testing.T) {
	_, err := NewProvider(DefaultParameters(), []int64{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed slice")

	seeds := make([]int64, NoiseLayerCount)
	for i := range seeds {
		seeds[i] = int64(100 + i)
	}
	_, err = NewProvider(DefaultParameters(), seeds)
	require.NoError(t, err)
}
