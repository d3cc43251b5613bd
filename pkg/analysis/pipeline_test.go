package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/springopt-go/pkg/core"
	"github.com/XiaoConstantine/springopt-go/pkg/errors"
	"github.com/XiaoConstantine/springopt-go/pkg/materials"
)

func musicWire(t *testing.T) core.MaterialProperties {
	t.Helper()
	props, err := materials.NewCatalog().Lookup(core.MaterialMusicWire)
	require.NoError(t, err)
	return props
}

func referenceDesign() core.Design {
	return core.Design{
		WireDiameter: 3.0,
		MeanDiameter: 24.0,
		ActiveCoils:  8,
		FreeLength:   50.0,
		Material:     0,
	}
}

func compressionConditions() core.WorkingConditions {
	return core.WorkingConditions{
		SpringType:    core.SpringCompression,
		MinDeflection: 3.0,
		MaxDeflection: 15.0,
	}
}

func TestAnalyzeCompressionReference(t *testing.T) {
	pipeline := NewPipeline()

	metrics, err := pipeline.Analyze(context.Background(), referenceDesign(), musicWire(t), compressionConditions())
	require.NoError(t, err)

	// k = G*d^4/(8*D^3*Na) = 79300*81/(8*13824*8)
	assert.InDelta(t, 7.26, metrics.SpringRate, 0.01)

	// tau = 8*F*D*Kw/(pi*d^3) with C=8, Kw ~ 1.184, F = k*15
	assert.InDelta(t, 291.9, metrics.MaxStress, 1.0)
	assert.InDelta(t, 860.0/metrics.MaxStress, metrics.SafetyFactor, 1e-9)

	// Working stress range stays below the endurance limit after Goodman
	// correction, so life saturates.
	assert.Equal(t, 1e9, metrics.FatigueLifeCycles)

	// Stocky spring (L0/D ~ 2.08): no buckling risk, capped safety factor.
	require.NotNil(t, metrics.BucklingSafetyFactor)
	assert.Equal(t, 10.0, *metrics.BucklingSafetyFactor)

	assert.InDelta(t, 0.0418, metrics.Mass, 0.001)
	assert.InDelta(t, metrics.Mass*1.0, metrics.Cost, 1e-9)
}

func TestAnalyzeBucklingOnlyForCompression(t *testing.T) {
	pipeline := NewPipeline()

	for _, st := range []core.SpringType{core.SpringExtension, core.SpringTorsion, core.SpringConical} {
		cond := compressionConditions()
		cond.SpringType = st
		if st == core.SpringTorsion {
			cond.MinDeflection = 0.1
			cond.MaxDeflection = 0.5 // radians
		}

		metrics, err := pipeline.Analyze(context.Background(), referenceDesign(), musicWire(t), cond)
		require.NoError(t, err, st)
		assert.Nil(t, metrics.BucklingSafetyFactor, st)
	}
}

func TestAnalyzeSlenderSpringBuckles(t *testing.T) {
	pipeline := NewPipeline()

	slender := core.Design{
		WireDiameter: 2.0,
		MeanDiameter: 12.0,
		ActiveCoils:  18,
		FreeLength:   150.0,
	}
	cond := core.WorkingConditions{
		SpringType:    core.SpringCompression,
		MaxDeflection: 60.0,
	}

	metrics, err := pipeline.Analyze(context.Background(), slender, musicWire(t), cond)
	require.NoError(t, err)
	require.NotNil(t, metrics.BucklingSafetyFactor)
	assert.Less(t, *metrics.BucklingSafetyFactor, 1.0, "L0/D=12.5 at 40%% deflection should be unstable")
}

func TestAnalyzeTypedFailures(t *testing.T) {
	pipeline := NewPipeline()
	cond := compressionConditions()

	tests := []struct {
		name     string
		design   core.Design
		material core.MaterialProperties
		code     errors.ErrorCode
	}{
		{
			name: "solid height exceeds free length",
			design: core.Design{
				WireDiameter: 5.0, MeanDiameter: 30.0, ActiveCoils: 15, FreeLength: 40.0,
			},
			material: musicWire(t),
			code:     errors.InvalidGeometry,
		},
		{
			name: "zero wire diameter",
			design: core.Design{
				WireDiameter: 0, MeanDiameter: 24.0, ActiveCoils: 8, FreeLength: 50.0,
			},
			material: musicWire(t),
			code:     errors.InvalidGeometry,
		},
		{
			name:     "incomplete material",
			design:   referenceDesign(),
			material: core.MaterialProperties{},
			code:     errors.UnknownMaterial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pipeline.Analyze(context.Background(), tt.design, tt.material, cond)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestAnalyzeCanceledContext(t *testing.T) {
	pipeline := NewPipeline()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Analyze(ctx, referenceDesign(), musicWire(t), compressionConditions())
	require.Error(t, err)
	assert.Equal(t, errors.Canceled, errors.CodeOf(err))
}

func TestFatigueLifeMonotonic(t *testing.T) {
	props := musicWire(t)

	gentle := fatigueLife(props, 50, 300)
	harsh := fatigueLife(props, 50, 700)
	brutal := fatigueLife(props, 50, 1100)

	assert.GreaterOrEqual(t, gentle, harsh)
	assert.GreaterOrEqual(t, harsh, brutal)
	assert.Greater(t, harsh, 1.0)
	assert.Less(t, harsh, 1e9)
}

func TestFatigueLifeEdges(t *testing.T) {
	props := musicWire(t)

	assert.Equal(t, 1e9, fatigueLife(props, 100, 100), "no stress range means no fatigue")
	assert.Equal(t, 1.0, fatigueLife(props, 1200, 1400), "mean beyond ultimate fails immediately")
}

func TestWahlFactor(t *testing.T) {
	// Handbook value at C=8.
	assert.InDelta(t, 1.184, wahlFactor(8), 0.001)
	// Correction grows as the coil tightens.
	assert.Greater(t, wahlFactor(4), wahlFactor(8))
}

func TestSpringRateScalesWithWireDiameter(t *testing.T) {
	props := musicWire(t)
	g := core.SpringGeometry{
		Type: core.SpringCompression, WireDiameter: 3, MeanDiameter: 24, ActiveCoils: 8, FreeLength: 50,
	}
	thick := g
	thick.WireDiameter = 6

	// d^4 scaling
	ratio := springRate(thick, props) / springRate(g, props)
	assert.InDelta(t, 16.0, ratio, 1e-9)
}

func TestTorsionStressUsesInnerFiberCorrection(t *testing.T) {
	props := musicWire(t)
	cond := core.WorkingConditions{
		SpringType:    core.SpringTorsion,
		MinDeflection: 0,
		MaxDeflection: math.Pi / 4,
	}

	metrics, err := NewPipeline().Analyze(context.Background(), referenceDesign(), props, cond)
	require.NoError(t, err)
	assert.Greater(t, metrics.MaxStress, 0.0)
	assert.Greater(t, metrics.SpringRate, 0.0)
}
