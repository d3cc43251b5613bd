package testutil

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/XiaoConstantine/springopt-go/pkg/core"
	"github.com/XiaoConstantine/springopt-go/pkg/errors"
)

// MockOracle is a testify mock implementation of core.AnalysisOracle for
// expectation-driven tests.
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Analyze(ctx context.Context, design core.Design, material core.MaterialProperties, cond core.WorkingConditions) (*core.Metrics, error) {
	args := m.Called(ctx, design, material, cond)
	if metrics, ok := args.Get(0).(*core.Metrics); ok {
		return metrics, args.Error(1)
	}
	return nil, args.Error(1)
}

// StubOracle is a deterministic scriptable oracle: it derives metrics from
// the design by a smooth formula so GA runs have a real gradient to climb,
// without pulling the analysis package into optimizer tests. FailEvery > 0
// makes every Nth call return a typed oracle failure.
type StubOracle struct {
	calls     atomic.Int64
	FailEvery int64
	// AllowableStress stands in for the material ceiling when scoring
	// safety; defaults to 860 when zero.
	AllowableStress float64
}

func (s *StubOracle) Calls() int64 { return s.calls.Load() }

func (s *StubOracle) Analyze(ctx context.Context, design core.Design, material core.MaterialProperties, cond core.WorkingConditions) (*core.Metrics, error) {
	n := s.calls.Add(1)
	if s.FailEvery > 0 && n%s.FailEvery == 0 {
		return nil, errors.New(errors.OracleFailure, "scripted failure")
	}

	allowable := s.AllowableStress
	if allowable == 0 {
		allowable = 860
	}

	// Smooth surrogate: stiffer with thicker wire, more stressed with
	// larger coils. Keeps the landscape nonconstant yet cheap.
	c := design.SpringIndex()
	rate := design.WireDiameter * design.WireDiameter / (0.01 * float64(design.ActiveCoils+1) * design.MeanDiameter)
	stress := 20 * c * cond.MaxDeflection / (1 + 0.1*float64(design.ActiveCoils))
	if stress <= 0 {
		stress = 1
	}
	safety := allowable / stress

	buckling := 5.0
	metrics := &core.Metrics{
		SpringRate:        rate,
		MaxStress:         stress,
		SafetyFactor:      safety,
		FatigueLifeCycles: 1e4 * safety * safety,
		Mass:              0.001 * design.WireDiameter * design.WireDiameter * design.MeanDiameter * float64(design.ActiveCoils),
	}
	metrics.Cost = metrics.Mass * 1.5
	if cond.SpringType == core.SpringCompression || cond.SpringType == "" {
		metrics.BucklingSafetyFactor = &buckling
	}
	return metrics, nil
}

// StaticCatalog is a single-material catalog for tests.
type StaticCatalog struct {
	Props core.MaterialProperties
}

func (c StaticCatalog) Lookup(id string) (core.MaterialProperties, error) {
	return c.Props, nil
}

// SteelCatalog returns a StaticCatalog with generic spring steel numbers.
func SteelCatalog() StaticCatalog {
	return StaticCatalog{Props: core.MaterialProperties{
		ShearModulus:    79300,
		ElasticModulus:  207000,
		AllowableStress: 860,
		Density:         7850,
		EnduranceLimit:  400,
		CostFactor:      1.0,
	}}
}
