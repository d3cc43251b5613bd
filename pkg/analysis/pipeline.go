// Package analysis implements the reference analysis pipeline behind the
// core.AnalysisOracle contract: spring rate, corrected stress, fatigue life
// and buckling for the supported spring geometries. The optimizer only
// depends on the contract, so this package can be swapped for an FEA-backed
// oracle without touching the GA core.
package analysis

import (
	"context"
	"math"

	"github.com/XiaoConstantine/springopt-go/pkg/core"
	"github.com/XiaoConstantine/springopt-go/pkg/errors"
)

// Pipeline is a deterministic, closed-form analysis oracle.
type Pipeline struct{}

// NewPipeline returns the closed-form analysis oracle.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

var _ core.AnalysisOracle = (*Pipeline)(nil)

// Analyze implements core.AnalysisOracle. Failures are typed errors from the
// OracleFailure family; the method never panics.
func (p *Pipeline) Analyze(ctx context.Context, design core.Design, material core.MaterialProperties, cond core.WorkingConditions) (*core.Metrics, error) {
	if err := errors.CheckContext(ctx, "analysis"); err != nil {
		return nil, err
	}

	geom, err := core.ResolveGeometry(design, cond)
	if err != nil {
		return nil, err
	}

	c := design.SpringIndex()
	if c <= 1 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidGeometry, "degenerate spring index"),
			errors.Fields{"spring_index": c})
	}
	if material.ShearModulus <= 0 || material.AllowableStress <= 0 {
		return nil, errors.New(errors.UnknownMaterial, "material properties incomplete")
	}

	rate := springRate(geom, material)
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, errors.WithFields(
			errors.New(errors.OracleFailure, "spring rate computation degenerate"),
			errors.Fields{"rate": rate})
	}

	maxStress := stressAt(geom, material, rate, cond.MaxDeflection)
	minStress := stressAt(geom, material, rate, cond.MinDeflection)

	safety := math.Inf(1)
	if maxStress > 0 {
		safety = material.AllowableStress / maxStress
	}

	metrics := &core.Metrics{
		SpringRate:        rate,
		MaxStress:         maxStress,
		SafetyFactor:      safety,
		FatigueLifeCycles: fatigueLife(material, minStress, maxStress),
		Mass:              springMass(geom, material),
	}
	metrics.Cost = metrics.Mass * material.CostFactor

	if geom.Type == core.SpringCompression {
		bsf := bucklingSafety(geom, cond.MaxDeflection)
		metrics.BucklingSafetyFactor = &bsf
	}

	return metrics, nil
}

// springRate returns the load rate in N/mm (N·mm/rad for torsion springs).
func springRate(g core.SpringGeometry, m core.MaterialProperties) float64 {
	d := g.WireDiameter
	na := float64(g.ActiveCoils)

	switch g.Type {
	case core.SpringTorsion:
		// Bending of the wire: k = E*d^4 / (64*D*Na)
		return m.ElasticModulus * math.Pow(d, 4) / (64 * g.MeanDiameter * na)
	case core.SpringConical:
		d1 := g.MeanDiameter
		d2 := g.SmallMeanDiameter
		return m.ShearModulus * math.Pow(d, 4) / (2 * na * (d1 + d2) * (d1*d1 + d2*d2))
	default:
		// Compression/extension: k = G*d^4 / (8*D^3*Na)
		return m.ShearModulus * math.Pow(d, 4) / (8 * math.Pow(g.MeanDiameter, 3) * na)
	}
}

// wahlFactor corrects shear stress for wire curvature.
func wahlFactor(c float64) float64 {
	return (4*c-1)/(4*c-4) + 0.615/c
}

// innerFiberFactor corrects bending stress at a torsion spring's inner fiber.
func innerFiberFactor(c float64) float64 {
	return (4*c*c - c - 1) / (4 * c * (c - 1))
}

// stressAt returns the corrected peak stress (MPa) at the given deflection.
func stressAt(g core.SpringGeometry, m core.MaterialProperties, rate, deflection float64) float64 {
	if deflection <= 0 {
		return 0
	}
	d := g.WireDiameter
	load := rate * deflection

	switch g.Type {
	case core.SpringTorsion:
		// deflection is the working angle in radians, load the moment in N*mm.
		c := g.MeanDiameter / d
		return innerFiberFactor(c) * 32 * load / (math.Pi * math.Pow(d, 3))
	case core.SpringConical:
		// Large end sees the highest stress.
		c1 := g.MeanDiameter / d
		return 8 * load * g.MeanDiameter * wahlFactor(c1) / (math.Pi * math.Pow(d, 3))
	default:
		c := g.MeanDiameter / d
		return 8 * load * g.MeanDiameter * wahlFactor(c) / (math.Pi * math.Pow(d, 3))
	}
}

const (
	infiniteLifeCycles = 1e9
	enduranceKneeCycles = 1e6
)

// fatigueLife estimates cycles to failure for the stress range using a
// Goodman mean-stress correction and a log-linear S-N curve anchored at
// 0.9*Su (1e3 cycles) and the endurance limit (1e6 cycles).
func fatigueLife(m core.MaterialProperties, minStress, maxStress float64) float64 {
	amplitude := (maxStress - minStress) / 2
	mean := (maxStress + minStress) / 2
	if amplitude <= 0 {
		return infiniteLifeCycles
	}

	ultimate := 1.5 * m.AllowableStress
	if mean >= ultimate {
		return 1
	}

	// Goodman: equivalent fully-reversed amplitude.
	equivalent := amplitude / (1 - mean/ultimate)
	if equivalent <= m.EnduranceLimit {
		return infiniteLifeCycles
	}

	high := 0.9 * ultimate
	if equivalent >= high {
		return 1e3
	}

	// Linear in log(N) between (1e3, 0.9*Su) and (1e6, Se).
	slope := (math.Log10(high) - math.Log10(m.EnduranceLimit)) / 3.0
	exponent := 3.0 + (math.Log10(high)-math.Log10(equivalent))/slope
	cycles := math.Pow(10, exponent)

	return math.Min(math.Max(cycles, 1), infiniteLifeCycles)
}

// bucklingSafety returns the ratio of critical deflection to working
// deflection for a compression spring with hinged ends.
func bucklingSafety(g core.SpringGeometry, deflection float64) float64 {
	const maxSafety = 10.0
	if deflection <= 0 {
		return maxSafety
	}

	slenderness := g.FreeLength / g.MeanDiameter
	if slenderness <= 2.62 {
		// Stocky spring, no elastic instability.
		return maxSafety
	}

	ratio := 2.62 / slenderness
	criticalDeflection := g.FreeLength * 0.812 * (1 - math.Sqrt(1-ratio*ratio))
	if criticalDeflection <= 0 {
		return maxSafety
	}

	return math.Min(criticalDeflection/deflection, maxSafety)
}

// springMass returns the wire mass in kg.
func springMass(g core.SpringGeometry, m core.MaterialProperties) float64 {
	totalCoils := float64(g.ActiveCoils)
	if g.Type == core.SpringCompression {
		totalCoils += 2 // inactive end coils
	}

	meanDiameter := g.MeanDiameter
	if g.Type == core.SpringConical {
		meanDiameter = (g.MeanDiameter + g.SmallMeanDiameter) / 2
	}

	wireLength := math.Pi * meanDiameter * totalCoils                          // mm
	volume := math.Pi * g.WireDiameter * g.WireDiameter / 4 * wireLength * 1e-9 // m^3
	return m.Density * volume
}
