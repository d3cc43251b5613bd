package optimizers

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/XiaoConstantine/springopt-go/pkg/core"
)

// penaltyWeight scales soft-target violations relative to the weighted
// objective sum.
const penaltyWeight = 10.0

// invLogFatigueCap bounds the inverse-log-fatigue objective for lives near a
// single cycle, where 1/log10 blows up.
const invLogFatigueCap = 10.0

// Evaluator turns a design into an evaluated Individual: objective vector,
// scalar fitness and feasibility. It owns the hard spring-index gate and the
// oracle failure boundary; nothing downstream ever sees an oracle error.
type Evaluator struct {
	oracle      core.AnalysisOracle
	catalog     core.MaterialCatalog
	constraints core.DesignConstraints
	targets     core.DesignTargets
	weights     core.ObjectiveWeights
	conditions  core.WorkingConditions
}

// NewEvaluator wires the evaluation context shared by every individual of a
// run.
func NewEvaluator(oracle core.AnalysisOracle, catalog core.MaterialCatalog,
	constraints core.DesignConstraints, targets core.DesignTargets,
	weights core.ObjectiveWeights, conditions core.WorkingConditions) *Evaluator {
	return &Evaluator{
		oracle:      oracle,
		catalog:     catalog,
		constraints: constraints,
		targets:     targets,
		weights:     weights,
		conditions:  conditions,
	}
}

// Evaluate scores the individual in place and marks it evaluated.
func (e *Evaluator) Evaluate(ctx context.Context, ind *Individual) {
	ind.evaluated = true
	ind.Fitness = math.Inf(-1)
	ind.Feasible = false

	// Hard constraint: spring index. No oracle call, no penalty scaling.
	if !e.constraints.SpringIndexRange.Contains(ind.Design.SpringIndex()) {
		return
	}

	materialID, err := e.constraints.MaterialID(ind.Design)
	if err != nil {
		return
	}
	props, err := e.catalog.Lookup(materialID)
	if err != nil {
		return
	}

	metrics, err := e.oracle.Analyze(ctx, ind.Design, props, e.conditions)
	if err != nil {
		// Typed oracle failure: infeasible for this generation only.
		return
	}

	ind.Metrics = metrics
	ind.Objectives = e.objectiveVector(metrics, props)

	penalty, violations := e.penalties(ind.Design, metrics)
	ind.Feasible = len(violations) == 0

	weighted := e.weights.StressRatio*ind.Objectives[ObjStressRatio] +
		e.weights.InverseSafety*ind.Objectives[ObjInverseSafety] +
		e.weights.InverseLogFatigue*ind.Objectives[ObjInverseLogFatigue] +
		e.weights.InverseBuckling*ind.Objectives[ObjInverseBuckling] +
		e.weights.Mass*ind.Objectives[ObjMass] +
		e.weights.Cost*ind.Objectives[ObjCost]

	ind.Fitness = -(weighted + penalty)
}

// objectiveVector maps oracle metrics onto the six lower-is-better axes.
func (e *Evaluator) objectiveVector(m *core.Metrics, props core.MaterialProperties) [NumObjectives]float64 {
	var obj [NumObjectives]float64

	if props.AllowableStress > 0 {
		obj[ObjStressRatio] = m.MaxStress / props.AllowableStress
	}

	if m.SafetyFactor > 0 {
		obj[ObjInverseSafety] = 1 / m.SafetyFactor
	}

	logLife := math.Log10(math.Max(m.FatigueLifeCycles, 1))
	if logLife > 0 {
		obj[ObjInverseLogFatigue] = math.Min(1/logLife, invLogFatigueCap)
	} else {
		obj[ObjInverseLogFatigue] = invLogFatigueCap
	}

	// Not applicable (nil) contributes zero.
	if m.BucklingSafetyFactor != nil && *m.BucklingSafetyFactor > 0 {
		obj[ObjInverseBuckling] = 1 / *m.BucklingSafetyFactor
	}

	obj[ObjMass] = m.Mass
	obj[ObjCost] = m.Cost
	return obj
}

// violation is one soft-target miss, kept for diagnostics.
type violation struct {
	axis   string
	detail string
}

// penalties sums the proportional penalty for every set target whose
// violation exceeds its tolerance, and reports those violations.
func (e *Evaluator) penalties(d core.Design, m *core.Metrics) (float64, []violation) {
	total := 0.0
	var violations []violation

	addRelative := func(axis string, excess float64, detail string) {
		total += penaltyWeight * excess
		violations = append(violations, violation{axis: axis, detail: detail})
	}

	t := e.targets

	if t.Stiffness != nil && *t.Stiffness > 0 {
		relErr := math.Abs(m.SpringRate-*t.Stiffness) / *t.Stiffness
		if relErr > core.StiffnessTolerance {
			addRelative("stiffness", relErr-core.StiffnessTolerance,
				fmt.Sprintf("spring rate %.3g N/mm misses target %.3g N/mm by %.1f%%",
					m.SpringRate, *t.Stiffness, relErr*100))
		}
	}

	if t.TargetForce != nil && t.TargetDeflection != nil && *t.TargetDeflection > 0 {
		impliedRate := *t.TargetForce / *t.TargetDeflection
		relErr := math.Abs(m.SpringRate-impliedRate) / impliedRate
		if relErr > core.StiffnessTolerance {
			addRelative("force_at_deflection", relErr-core.StiffnessTolerance,
				fmt.Sprintf("force at %.3g mm is %.3g N, wanted %.3g N",
					*t.TargetDeflection, m.SpringRate**t.TargetDeflection, *t.TargetForce))
		}
	}

	if t.MaxStress != nil && *t.MaxStress > 0 {
		excess := (m.MaxStress - *t.MaxStress) / *t.MaxStress
		if excess > core.FloorTolerance {
			addRelative("max_stress", excess,
				fmt.Sprintf("stress %.3g MPa exceeds ceiling %.3g MPa", m.MaxStress, *t.MaxStress))
		}
	}

	if t.MinSafetyFactor != nil && *t.MinSafetyFactor > 0 {
		shortfall := (*t.MinSafetyFactor - m.SafetyFactor) / *t.MinSafetyFactor
		if shortfall > core.FloorTolerance {
			addRelative("min_safety_factor", shortfall,
				fmt.Sprintf("safety factor %.3g below floor %.3g", m.SafetyFactor, *t.MinSafetyFactor))
		}
	}

	if t.MinFatigueLife != nil && *t.MinFatigueLife > 1 {
		logFloor := math.Log10(*t.MinFatigueLife)
		logLife := math.Log10(math.Max(m.FatigueLifeCycles, 1))
		shortfall := (logFloor - logLife) / logFloor
		if shortfall > core.FloorTolerance {
			addRelative("min_fatigue_life", shortfall,
				fmt.Sprintf("fatigue life %.3g cycles below floor %.3g", m.FatigueLifeCycles, *t.MinFatigueLife))
		}
	}

	if t.MaxFreeLength != nil && *t.MaxFreeLength > 0 {
		excess := (d.FreeLength - *t.MaxFreeLength) / *t.MaxFreeLength
		if excess > core.FloorTolerance {
			addRelative("max_free_length", excess,
				fmt.Sprintf("free length %.3g mm exceeds limit %.3g mm", d.FreeLength, *t.MaxFreeLength))
		}
	}

	if t.MaxOuterDiameter != nil && *t.MaxOuterDiameter > 0 {
		excess := (d.OuterDiameter() - *t.MaxOuterDiameter) / *t.MaxOuterDiameter
		if excess > core.FloorTolerance {
			addRelative("max_outer_diameter", excess,
				fmt.Sprintf("outer diameter %.3g mm exceeds limit %.3g mm", d.OuterDiameter(), *t.MaxOuterDiameter))
		}
	}

	return total, violations
}

// describeViolations renders the unmet axes of an individual for the result
// diagnostic.
func (e *Evaluator) describeViolations(ind *Individual) string {
	if ind == nil {
		return "no individual was evaluated"
	}
	if ind.Metrics == nil {
		if !e.constraints.SpringIndexRange.Contains(ind.Design.SpringIndex()) {
			return fmt.Sprintf("spring index %.2f outside hard range [%.2f, %.2f]",
				ind.Design.SpringIndex(), e.constraints.SpringIndexRange.Min, e.constraints.SpringIndexRange.Max)
		}
		return "analysis oracle rejected the design"
	}

	_, violations := e.penalties(ind.Design, ind.Metrics)
	if len(violations) == 0 {
		return ""
	}
	details := make([]string, len(violations))
	for i, v := range violations {
		details[i] = v.detail
	}
	return strings.Join(details, "; ")
}
