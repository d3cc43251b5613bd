package core

// DesignTargets declares the performance the caller wants. Every axis is
// optional: a nil pointer means no constraint on that axis.
type DesignTargets struct {
	Stiffness        *float64 `json:"stiffness,omitempty" yaml:"stiffness,omitempty"`                   // N/mm
	MaxStress        *float64 `json:"max_stress,omitempty" yaml:"max_stress,omitempty"`                 // MPa ceiling
	MinSafetyFactor  *float64 `json:"min_safety_factor,omitempty" yaml:"min_safety_factor,omitempty"`   // floor
	MinFatigueLife   *float64 `json:"min_fatigue_life,omitempty" yaml:"min_fatigue_life,omitempty"`     // cycles floor
	MaxFreeLength    *float64 `json:"max_free_length,omitempty" yaml:"max_free_length,omitempty"`       // mm ceiling
	MaxOuterDiameter *float64 `json:"max_outer_diameter,omitempty" yaml:"max_outer_diameter,omitempty"` // mm ceiling
	TargetForce      *float64 `json:"target_force,omitempty" yaml:"target_force,omitempty"`             // N at TargetDeflection
	TargetDeflection *float64 `json:"target_deflection,omitempty" yaml:"target_deflection,omitempty"`   // mm
}

// StiffnessTolerance is the relative error inside which a stiffness or
// force-at-deflection target counts as met.
const StiffnessTolerance = 0.05

// FloorTolerance is the relative shortfall allowed below a floor target
// (safety factor, fatigue life) before an individual is marked infeasible.
const FloorTolerance = 0.01

// HasAny reports whether at least one target axis is set.
func (t DesignTargets) HasAny() bool {
	return t.Stiffness != nil || t.MaxStress != nil || t.MinSafetyFactor != nil ||
		t.MinFatigueLife != nil || t.MaxFreeLength != nil || t.MaxOuterDiameter != nil ||
		(t.TargetForce != nil && t.TargetDeflection != nil)
}

// Float64Ptr is a convenience for building DesignTargets literals.
func Float64Ptr(v float64) *float64 { return &v }

// ObjectiveWeights scales the six raw objectives in the scalarized fitness.
// All weights are non-negative; a zero weight removes the objective from
// selection pressure without removing it from Pareto dominance.
type ObjectiveWeights struct {
	StressRatio       float64 `json:"stress_ratio" yaml:"stress_ratio" validate:"gte=0"`
	InverseSafety     float64 `json:"inverse_safety" yaml:"inverse_safety" validate:"gte=0"`
	InverseLogFatigue float64 `json:"inverse_log_fatigue" yaml:"inverse_log_fatigue" validate:"gte=0"`
	InverseBuckling   float64 `json:"inverse_buckling" yaml:"inverse_buckling" validate:"gte=0"`
	Mass              float64 `json:"mass" yaml:"mass" validate:"gte=0"`
	Cost              float64 `json:"cost" yaml:"cost" validate:"gte=0"`
}

// DefaultObjectiveWeights balances stress and safety margin over mass/cost.
func DefaultObjectiveWeights() ObjectiveWeights {
	return ObjectiveWeights{
		StressRatio:       1.0,
		InverseSafety:     1.0,
		InverseLogFatigue: 0.5,
		InverseBuckling:   0.5,
		Mass:              0.1,
		Cost:              0.1,
	}
}
