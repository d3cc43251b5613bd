package optimizers

import (
	"context"

	"github.com/XiaoConstantine/springopt-go/pkg/analysis"
	"github.com/XiaoConstantine/springopt-go/pkg/config"
	"github.com/XiaoConstantine/springopt-go/pkg/core"
	"github.com/XiaoConstantine/springopt-go/pkg/materials"
)

// Default floors applied by the targeted inverse solve.
const (
	DefaultMinSafetyFactor = 1.5
	DefaultMinFatigueLife  = 1e6
)

// OptimizeDesign runs a full optimization against the built-in analysis
// pipeline and material catalog. Callers needing a custom oracle construct a
// GA directly via NewGA.
func OptimizeDesign(ctx context.Context, targets core.DesignTargets, conditions core.WorkingConditions,
	constraints core.DesignConstraints, weights core.ObjectiveWeights,
	opts *config.OptimizerConfig) (*OptimizationResult, error) {

	ga, err := NewGA(opts, analysis.NewPipeline(), materials.NewCatalog())
	if err != nil {
		return nil, err
	}
	return ga.Optimize(ctx, targets, conditions, constraints, weights)
}

// InverseDesignSolve is the targeted inverse solve: builds targets from a
// desired stiffness and a force/deflection operating point, adds default
// safety and fatigue floors, and delegates to the GA with default
// constraints and weights. A non-nil constraintOverrides replaces the
// default search space.
func InverseDesignSolve(ctx context.Context, targetStiffness, targetForce, targetDeflection float64,
	constraintOverrides *core.DesignConstraints) (*OptimizationResult, error) {

	targets := core.DesignTargets{
		Stiffness:        core.Float64Ptr(targetStiffness),
		TargetForce:      core.Float64Ptr(targetForce),
		TargetDeflection: core.Float64Ptr(targetDeflection),
		MinSafetyFactor:  core.Float64Ptr(DefaultMinSafetyFactor),
		MinFatigueLife:   core.Float64Ptr(DefaultMinFatigueLife),
	}

	constraints := core.DefaultConstraints()
	if constraintOverrides != nil {
		constraints = *constraintOverrides
	}

	conditions := core.WorkingConditions{
		SpringType:    core.SpringCompression,
		MinDeflection: 0.1 * targetDeflection,
		MaxDeflection: targetDeflection,
	}

	return OptimizeDesign(ctx, targets, conditions, constraints,
		core.DefaultObjectiveWeights(), config.DefaultOptimizerConfig())
}
