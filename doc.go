// Package springopt is an inverse design optimizer for mechanical helical
// springs: given performance targets such as stiffness, load capacity,
// safety factor and fatigue life, it searches a bounded space of spring
// geometries and materials for designs that meet them.
//
// The search is a multi-objective genetic algorithm over a mixed
// continuous/discrete design vector (wire diameter, mean coil diameter,
// active coil count, free length, material). Candidate designs are scored
// by an analysis oracle that computes spring rate, shear stress, safety
// factor, fatigue life, buckling margin, mass and cost; targets enter the
// fitness as soft penalties while the spring-index bound is enforced hard.
//
// Key Components:
//
//   - pkg/core: Shared vocabulary of the system: Design, DesignConstraints,
//     DesignTargets, WorkingConditions, Metrics and the AnalysisOracle
//     contract, plus the spring geometry model.
//
//   - pkg/optimizers: The genetic-algorithm engine: evaluation with penalty
//     handling, tournament selection, elitism, convergence tracking and
//     terminal Pareto-front extraction. InverseDesignSolve is the high-level
//     entry point.
//
//   - pkg/analysis: The built-in analysis oracle. Closed-form spring
//     mechanics: Wahl-corrected shear stress, Goodman fatigue, buckling
//     slenderness checks.
//
//   - pkg/materials: The spring material catalog (shear modulus, allowable
//     stress, endurance limit, density, cost factor per material).
//
//   - pkg/config: YAML run configuration with defaults and validation.
//
//   - pkg/errors, pkg/logging: Structured error codes and leveled run/
//     generation-scoped logging used across the module.
//
// Example usage:
//
//	result, err := optimizers.InverseDesignSolve(ctx, 7.26, 108.9, 15, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("best design: %+v (status=%s)\n", result.BestDesign, result.Status)
package springopt
