package optimizers

import (
	"fmt"
	"math"

	"github.com/XiaoConstantine/springopt-go/pkg/core"
)

// Status of a completed run. A run never hard-fails: partial means the
// caller still gets the best design found plus a diagnostic.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
)

// OptimizationResult is the public outcome of one run.
type OptimizationResult struct {
	BestDesign  core.Design        `json:"best_design"`
	Predicted   *core.Metrics      `json:"predicted,omitempty"`
	BestFitness float64            `json:"best_fitness"`
	Feasible    bool               `json:"feasible"`
	Convergence []ConvergenceRecord `json:"convergence"`
	ParetoFront []ParetoFrontEntry `json:"pareto_front"`
	Status      Status             `json:"status"`
	Diagnostic  string             `json:"diagnostic,omitempty"`
}

// buildResult assembles the public result from the run's best-ever
// accumulator, convergence history and terminal Pareto front.
func buildResult(evaluator *Evaluator, bestEver *Individual, convergence []ConvergenceRecord,
	front []ParetoFrontEntry, acceptanceFitness float64, canceled bool) *OptimizationResult {

	result := &OptimizationResult{
		BestFitness: math.Inf(-1),
		Convergence: convergence,
		ParetoFront: front,
		Status:      StatusPartial,
	}

	if bestEver == nil {
		result.Diagnostic = "run canceled before the first generation was evaluated"
		return result
	}

	result.BestDesign = bestEver.Design
	result.Predicted = bestEver.Metrics
	result.BestFitness = bestEver.Fitness
	result.Feasible = bestEver.Feasible

	switch {
	case canceled:
		result.Diagnostic = "run canceled; returning best design found so far"
	case bestEver.Feasible && bestEver.Fitness >= acceptanceFitness:
		result.Status = StatusSuccess
	case bestEver.Feasible:
		result.Diagnostic = fmt.Sprintf(
			"best design is feasible but its fitness %.4f is below the acceptance threshold %.4f",
			bestEver.Fitness, acceptanceFitness)
	default:
		result.Diagnostic = fmt.Sprintf("best design violates constraints: %s",
			evaluator.describeViolations(bestEver))
	}

	return result
}
