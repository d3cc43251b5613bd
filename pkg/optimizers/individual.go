package optimizers

import (
	"github.com/google/uuid"

	"github.com/XiaoConstantine/springopt-go/pkg/core"
)

// Objective indices into an Individual's objective vector. All six follow the
// minimization convention: lower is better.
const (
	ObjStressRatio = iota
	ObjInverseSafety
	ObjInverseLogFatigue
	ObjInverseBuckling
	ObjMass
	ObjCost

	NumObjectives
)

// Individual is one evaluated candidate. Objectives, Fitness, Feasible and
// Metrics are always derived by evaluation, never set by hand.
type Individual struct {
	ID         string
	Design     core.Design
	Objectives [NumObjectives]float64
	Fitness    float64
	Feasible   bool

	// Metrics is the oracle output backing the objective vector; nil when
	// the individual failed the hard constraint or the oracle.
	Metrics *core.Metrics

	evaluated bool
}

func newIndividual(design core.Design) *Individual {
	return &Individual{
		ID:     uuid.NewString(),
		Design: design,
	}
}

// Population is one generation's fixed-size candidate list. The size is
// invariant across generations.
type Population struct {
	Members    []*Individual
	Generation int
}

// Best returns the highest-fitness member; first index wins ties so scans
// are deterministic under a fixed seed.
func (p *Population) Best() *Individual {
	if len(p.Members) == 0 {
		return nil
	}
	best := p.Members[0]
	for _, m := range p.Members[1:] {
		if m.Fitness > best.Fitness {
			best = m
		}
	}
	return best
}

// AverageFitness returns the mean fitness of the generation. Individuals
// scored at -Inf drag the average to -Inf, which is the honest summary of a
// generation with unevaluable members.
func (p *Population) AverageFitness() float64 {
	if len(p.Members) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range p.Members {
		sum += m.Fitness
	}
	return sum / float64(len(p.Members))
}

// ConvergenceRecord is one appended row of the run's convergence history.
type ConvergenceRecord struct {
	Generation       int     `json:"generation"`
	BestFitnessSoFar float64 `json:"best_fitness_so_far"`
	AverageFitness   float64 `json:"average_fitness"`
}

// ParetoFrontEntry is one non-dominated design of the terminal population.
type ParetoFrontEntry struct {
	Design     core.Design                `json:"design"`
	Objectives [NumObjectives]float64     `json:"objectives"`
}
