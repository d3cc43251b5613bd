// Package optimizers implements the multi-objective genetic-algorithm core
// of the inverse spring design system: population search over the bounded
// design space, penalty-based constraint handling, elitism, convergence
// tracking and terminal Pareto-front extraction. The analysis oracle behind
// the fitness function is a pluggable collaborator.
package optimizers

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/XiaoConstantine/springopt-go/pkg/config"
	"github.com/XiaoConstantine/springopt-go/pkg/core"
	"github.com/XiaoConstantine/springopt-go/pkg/errors"
	"github.com/XiaoConstantine/springopt-go/pkg/logging"
)

// GA drives the generational loop. One GA value serves one run at a time;
// the evolving population is owned exclusively by the running Optimize call.
type GA struct {
	cfg     *config.OptimizerConfig
	oracle  core.AnalysisOracle
	catalog core.MaterialCatalog
	rng     *rand.Rand
}

// NewGA builds an engine from the given options, oracle and material
// catalog. A nil cfg uses the defaults; zero-valued fields are filled in.
func NewGA(cfg *config.OptimizerConfig, oracle core.AnalysisOracle, catalog core.MaterialCatalog) (*GA, error) {
	if cfg == nil {
		cfg = config.DefaultOptimizerConfig()
	}
	cfg.ApplyDefaults()

	validator, err := config.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateOptimizerConfig(cfg); err != nil {
		return nil, err
	}
	if oracle == nil {
		return nil, errors.New(errors.InvalidInput, "analysis oracle is required")
	}
	if catalog == nil {
		return nil, errors.New(errors.InvalidInput, "material catalog is required")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GA{
		cfg:     cfg,
		oracle:  oracle,
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// Optimize runs the full generational loop and returns a best-effort result.
// A run never fails on individual evaluations; the returned error covers only
// unusable inputs.
func (g *GA) Optimize(ctx context.Context, targets core.DesignTargets, conditions core.WorkingConditions,
	constraints core.DesignConstraints, weights core.ObjectiveWeights) (*OptimizationResult, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	logger := logging.GetLogger()
	ctx = logging.WithRunID(ctx, uuid.NewString())

	evaluator := NewEvaluator(g.oracle, g.catalog, constraints, targets, weights, conditions)

	logger.Info(ctx, "starting optimization: population=%d generations=%d elites=%d",
		g.cfg.PopulationSize, g.cfg.Generations, g.cfg.EliteCount)

	pop := g.initialize(constraints)

	var (
		bestEver    *Individual
		convergence []ConvergenceRecord
		canceled    bool
	)

	for generation := 0; generation < g.cfg.Generations; generation++ {
		genCtx := logging.WithGeneration(ctx, generation)

		// Cancellation is honored once per generation boundary so no
		// half-reproduced population is ever observed.
		if err := errors.CheckContext(ctx, "optimization"); err != nil {
			logger.Warn(genCtx, "run canceled, returning best-so-far result")
			canceled = true
			break
		}

		pop.Generation = generation
		g.evaluatePopulation(genCtx, evaluator, pop)

		if best := pop.Best(); best != nil {
			if bestEver == nil || best.Fitness > bestEver.Fitness {
				copied := *best
				bestEver = &copied
			}
		}

		convergence = append(convergence, ConvergenceRecord{
			Generation:       generation,
			BestFitnessSoFar: bestEver.Fitness,
			AverageFitness:   pop.AverageFitness(),
		})

		logger.Debug(genCtx, "generation complete: best_so_far=%.4f avg=%.4f",
			bestEver.Fitness, pop.AverageFitness())

		if generation < g.cfg.Generations-1 {
			pop = g.reproduce(pop, constraints)
		}
	}

	front := extractParetoFront(pop, paretoReportCap)
	result := buildResult(evaluator, bestEver, convergence, front, g.cfg.AcceptanceFitness, canceled)

	logger.Info(ctx, "optimization finished: status=%s best_fitness=%.4f pareto_entries=%d",
		result.Status, result.BestFitness, len(result.ParetoFront))

	return result, nil
}

// initialize samples the generation-zero population.
func (g *GA) initialize(constraints core.DesignConstraints) *Population {
	members := make([]*Individual, g.cfg.PopulationSize)
	for i := range members {
		members[i] = newIndividual(clampDesign(randomDesign(g.rng, constraints), constraints))
	}
	return &Population{Members: members}
}

// evaluatePopulation fans individual evaluations out across workers. Each
// goroutine writes only its own slot, so no lock is needed and results are
// identical at any concurrency level.
func (g *GA) evaluatePopulation(ctx context.Context, evaluator *Evaluator, pop *Population) {
	p := pool.New().WithMaxGoroutines(g.cfg.ConcurrencyLevel)

	for _, member := range pop.Members {
		member := member
		if member.evaluated {
			continue // elites carry their scores forward unchanged
		}
		p.Go(func() {
			evaluator.Evaluate(ctx, member)
		})
	}

	p.Wait()
}

// reproduce builds the next generation: elites copied unmodified, the
// remainder from tournament selection, crossover and mutation. Selection and
// the stochastic operators run sequentially on the run's seeded RNG.
func (g *GA) reproduce(pop *Population, constraints core.DesignConstraints) *Population {
	next := make([]*Individual, 0, g.cfg.PopulationSize)

	for _, elite := range g.selectElite(pop, g.cfg.EliteCount) {
		copied := *elite
		next = append(next, &copied)
	}

	for len(next) < g.cfg.PopulationSize {
		parent1 := g.tournament(pop)
		parent2 := g.tournament(pop)

		child := g.crossover(parent1.Design, parent2.Design, constraints)
		child = g.mutate(child, constraints)

		next = append(next, newIndividual(clampDesign(child, constraints)))
	}

	return &Population{Members: next, Generation: pop.Generation + 1}
}

// selectElite returns copies of the top-fitness members. Sort is stable so
// equal-fitness ties resolve by population order, keeping runs reproducible.
func (g *GA) selectElite(pop *Population, count int) []*Individual {
	if count <= 0 {
		return nil
	}
	if count > len(pop.Members) {
		count = len(pop.Members)
	}

	ranked := make([]*Individual, len(pop.Members))
	copy(ranked, pop.Members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	return ranked[:count]
}

// tournament draws TournamentSize members uniformly at random and returns
// the fittest. Size 1 degenerates to uniform-random selection.
func (g *GA) tournament(pop *Population) *Individual {
	best := pop.Members[g.rng.Intn(len(pop.Members))]
	for i := 1; i < g.cfg.TournamentSize; i++ {
		candidate := pop.Members[g.rng.Intn(len(pop.Members))]
		if candidate.Fitness > best.Fitness {
			best = candidate
		}
	}
	return best
}

// crossover combines two parent designs. Discrete genes copy from either
// parent 50/50 independently; continuous genes additionally blend
// arithmetically at CrossoverBlendRate to explore between the parents.
func (g *GA) crossover(p1, p2 core.Design, constraints core.DesignConstraints) core.Design {
	child := core.Design{}

	child.WireDiameter = g.crossContinuous(p1.WireDiameter, p2.WireDiameter)
	child.MeanDiameter = g.crossContinuous(p1.MeanDiameter, p2.MeanDiameter)
	child.FreeLength = g.crossContinuous(p1.FreeLength, p2.FreeLength)

	if g.rng.Float64() < 0.5 {
		child.ActiveCoils = p1.ActiveCoils
	} else {
		child.ActiveCoils = p2.ActiveCoils
	}
	if g.rng.Float64() < 0.5 {
		child.Material = p1.Material
	} else {
		child.Material = p2.Material
	}

	return clampDesign(child, constraints)
}

func (g *GA) crossContinuous(v1, v2 float64) float64 {
	if g.rng.Float64() < g.cfg.CrossoverBlendRate {
		alpha := g.rng.Float64()
		return alpha*v1 + (1-alpha)*v2
	}
	if g.rng.Float64() < 0.5 {
		return v1
	}
	return v2
}

// mutate jitters continuous genes by up to 10% of their range, steps the
// coil count by up to two, and re-draws the material at half the base rate.
func (g *GA) mutate(d core.Design, constraints core.DesignConstraints) core.Design {
	rate := g.cfg.MutationRate

	if g.rng.Float64() < rate {
		d.WireDiameter += g.jitter(constraints.WireDiameter)
	}
	if g.rng.Float64() < rate {
		d.MeanDiameter += g.jitter(constraints.MeanDiameter)
	}
	if g.rng.Float64() < rate {
		d.FreeLength += g.jitter(constraints.FreeLength)
	}
	if g.rng.Float64() < rate {
		d.ActiveCoils += g.rng.Intn(5) - 2 // {-2..2}
	}
	if g.rng.Float64() < rate/2 {
		d.Material = g.rng.Intn(len(constraints.AllowedMaterials))
	}

	return clampDesign(d, constraints)
}

func (g *GA) jitter(r core.Range) float64 {
	return (g.rng.Float64()*2 - 1) * 0.1 * r.Span()
}
