package optimizers

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/springopt-go/internal/testutil"
	"github.com/XiaoConstantine/springopt-go/pkg/config"
	"github.com/XiaoConstantine/springopt-go/pkg/core"
)

// recordingOracle captures every design the evaluator sends to the oracle.
type recordingOracle struct {
	testutil.StubOracle
	mu      sync.Mutex
	designs []core.Design
}

func (r *recordingOracle) Analyze(ctx context.Context, design core.Design, material core.MaterialProperties, cond core.WorkingConditions) (*core.Metrics, error) {
	r.mu.Lock()
	r.designs = append(r.designs, design)
	r.mu.Unlock()
	return r.StubOracle.Analyze(ctx, design, material, cond)
}

func testConditions() core.WorkingConditions {
	return core.WorkingConditions{
		SpringType:    core.SpringCompression,
		MinDeflection: 3,
		MaxDeflection: 15,
	}
}

func smallConfig(seed int64) *config.OptimizerConfig {
	return &config.OptimizerConfig{
		PopulationSize: 20,
		Generations:    10,
		EliteCount:     3,
		MutationRate:   0.15,
		Seed:           seed,
	}
}

func TestNewGA(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		ga, err := NewGA(nil, &testutil.StubOracle{}, testutil.SteelCatalog())
		require.NoError(t, err)
		assert.Equal(t, 50, ga.cfg.PopulationSize)
	})

	t.Run("nil oracle rejected", func(t *testing.T) {
		_, err := NewGA(nil, nil, testutil.SteelCatalog())
		assert.Error(t, err)
	})

	t.Run("nil catalog rejected", func(t *testing.T) {
		_, err := NewGA(nil, &testutil.StubOracle{}, nil)
		assert.Error(t, err)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		_, err := NewGA(&config.OptimizerConfig{PopulationSize: 50, MutationRate: 3},
			&testutil.StubOracle{}, testutil.SteelCatalog())
		assert.Error(t, err)
	})
}

func TestOptimizeDeterministicWithSeed(t *testing.T) {
	run := func() *OptimizationResult {
		ga, err := NewGA(smallConfig(42), &testutil.StubOracle{}, testutil.SteelCatalog())
		require.NoError(t, err)

		result, err := ga.Optimize(context.Background(), core.DesignTargets{},
			testConditions(), core.DefaultConstraints(), core.DefaultObjectiveWeights())
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	assert.Equal(t, first, second, "same seed and inputs must reproduce the result bit for bit")
}

func TestOptimizeSeedsDiverge(t *testing.T) {
	run := func(seed int64) *OptimizationResult {
		ga, err := NewGA(smallConfig(seed), &testutil.StubOracle{}, testutil.SteelCatalog())
		require.NoError(t, err)
		result, err := ga.Optimize(context.Background(), core.DesignTargets{},
			testConditions(), core.DefaultConstraints(), core.DefaultObjectiveWeights())
		require.NoError(t, err)
		return result
	}

	assert.NotEqual(t, run(1).BestDesign, run(2).BestDesign,
		"different seeds should explore differently")
}

func TestOptimizeBoundInvariant(t *testing.T) {
	oracle := &recordingOracle{}
	constraints := core.DefaultConstraints()

	ga, err := NewGA(smallConfig(3), oracle, testutil.SteelCatalog())
	require.NoError(t, err)

	_, err = ga.Optimize(context.Background(), core.DesignTargets{},
		testConditions(), constraints, core.DefaultObjectiveWeights())
	require.NoError(t, err)

	require.NotEmpty(t, oracle.designs)
	for _, d := range oracle.designs {
		assert.True(t, constraints.WireDiameter.Contains(d.WireDiameter))
		assert.True(t, constraints.MeanDiameter.Contains(d.MeanDiameter))
		assert.True(t, constraints.FreeLength.Contains(d.FreeLength))
		assert.GreaterOrEqual(t, float64(d.ActiveCoils), constraints.ActiveCoils.Min)
		assert.LessOrEqual(t, float64(d.ActiveCoils), constraints.ActiveCoils.Max)

		// Everything reaching the oracle already passed the hard gate.
		assert.True(t, constraints.SpringIndexRange.Contains(d.SpringIndex()))
	}
}

func TestOptimizeElitismMonotonicity(t *testing.T) {
	ga, err := NewGA(smallConfig(4), &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)

	result, err := ga.Optimize(context.Background(), core.DesignTargets{},
		testConditions(), core.DefaultConstraints(), core.DefaultObjectiveWeights())
	require.NoError(t, err)

	require.Len(t, result.Convergence, 10)
	for i := 1; i < len(result.Convergence); i++ {
		assert.GreaterOrEqual(t, result.Convergence[i].BestFitnessSoFar,
			result.Convergence[i-1].BestFitnessSoFar,
			"best-so-far must never regress (generation %d)", i)
	}
}

func TestPopulationSizeInvariant(t *testing.T) {
	ga, err := NewGA(smallConfig(5), &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)
	constraints := core.DefaultConstraints()
	evaluator := NewEvaluator(&testutil.StubOracle{}, testutil.SteelCatalog(), constraints,
		core.DesignTargets{}, core.DefaultObjectiveWeights(), testConditions())

	pop := ga.initialize(constraints)
	assert.Len(t, pop.Members, ga.cfg.PopulationSize, "generation 0")

	for gen := 0; gen < 5; gen++ {
		ga.evaluatePopulation(context.Background(), evaluator, pop)
		pop = ga.reproduce(pop, constraints)
		assert.Len(t, pop.Members, ga.cfg.PopulationSize, "generation %d", gen+1)
	}
}

func TestOptimizeSurvivesOracleFailures(t *testing.T) {
	// Every third oracle call fails; the run must still complete with a
	// usable result.
	ga, err := NewGA(smallConfig(6), &testutil.StubOracle{FailEvery: 3}, testutil.SteelCatalog())
	require.NoError(t, err)

	result, err := ga.Optimize(context.Background(), core.DesignTargets{},
		testConditions(), core.DefaultConstraints(), core.DefaultObjectiveWeights())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, math.IsInf(result.BestFitness, -1),
		"some individuals evaluate cleanly, so the best is finite")
}

func TestOptimizeCancellation(t *testing.T) {
	ga, err := NewGA(smallConfig(7), &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := ga.Optimize(ctx, core.DesignTargets{},
		testConditions(), core.DefaultConstraints(), core.DefaultObjectiveWeights())
	require.NoError(t, err, "cancellation is not an error, it returns best-so-far")
	require.NotNil(t, result)
	assert.Equal(t, StatusPartial, result.Status)
	assert.NotEmpty(t, result.Diagnostic)
}

func TestOptimizeInvalidConstraints(t *testing.T) {
	ga, err := NewGA(smallConfig(8), &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)

	bad := core.DefaultConstraints()
	bad.AllowedMaterials = nil

	_, err = ga.Optimize(context.Background(), core.DesignTargets{},
		testConditions(), bad, core.DefaultObjectiveWeights())
	assert.Error(t, err)
}

func TestTournamentSizeOneIsUniform(t *testing.T) {
	cfg := smallConfig(9)
	cfg.TournamentSize = 1
	ga, err := NewGA(cfg, &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)

	members := make([]*Individual, 10)
	for i := range members {
		members[i] = &Individual{Fitness: float64(i)} // strictly increasing fitness
	}
	pop := &Population{Members: members}

	counts := make(map[*Individual]int)
	draws := 10000
	for i := 0; i < draws; i++ {
		counts[ga.tournament(pop)]++
	}

	expected := draws / len(members)
	for i, m := range members {
		assert.InDelta(t, expected, counts[m], float64(expected)*0.3,
			"member %d should be drawn ~uniformly despite its fitness rank", i)
	}
}

func TestTournamentPrefersFitter(t *testing.T) {
	cfg := smallConfig(10)
	cfg.TournamentSize = 3
	ga, err := NewGA(cfg, &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)

	members := make([]*Individual, 10)
	for i := range members {
		members[i] = &Individual{Fitness: float64(i)}
	}
	pop := &Population{Members: members}

	bestCount := 0
	worstCount := 0
	for i := 0; i < 5000; i++ {
		winner := ga.tournament(pop)
		if winner == members[9] {
			bestCount++
		}
		if winner == members[0] {
			worstCount++
		}
	}

	assert.Greater(t, bestCount, worstCount, "selection pressure must favor fitness")
}

func TestCrossoverIdenticalParentsIsNoOp(t *testing.T) {
	ga, err := NewGA(smallConfig(11), &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)
	constraints := core.DefaultConstraints()

	parent := core.Design{WireDiameter: 3, MeanDiameter: 24, ActiveCoils: 8, FreeLength: 50, Material: 1}

	for i := 0; i < 200; i++ {
		child := ga.crossover(parent, parent, constraints)

		assert.InDelta(t, parent.WireDiameter, child.WireDiameter, 1e-9)
		assert.InDelta(t, parent.MeanDiameter, child.MeanDiameter, 1e-9)
		assert.InDelta(t, parent.FreeLength, child.FreeLength, 1e-9)
		assert.Equal(t, parent.ActiveCoils, child.ActiveCoils)
		assert.Equal(t, parent.Material, child.Material)
	}
}

func TestCrossoverStaysInBounds(t *testing.T) {
	ga, err := NewGA(smallConfig(12), &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)
	constraints := core.DefaultConstraints()

	p1 := core.Design{WireDiameter: 0.5, MeanDiameter: 4, ActiveCoils: 3, FreeLength: 10, Material: 0}
	p2 := core.Design{WireDiameter: 10, MeanDiameter: 80, ActiveCoils: 20, FreeLength: 200, Material: 3}

	for i := 0; i < 500; i++ {
		child := ga.crossover(p1, p2, constraints)
		assert.True(t, constraints.WireDiameter.Contains(child.WireDiameter))
		assert.True(t, constraints.MeanDiameter.Contains(child.MeanDiameter))
		assert.True(t, constraints.FreeLength.Contains(child.FreeLength))
	}
}

func TestMutateStaysInBounds(t *testing.T) {
	cfg := smallConfig(13)
	cfg.MutationRate = 1.0 // force every operator to fire
	ga, err := NewGA(cfg, &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)
	constraints := core.DefaultConstraints()

	d := core.Design{WireDiameter: 10, MeanDiameter: 80, ActiveCoils: 20, FreeLength: 200, Material: 0}
	for i := 0; i < 500; i++ {
		d = ga.mutate(d, constraints)

		assert.True(t, constraints.WireDiameter.Contains(d.WireDiameter))
		assert.True(t, constraints.MeanDiameter.Contains(d.MeanDiameter))
		assert.True(t, constraints.FreeLength.Contains(d.FreeLength))
		assert.GreaterOrEqual(t, float64(d.ActiveCoils), constraints.ActiveCoils.Min)
		assert.LessOrEqual(t, float64(d.ActiveCoils), constraints.ActiveCoils.Max)
		assert.GreaterOrEqual(t, d.Material, 0)
		assert.Less(t, d.Material, len(constraints.AllowedMaterials))
	}
}

func TestSelectElite(t *testing.T) {
	ga, err := NewGA(smallConfig(14), &testutil.StubOracle{}, testutil.SteelCatalog())
	require.NoError(t, err)

	members := []*Individual{
		{Fitness: -3}, {Fitness: -1}, {Fitness: -2}, {Fitness: -5},
	}
	pop := &Population{Members: members}

	elite := ga.selectElite(pop, 2)
	require.Len(t, elite, 2)
	assert.Equal(t, -1.0, elite[0].Fitness)
	assert.Equal(t, -2.0, elite[1].Fitness)

	assert.Nil(t, ga.selectElite(pop, 0))
	assert.Len(t, ga.selectElite(pop, 99), len(members))
}
