package engine

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"timetableweaver/pkg/model"
)

const (
	restartPerturbations  = 10
	conflictPassIters     = 2000
	conflictPassStaleSpan = 500
	conflictPassShake     = 5
)

// annealingGenerator searches by simulated annealing over mutation
// neighbourhoods, with adaptive restarts and a terminal conflict
// elimination pass.
type annealingGenerator struct{}

// NewAnnealingGenerator returns the default search backend.
func NewAnnealingGenerator() Generator {
	return &annealingGenerator{}
}

func (g *annealingGenerator) Generate(cfg model.Config, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	advisory := checkEmptyInput(cfg)

	seed := opts.seed()
	rng := rand.New(rand.NewSource(int64(seed)))
	logger := opts.Logger

	eval := newEvaluator(cfg)
	init := newInitializer(cfg, eval)
	mut := newMutator(cfg, eval, init)

	current := init.Seed(rng)
	currentMetrics := eval.Evaluate(current)
	best := current.Clone()
	bestMetrics := currentMetrics

	temperature := opts.T0
	stagnant := 0
	iterations := 0

	for iter := 0; iter < opts.MaxIters && bestMetrics.Fitness() > 0; iter++ {
		iterations++
		candidate := mut.Mutate(current, rng)
		candidateMetrics := eval.Evaluate(candidate)

		// Gapped candidates indicate a broken mutation; keep the
		// pre-mutation schedule and move on.
		if candidateMetrics.EmptySpace > 0 {
			logger.Warn("discarding gapped candidate schedule")
			continue
		}

		delta := candidateMetrics.Fitness() - currentMetrics.Fitness()
		if delta < 0 {
			current, currentMetrics = candidate, candidateMetrics
			if candidateMetrics.Fitness() < bestMetrics.Fitness() {
				best, bestMetrics = candidate.Clone(), candidateMetrics
				logger.Debug("best schedule improved",
					zap.Float64("fitness", bestMetrics.Fitness()),
					zap.Int("conflicts", bestMetrics.TeacherConflicts),
					zap.Int("iteration", iterations))
			}
			stagnant = 0
		} else {
			if rng.Float64() < math.Exp(-delta/temperature) {
				current, currentMetrics = candidate, candidateMetrics
			}
			stagnant++
		}

		if stagnant > opts.MaxStagnant/2 && bestMetrics.Fitness() > 0 {
			current = best.Clone()
			for i := 0; i < restartPerturbations; i++ {
				current = mut.Mutate(current, rng)
			}
			currentMetrics = eval.Evaluate(current)
			temperature = math.Min(0.5, 2*temperature)
			stagnant = 0
			logger.Debug("restarting from best schedule",
				zap.Float64("temperature", temperature),
				zap.Int("iteration", iterations))
		}
		if stagnant >= opts.MaxStagnant {
			break
		}

		temperature *= opts.Cooling
		if temperature < opts.TMin {
			temperature = opts.TMin
		}
	}

	//** Terminal pass: drive remaining conflicts down, empty space stays zero
	if bestMetrics.TeacherConflicts > 0 {
		current = best.Clone()
		currentMetrics = bestMetrics
		stale := 0
		for iter := 0; iter < conflictPassIters && bestMetrics.TeacherConflicts > 0; iter++ {
			iterations++
			candidate := mut.Mutate(current, rng)
			candidateMetrics := eval.Evaluate(candidate)

			if candidateMetrics.EmptySpace > 0 || candidateMetrics.TeacherConflicts > currentMetrics.TeacherConflicts {
				stale++
			} else {
				improved := candidateMetrics.TeacherConflicts < currentMetrics.TeacherConflicts
				current, currentMetrics = candidate, candidateMetrics
				if candidateMetrics.Fitness() < bestMetrics.Fitness() {
					best, bestMetrics = candidate.Clone(), candidateMetrics
				}
				if improved {
					stale = 0
				} else {
					stale++
				}
			}

			if stale > 0 && stale%conflictPassStaleSpan == 0 {
				for i := 0; i < conflictPassShake; i++ {
					current = mut.Mutate(current, rng)
				}
				currentMetrics = eval.Evaluate(current)
			}
		}
	}

	best.Compact()
	return &Result{
		Schedule:      best,
		Metrics:       bestMetrics,
		IterationsRun: iterations,
		SeedUsed:      seed,
	}, resultError(bestMetrics, advisory)
}
