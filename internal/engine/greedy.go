package engine

import (
	"math/rand"

	"timetableweaver/pkg/model"
)

// greedyGenerator runs the constructive placement once and returns its
// result without searching. Useful as a fast baseline and for seeding
// comparisons.
type greedyGenerator struct{}

// NewGreedyGenerator returns the constructive-only backend.
func NewGreedyGenerator() Generator {
	return &greedyGenerator{}
}

func (g *greedyGenerator) Generate(cfg model.Config, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	advisory := checkEmptyInput(cfg)

	seed := opts.seed()
	rng := rand.New(rand.NewSource(int64(seed)))

	eval := newEvaluator(cfg)
	init := newInitializer(cfg, eval)

	schedule := init.Seed(rng)
	metrics := eval.Evaluate(schedule)

	return &Result{
		Schedule:      schedule,
		Metrics:       metrics,
		IterationsRun: 0,
		SeedUsed:      seed,
	}, resultError(metrics, advisory)
}
