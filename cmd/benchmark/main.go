package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/samber/lo"

	"timetableweaver/internal/engine"
	"timetableweaver/pkg/model"
)

const (
	resultsFile = "benchmark_results.csv"
	matrixSeed  = 20240601
	runsPerCase = 3
)

type BackendType int

const (
	anneal BackendType = iota
	greedy
)

type ResultType int

const (
	feasible ResultType = iota
	infeasible
)

var (
	backendTypes = map[BackendType]string{
		anneal: "anneal",
		greedy: "greedy",
	}
	backendConstructors = map[BackendType]func() engine.Generator{
		anneal: engine.NewAnnealingGenerator,
		greedy: engine.NewGreedyGenerator,
	}
	resultTypes = map[ResultType]string{
		feasible:   "feasible",
		infeasible: "infeasible",
	}
)

type TestMetadata struct {
	Name         string
	Days         int
	Periods      int
	Teachers     int
	Classes      int
	TotalPeriods int
	Density      float64
}

type BenchmarkResult struct {
	Backend    BackendType
	Test       TestMetadata
	Duration   int64
	Iterations int
	Conflicts  int
	Fitness    float64
	Result     ResultType
}

func main() {
	tests := getTests()
	backends := getBackends()
	results := make([]BenchmarkResult, 0, len(tests)*len(backends)*runsPerCase)

	for _, test := range tests {
		cfg := buildConfig(test, rand.New(rand.NewSource(matrixSeed)))
		for _, backend := range backends {
			for run := 0; run < runsPerCase; run++ {
				fmt.Printf("Benchmarking test %q with backend %q (run %v)\n", test.Name, backendTypes[backend], run+1)
				results = append(results, measure(backend, test, cfg, uint64(run+1)))
			}
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	return []TestMetadata{
		{Name: "small-loose", Days: 5, Periods: 6, Teachers: 4, Classes: 2, TotalPeriods: 18, Density: 1.0},
		{Name: "small-tight", Days: 5, Periods: 6, Teachers: 3, Classes: 3, TotalPeriods: 26, Density: 1.0},
		{Name: "medium", Days: 5, Periods: 7, Teachers: 8, Classes: 5, TotalPeriods: 30, Density: 1.0},
		{Name: "sparse-teachers", Days: 5, Periods: 6, Teachers: 6, Classes: 3, TotalPeriods: 22, Density: 0.6},
		{Name: "large", Days: 6, Periods: 8, Teachers: 12, Classes: 8, TotalPeriods: 40, Density: 0.85},
	}
}

func getBackends() []BackendType {
	return []BackendType{anneal, greedy}
}

func measure(backend BackendType, test TestMetadata, cfg model.Config, seed uint64) BenchmarkResult {
	generator := backendConstructors[backend]()

	start := time.Now()
	generated, err := generator.Generate(cfg, engine.Options{Seed: seed})
	duration := time.Since(start)
	if err != nil && !errors.Is(err, engine.ErrNoFeasibleSolution) && !errors.Is(err, engine.ErrEmptyInput) {
		log.Fatalf("an error occurred during benchmark %q with backend %q: %v", test.Name, backendTypes[backend], err)
	}

	result := feasible
	if generated.Metrics.TeacherConflicts > 0 || generated.Metrics.Unscheduled > 0 {
		result = infeasible
	}

	return BenchmarkResult{
		Backend:    backend,
		Test:       test,
		Duration:   duration.Milliseconds(),
		Iterations: generated.IterationsRun,
		Conflicts:  generated.Metrics.TeacherConflicts,
		Fitness:    generated.Metrics.Fitness(),
		Result:     result,
	}
}

// buildConfig synthesizes a random configuration matching the test's
// shape. Teacher availability is thinned to the given density.
func buildConfig(test TestMetadata, rng *rand.Rand) model.Config {
	cfg := model.Config{
		Name:          test.Name,
		Days:          test.Days,
		PeriodsPerDay: test.Periods,
	}

	for i := 0; i < test.Teachers; i++ {
		availability := model.NewFullAvailability(test.Days, test.Periods)
		for day := 0; day < test.Days; day++ {
			for period := 0; period < test.Periods; period++ {
				if rng.Float64() > test.Density {
					availability.Set(day, period, false)
				}
			}
		}
		if availability.Count() == 0 {
			availability.Set(0, 0, true)
		}
		cfg.Teachers = append(cfg.Teachers, model.Teacher{
			Name:         fmt.Sprintf("teacher-%v", i),
			Availability: availability,
		})
	}

	subjects := []string{"Math", "Eng", "Sci", "Art", "Hist", "Geo"}
	for i := 0; i < test.Classes; i++ {
		class := model.Class{
			Name:         fmt.Sprintf("class-%v", i),
			Availability: model.NewFullAvailability(test.Days, test.Periods),
		}
		remaining := test.TotalPeriods
		for j := 0; remaining > 0; j++ {
			periods := 1 + rng.Intn(3)
			if periods > remaining {
				periods = remaining
			}
			remaining -= periods
			class.Lessons = append(class.Lessons, model.Lesson{
				Subject:        subjects[j%len(subjects)],
				Teacher:        cfg.Teachers[rng.Intn(len(cfg.Teachers))].Name,
				PeriodsPerWeek: periods,
			})
		}
		cfg.Classes = append(cfg.Classes, class)
	}
	return cfg
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Backend", "Test", "Days", "Periods", "Teachers", "Classes", "TotalPeriods", "Density", "Duration(ms)", "Iterations", "Conflicts", "Fitness", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			backendTypes[result.Backend],
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Days),
			fmt.Sprintf("%d", result.Test.Periods),
			fmt.Sprintf("%d", result.Test.Teachers),
			fmt.Sprintf("%d", result.Test.Classes),
			fmt.Sprintf("%d", result.Test.TotalPeriods),
			fmt.Sprintf("%.2f", result.Test.Density),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%d", result.Iterations),
			fmt.Sprintf("%d", result.Conflicts),
			fmt.Sprintf("%.1f", result.Fitness),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}

	durations := lo.Map(results, func(result BenchmarkResult, _ int) int64 { return result.Duration })
	fmt.Printf("Wrote %v results to %v (slowest run: %vms)\n", len(results), resultsFile, lo.Max(durations))
}
