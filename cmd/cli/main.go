package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"slices"
	"strings"

	"timetableweaver/internal/csvio"
	"timetableweaver/internal/engine"
	"timetableweaver/pkg/model"
)

var (
	validBackends = []string{"anneal", "greedy"}
	generators    = map[string]func() engine.Generator{
		"anneal": engine.NewAnnealingGenerator,
		"greedy": engine.NewGreedyGenerator,
	}
)

func main() {
	// Define arguments
	backendPtr := flag.String("backend", "anneal", `Generation backend. Allowed values are:
- "anneal" (simulated annealing search, the default) and
- "greedy" (single constructive pass, no search)`)
	configPtr := flag.String("config", "", "Path to a JSON configuration file")
	teachersPtr := flag.String("teachers", "", "Path to a teachers CSV file (requires -lessons)")
	lessonsPtr := flag.String("lessons", "", "Path to a lessons CSV file (requires -teachers)")
	namePtr := flag.String("name", "", "Configuration name used with CSV input")
	daysPtr := flag.Int("days", 5, "Days per week used with CSV input")
	periodsPtr := flag.Int("periods", 6, "Periods per day used with CSV input")
	seedPtr := flag.Uint64("seed", 0, "RNG seed; 0 picks a time-derived seed")
	maxItersPtr := flag.Int("max-iters", 0, "Iteration budget; 0 keeps the default")
	outFilePtr := flag.String("out", "", "Path to the CSV file where the schedule will be written; if empty, it is only printed")
	flag.Parse()
	backend := strings.ToLower(*backendPtr)

	// Validate arguments
	if !slices.Contains(validBackends, backend) {
		log.Fatalf("%v is not a valid backend", backend)
	} else if *configPtr == "" && (*teachersPtr == "" || *lessonsPtr == "") {
		log.Fatal("an input must be specified: -config, or -teachers together with -lessons")
	}

	// Extract input
	cfg, err := loadConfig(*configPtr, *namePtr, *teachersPtr, *lessonsPtr, *daysPtr, *periodsPtr)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	// Build timetable
	generator := generators[backend]()
	result, err := generator.Generate(cfg, engine.Options{Seed: *seedPtr, MaxIters: *maxItersPtr})
	if err != nil && !errors.Is(err, engine.ErrNoFeasibleSolution) && !errors.Is(err, engine.ErrEmptyInput) {
		log.Fatalf("an error occurred during timetable construction: %v", err)
	}

	if cfg.Name != "" {
		fmt.Printf("Timetable: %v\n\n", cfg.Name)
	}
	fmt.Print(result.Schedule.Render(cfg))
	fmt.Printf("\nConflicts: %v\n", result.Metrics.TeacherConflicts)
	fmt.Printf("Unscheduled: %v\n", result.Metrics.Unscheduled)
	fmt.Printf("Adjacency: %v\n", result.Metrics.Adjacency)
	fmt.Printf("FreeFirstPeriods: %v\n", result.Metrics.FreeFirstPeriods)
	fmt.Printf("Fitness: %v\n", result.Metrics.Fitness())
	fmt.Printf("Iterations: %v\n", result.IterationsRun)
	fmt.Printf("Seed: %v\n", result.SeedUsed)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	if *outFilePtr != "" {
		if err := csvio.ExportSchedule(cfg, result.Schedule, *outFilePtr); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}
}

func loadConfig(configFile, name, teachersFile, lessonsFile string, days, periods int) (model.Config, error) {
	if configFile != "" {
		return model.ConfigFromJSON(configFile)
	}
	return csvio.LoadConfig(name, teachersFile, lessonsFile, days, periods)
}
