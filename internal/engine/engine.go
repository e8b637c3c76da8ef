package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"timetableweaver/pkg/model"
)

// Generator produces a weekly schedule for a configuration.
type Generator interface {
	Generate(cfg model.Config, opts Options) (*Result, error)
}

// Options carry the RNG seed and the search parameters. Zero values select
// the defaults; a zero Seed selects a time-derived seed.
type Options struct {
	Seed        uint64
	MaxIters    int
	MaxStagnant int
	T0          float64
	TMin        float64
	Cooling     float64
	Logger      *zap.Logger
}

const (
	defaultMaxIters    = 5000
	defaultMaxStagnant = 300
	defaultT0          = 1.0
	defaultTMin        = 1e-4
	defaultCooling     = 0.998
)

func (o Options) withDefaults() Options {
	if o.MaxIters == 0 {
		o.MaxIters = defaultMaxIters
	}
	if o.MaxStagnant == 0 {
		o.MaxStagnant = defaultMaxStagnant
	}
	if o.T0 == 0 {
		o.T0 = defaultT0
	}
	if o.TMin == 0 {
		o.TMin = defaultTMin
	}
	if o.Cooling == 0 {
		o.Cooling = defaultCooling
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

func (o Options) seed() uint64 {
	if o.Seed != 0 {
		return o.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Result is the outcome of one generation call. Schedule is always
// gap-free; Metrics may report remaining conflicts or unscheduled periods
// when the budget ran out.
type Result struct {
	Schedule      *model.Schedule
	Metrics       Metrics
	IterationsRun int
	SeedUsed      uint64
}

// validateConfig enforces the pre-search contract. Any returned error is
// fatal and generation does not start.
func validateConfig(cfg model.Config) error {
	if cfg.Days < 1 || cfg.Days > model.MaxDays {
		return fmt.Errorf("%w: days = %v", ErrOutOfRangeDimension, cfg.Days)
	}
	if cfg.PeriodsPerDay < 1 || cfg.PeriodsPerDay > model.MaxPeriodsPerDay {
		return fmt.Errorf("%w: periods per day = %v", ErrOutOfRangeDimension, cfg.PeriodsPerDay)
	}
	for _, teacher := range cfg.Teachers {
		if teacher.Availability.Days() != cfg.Days || teacher.Availability.Periods() != cfg.PeriodsPerDay {
			return fmt.Errorf("%w: teacher %q availability is %vx%v", ErrOutOfRangeDimension,
				teacher.Name, teacher.Availability.Days(), teacher.Availability.Periods())
		}
	}

	capacity := cfg.Days * cfg.PeriodsPerDay
	for _, class := range cfg.Classes {
		if class.Availability.Days() != cfg.Days || class.Availability.Periods() != cfg.PeriodsPerDay {
			return fmt.Errorf("%w: class %q availability is %vx%v", ErrOutOfRangeDimension,
				class.Name, class.Availability.Days(), class.Availability.Periods())
		}
		if total := class.TotalPeriods(); total > capacity {
			return fmt.Errorf("%w: class %q demands %v of %v periods", ErrCapacityExceeded, class.Name, total, capacity)
		}
		for _, lesson := range class.Lessons {
			teacher, found := cfg.TeacherByName(lesson.Teacher)
			if !found {
				return fmt.Errorf("%w: %q in class %q", ErrUnknownTeacher, lesson.Teacher, class.Name)
			}
			if lesson.PeriodsPerWeek > 0 && teacher.Availability.Count() == 0 {
				return fmt.Errorf("%w: teacher %q", ErrInfeasibleByConstruction, teacher.Name)
			}
		}
	}
	return nil
}

// checkEmptyInput returns the advisory ErrEmptyInput when there is nothing
// to schedule or a class carries no lessons.
func checkEmptyInput(cfg model.Config) error {
	if len(cfg.Classes) == 0 {
		return fmt.Errorf("%w: no classes", ErrEmptyInput)
	}
	for _, class := range cfg.Classes {
		if len(class.Lessons) == 0 {
			return fmt.Errorf("%w: class %q has no lessons", ErrEmptyInput, class.Name)
		}
	}
	return nil
}

// resultError maps terminal metrics to the surfaced outcome. Remaining
// conflicts dominate the advisory empty-input note.
func resultError(metrics Metrics, advisory error) error {
	if metrics.TeacherConflicts > 0 {
		return fmt.Errorf("%w: %v conflicts remain", ErrNoFeasibleSolution, metrics.TeacherConflicts)
	}
	return advisory
}
