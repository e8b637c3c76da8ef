package engine

import (
	"math/rand"

	"timetableweaver/pkg/model"
)

// swapAttempts bounds the random probing for a swappable pair of cells.
// When every attempt misses, the unchanged clone is returned as a
// zero-delta candidate.
const swapAttempts = 10

// mutator produces neighbouring candidate schedules. Repairs target a
// random conflicted cell; swaps rearrange occupied cells of one class.
// Every result is a compact clone with unchanged per-class cell counts.
type mutator struct {
	cfg  model.Config
	eval *evaluator
	init *initializer
}

func newMutator(cfg model.Config, eval *evaluator, init *initializer) *mutator {
	return &mutator{cfg: cfg, eval: eval, init: init}
}

func (mu *mutator) Mutate(schedule *model.Schedule, rng *rand.Rand) *model.Schedule {
	clone := schedule.Clone()
	if len(mu.cfg.Classes) == 0 {
		return clone
	}
	if cells := mu.eval.ConflictCells(clone); len(cells) > 0 {
		mu.repair(clone, cells[rng.Intn(len(cells))], rng)
	} else {
		mu.swap(clone, rng)
	}
	return clone
}

// repair relocates the lesson of a conflicted cell to the first other day
// whose next empty period is feasible for it, or rebuilds the class when no
// such day exists.
func (mu *mutator) repair(schedule *model.Schedule, cell conflictCell, rng *rand.Rand) {
	lessonIdx := schedule.At(cell.Class, cell.Day, cell.Period)
	class := mu.cfg.Classes[cell.Class]
	lesson := class.Lessons[lessonIdx]
	teacher, _ := mu.cfg.TeacherByName(lesson.Teacher)

	for day := 0; day < schedule.Days; day++ {
		// Compaction slides a moved lesson onto the first empty period of its
		// new day, so that is the cell checked; within its own day the lesson
		// would only shift inside the occupied prefix.
		if period := len(mu.occupiedPeriods(schedule, cell.Class, day)); day != cell.Day && period < schedule.Periods {
			if !teacher.Availability.Get(day, period) || !class.Availability.Get(day, period) {
				continue
			}
			if !mu.eval.teacherFreeAt(schedule, lesson.Teacher, day, period, cell.Class) {
				continue
			}
			schedule.SetCell(cell.Class, cell.Day, cell.Period, model.EmptyCell)
			schedule.SetCell(cell.Class, day, period, lessonIdx)
			schedule.CompactClass(cell.Class)
			return
		}
	}

	mu.init.SeedClass(schedule, cell.Class, rng)
}

func (mu *mutator) swap(schedule *model.Schedule, rng *rand.Rand) {
	if rng.Float64() < 0.5 {
		mu.swapWithinDay(schedule, rng)
	} else {
		mu.swapAcrossDays(schedule, rng)
	}
}

// swapWithinDay exchanges two occupied periods of one day. Both cells stay
// inside the occupied prefix, so no compaction is needed.
func (mu *mutator) swapWithinDay(schedule *model.Schedule, rng *rand.Rand) {
	for attempt := 0; attempt < swapAttempts; attempt++ {
		classIdx := rng.Intn(len(mu.cfg.Classes))
		day := rng.Intn(schedule.Days)
		occupied := mu.occupiedPeriods(schedule, classIdx, day)
		if len(occupied) < 2 {
			continue
		}
		i := rng.Intn(len(occupied))
		j := rng.Intn(len(occupied) - 1)
		if j >= i {
			j++
		}
		p1, p2 := occupied[i], occupied[j]
		l1 := schedule.At(classIdx, day, p1)
		l2 := schedule.At(classIdx, day, p2)
		schedule.SetCell(classIdx, day, p1, l2)
		schedule.SetCell(classIdx, day, p2, l1)
		return
	}
}

// swapAcrossDays exchanges one occupied period of each of two days, only
// when both lessons' teachers stay available and unbooked at their new
// cells.
func (mu *mutator) swapAcrossDays(schedule *model.Schedule, rng *rand.Rand) {
	if schedule.Days < 2 {
		return
	}
	for attempt := 0; attempt < swapAttempts; attempt++ {
		classIdx := rng.Intn(len(mu.cfg.Classes))
		d1 := rng.Intn(schedule.Days)
		d2 := rng.Intn(schedule.Days - 1)
		if d2 >= d1 {
			d2++
		}
		occupied1 := mu.occupiedPeriods(schedule, classIdx, d1)
		occupied2 := mu.occupiedPeriods(schedule, classIdx, d2)
		if len(occupied1) == 0 || len(occupied2) == 0 {
			continue
		}
		p1 := occupied1[rng.Intn(len(occupied1))]
		p2 := occupied2[rng.Intn(len(occupied2))]
		l1 := schedule.At(classIdx, d1, p1)
		l2 := schedule.At(classIdx, d2, p2)

		class := mu.cfg.Classes[classIdx]
		teacher1, _ := mu.cfg.TeacherByName(class.Lessons[l1].Teacher)
		teacher2, _ := mu.cfg.TeacherByName(class.Lessons[l2].Teacher)
		if !teacher1.Availability.Get(d2, p2) || !teacher2.Availability.Get(d1, p1) {
			continue
		}
		if !mu.eval.teacherFreeAt(schedule, class.Lessons[l1].Teacher, d2, p2, classIdx) {
			continue
		}
		if !mu.eval.teacherFreeAt(schedule, class.Lessons[l2].Teacher, d1, p1, classIdx) {
			continue
		}

		schedule.SetCell(classIdx, d1, p1, l2)
		schedule.SetCell(classIdx, d2, p2, l1)
		return
	}
}

func (mu *mutator) occupiedPeriods(schedule *model.Schedule, classIdx, day int) []int {
	var periods []int
	for period := 0; period < schedule.Periods; period++ {
		if schedule.At(classIdx, day, period) != model.EmptyCell {
			periods = append(periods, period)
		}
	}
	return periods
}
