package engine

import "timetableweaver/pkg/model"

// emptySpaceWeight penalises interior gaps far above every other term so
// that a gapped schedule never outranks a compact one.
const emptySpaceWeight = 1000

// Metrics are the penalty terms of one evaluated schedule.
type Metrics struct {
	TeacherConflicts int
	Unscheduled      int
	EmptySpace       int
	Adjacency        float64
	FreeFirstPeriods int
}

// Fitness is the scalar objective, lower is better. Conflicts dominate the
// soft terms; adjacency is folded in at its reported magnitude.
func (m Metrics) Fitness() float64 {
	return float64(50*m.TeacherConflicts+2*m.Unscheduled+m.EmptySpace+5*m.FreeFirstPeriods) + m.Adjacency
}

type conflictCell struct {
	Class  int
	Day    int
	Period int
}

// evaluator scores schedules against one configuration. Teacher lookups go
// through a prebuilt name index so the hot path never searches by name.
type evaluator struct {
	cfg          model.Config
	teacherIndex map[string]int
}

func newEvaluator(cfg model.Config) *evaluator {
	return &evaluator{cfg: cfg, teacherIndex: cfg.TeacherIndex()}
}

func (e *evaluator) Evaluate(schedule *model.Schedule) Metrics {
	var metrics Metrics

	for classIdx, class := range e.cfg.Classes {
		occupied := 0
		for day := 0; day < schedule.Days; day++ {
			first, last := -1, -1
			for period := 0; period < schedule.Periods; period++ {
				lessonIdx := schedule.At(classIdx, day, period)
				if lessonIdx == model.EmptyCell {
					continue
				}
				occupied++
				if first < 0 {
					first = period
				}
				last = period

				lesson := class.Lessons[lessonIdx]
				teacher := e.cfg.Teachers[e.teacherIndex[lesson.Teacher]]
				if !teacher.Availability.Get(day, period) || !class.Availability.Get(day, period) {
					metrics.TeacherConflicts++
				}

				if period+1 < schedule.Periods {
					next := schedule.At(classIdx, day, period+1)
					if next != model.EmptyCell && class.Lessons[next].Subject == lesson.Subject {
						metrics.Adjacency += 0.5
					}
				}
			}

			if first >= 0 {
				for period := first; period <= last; period++ {
					if schedule.At(classIdx, day, period) == model.EmptyCell {
						metrics.EmptySpace += emptySpaceWeight
					}
				}
			}
			if schedule.At(classIdx, day, 0) == model.EmptyCell {
				metrics.FreeFirstPeriods++
			}
		}
		metrics.Unscheduled += class.TotalPeriods() - occupied
	}

	metrics.TeacherConflicts += e.countDoubleBookings(schedule, nil)
	return metrics
}

// ConflictCells lists every cell participating in at least one conflict,
// availability violations first, in deterministic scan order.
func (e *evaluator) ConflictCells(schedule *model.Schedule) []conflictCell {
	var cells []conflictCell
	seen := make(map[conflictCell]bool)
	add := func(cell conflictCell) {
		if !seen[cell] {
			seen[cell] = true
			cells = append(cells, cell)
		}
	}

	for classIdx, class := range e.cfg.Classes {
		for day := 0; day < schedule.Days; day++ {
			for period := 0; period < schedule.Periods; period++ {
				lessonIdx := schedule.At(classIdx, day, period)
				if lessonIdx == model.EmptyCell {
					continue
				}
				lesson := class.Lessons[lessonIdx]
				teacher := e.cfg.Teachers[e.teacherIndex[lesson.Teacher]]
				if !teacher.Availability.Get(day, period) || !class.Availability.Get(day, period) {
					add(conflictCell{Class: classIdx, Day: day, Period: period})
				}
			}
		}
	}

	e.countDoubleBookings(schedule, add)
	return cells
}

// countDoubleBookings returns the per-slot excess bookings across all
// teachers. When report is non-nil, every cell of a double-booked teacher
// is passed to it.
func (e *evaluator) countDoubleBookings(schedule *model.Schedule, report func(conflictCell)) int {
	excess := 0
	counts := make([]int, len(e.cfg.Teachers))
	holders := make([][]conflictCell, len(e.cfg.Teachers))
	var touched []int

	for day := 0; day < schedule.Days; day++ {
		for period := 0; period < schedule.Periods; period++ {
			touched = touched[:0]
			for classIdx, class := range e.cfg.Classes {
				lessonIdx := schedule.At(classIdx, day, period)
				if lessonIdx == model.EmptyCell {
					continue
				}
				teacherIdx := e.teacherIndex[class.Lessons[lessonIdx].Teacher]
				if counts[teacherIdx] == 0 {
					touched = append(touched, teacherIdx)
				}
				counts[teacherIdx]++
				if report != nil {
					holders[teacherIdx] = append(holders[teacherIdx], conflictCell{Class: classIdx, Day: day, Period: period})
				}
			}
			for _, teacherIdx := range touched {
				if counts[teacherIdx] > 1 {
					excess += counts[teacherIdx] - 1
					if report != nil {
						for _, cell := range holders[teacherIdx] {
							report(cell)
						}
					}
				}
				counts[teacherIdx] = 0
				if report != nil {
					holders[teacherIdx] = holders[teacherIdx][:0]
				}
			}
		}
	}
	return excess
}

// teacherFreeAt reports whether the teacher of a lesson is not already
// teaching any class at the slot, optionally ignoring one cell of one
// class (the cell being moved).
func (e *evaluator) teacherFreeAt(schedule *model.Schedule, teacher string, day, period, ignoreClass int) bool {
	teacherIdx := e.teacherIndex[teacher]
	for classIdx, class := range e.cfg.Classes {
		if classIdx == ignoreClass {
			continue
		}
		lessonIdx := schedule.At(classIdx, day, period)
		if lessonIdx == model.EmptyCell {
			continue
		}
		if e.teacherIndex[class.Lessons[lessonIdx].Teacher] == teacherIdx {
			return false
		}
	}
	return true
}
