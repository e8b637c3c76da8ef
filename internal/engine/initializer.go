package engine

import (
	"math/rand"
	"sort"

	"timetableweaver/pkg/model"
)

// initializer builds gap-free starting schedules by most-constrained-first
// placement. It may leave conflicts for the search to repair, never gaps.
type initializer struct {
	cfg  model.Config
	eval *evaluator
}

func newInitializer(cfg model.Config, eval *evaluator) *initializer {
	return &initializer{cfg: cfg, eval: eval}
}

type placementRequest struct {
	lessonIdx    int
	subject      string
	teacher      string
	teacherSlots int
}

// Seed populates every class and compacts the result.
func (in *initializer) Seed(rng *rand.Rand) *model.Schedule {
	schedule := model.NewSchedule(in.cfg.Days, in.cfg.PeriodsPerDay, len(in.cfg.Classes))
	for classIdx := range in.cfg.Classes {
		in.SeedClass(schedule, classIdx, rng)
	}
	return schedule
}

// SeedClass clears one class's cells and re-places all its lessons.
func (in *initializer) SeedClass(schedule *model.Schedule, classIdx int, rng *rand.Rand) {
	class := in.cfg.Classes[classIdx]
	for day := 0; day < schedule.Days; day++ {
		for period := 0; period < schedule.Periods; period++ {
			schedule.SetCell(classIdx, day, period, model.EmptyCell)
		}
	}

	//** Expand lessons into single-period placement requests
	var requests []placementRequest
	for lessonIdx, lesson := range class.Lessons {
		teacher, _ := in.cfg.TeacherByName(lesson.Teacher)
		for i := 0; i < lesson.PeriodsPerWeek; i++ {
			requests = append(requests, placementRequest{
				lessonIdx:    lessonIdx,
				subject:      lesson.Subject,
				teacher:      lesson.Teacher,
				teacherSlots: teacher.Availability.Count(),
			})
		}
	}

	//** Most-constrained teacher first, subject name breaking ties
	sort.SliceStable(requests, func(i, j int) bool {
		if requests[i].teacherSlots != requests[j].teacherSlots {
			return requests[i].teacherSlots < requests[j].teacherSlots
		}
		return requests[i].subject < requests[j].subject
	})

	//** First pass: shuffled first-fit over the teacher's slots
	var deferred []placementRequest
	for _, request := range requests {
		teacher, _ := in.cfg.TeacherByName(request.teacher)
		slots := teacher.Availability.Slots()
		rng.Shuffle(len(slots), func(i, j int) {
			slots[i], slots[j] = slots[j], slots[i]
		})

		placed := false
		for _, slot := range slots {
			if !class.Availability.Get(slot.Day, slot.Period) {
				continue
			}
			if schedule.At(classIdx, slot.Day, slot.Period) != model.EmptyCell {
				continue
			}
			if !in.eval.teacherFreeAt(schedule, request.teacher, slot.Day, slot.Period, -1) {
				continue
			}
			schedule.SetCell(classIdx, slot.Day, slot.Period, request.lessonIdx)
			placed = true
			break
		}
		if !placed {
			deferred = append(deferred, request)
		}
	}

	//** Second pass: dump deferred requests into any empty cell, conflicts
	//** left for the search to repair
	for _, request := range deferred {
		in.placeAnywhere(schedule, classIdx, request.lessonIdx)
	}

	schedule.CompactClass(classIdx)
}

func (in *initializer) placeAnywhere(schedule *model.Schedule, classIdx, lessonIdx int) {
	for day := 0; day < schedule.Days; day++ {
		for period := 0; period < schedule.Periods; period++ {
			if schedule.At(classIdx, day, period) == model.EmptyCell {
				schedule.SetCell(classIdx, day, period, lessonIdx)
				return
			}
		}
	}
}
