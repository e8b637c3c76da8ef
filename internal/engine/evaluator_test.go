package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timetableweaver/pkg/model"
)

func fullTeacher(name string, days, periods int) model.Teacher {
	return model.Teacher{Name: name, Availability: model.NewFullAvailability(days, periods)}
}

func fullClass(name string, days, periods int, lessons ...model.Lesson) model.Class {
	return model.Class{Name: name, Availability: model.NewFullAvailability(days, periods), Lessons: lessons}
}

func TestEvaluate(t *testing.T) {
	t.Run("Test I: conflict-free compact schedule scores only soft terms", func(t *testing.T) {
		// Arrange
		cfg := model.Config{
			Days: 2, PeriodsPerDay: 3,
			Teachers: []model.Teacher{fullTeacher("Ada", 2, 3)},
			Classes: []model.Class{
				fullClass("9A", 2, 3, model.Lesson{Subject: "Math", Teacher: "Ada", PeriodsPerWeek: 2}),
			},
		}
		schedule := model.NewSchedule(2, 3, 1)
		schedule.SetCell(0, 0, 0, 0)
		schedule.SetCell(0, 1, 0, 0)

		// Act
		metrics := newEvaluator(cfg).Evaluate(schedule)

		// Assert
		assert.Equal(t, 0, metrics.TeacherConflicts)
		assert.Equal(t, 0, metrics.Unscheduled)
		assert.Equal(t, 0, metrics.EmptySpace)
		assert.Equal(t, 0, metrics.FreeFirstPeriods)
		assert.Equal(t, 0.0, metrics.Adjacency)
		assert.Equal(t, 0.0, metrics.Fitness())
	})

	t.Run("Test II: availability violation counts as a conflict", func(t *testing.T) {
		unavailable := model.Teacher{Name: "Ada", Availability: model.NewAvailability(1, 2)}
		unavailable.Availability.Set(0, 0, true)
		cfg := model.Config{
			Days: 1, PeriodsPerDay: 2,
			Teachers: []model.Teacher{unavailable},
			Classes: []model.Class{
				fullClass("9A", 1, 2, model.Lesson{Subject: "Math", Teacher: "Ada", PeriodsPerWeek: 1}),
			},
		}
		schedule := model.NewSchedule(1, 2, 1)
		schedule.SetCell(0, 0, 0, 0)
		schedule.SetCell(0, 0, 1, 0)

		metrics := newEvaluator(cfg).Evaluate(schedule)

		assert.Equal(t, 1, metrics.TeacherConflicts)
	})

	t.Run("Test III: class unavailability counts as a conflict", func(t *testing.T) {
		class := fullClass("9A", 1, 2, model.Lesson{Subject: "Math", Teacher: "Ada", PeriodsPerWeek: 1})
		class.Availability.Set(0, 0, false)
		cfg := model.Config{
			Days: 1, PeriodsPerDay: 2,
			Teachers: []model.Teacher{fullTeacher("Ada", 1, 2)},
			Classes:  []model.Class{class},
		}
		schedule := model.NewSchedule(1, 2, 1)
		schedule.SetCell(0, 0, 0, 0)

		metrics := newEvaluator(cfg).Evaluate(schedule)

		assert.Equal(t, 1, metrics.TeacherConflicts)
	})

	t.Run("Test IV: double-booking contributes the excess per slot", func(t *testing.T) {
		cfg := model.Config{
			Days: 1, PeriodsPerDay: 1,
			Teachers: []model.Teacher{fullTeacher("Ada", 1, 1)},
			Classes: []model.Class{
				fullClass("9A", 1, 1, model.Lesson{Subject: "X", Teacher: "Ada", PeriodsPerWeek: 1}),
				fullClass("9B", 1, 1, model.Lesson{Subject: "X", Teacher: "Ada", PeriodsPerWeek: 1}),
				fullClass("9C", 1, 1, model.Lesson{Subject: "X", Teacher: "Ada", PeriodsPerWeek: 1}),
			},
		}
		schedule := model.NewSchedule(1, 1, 3)
		for class := 0; class < 3; class++ {
			schedule.SetCell(class, 0, 0, 0)
		}

		metrics := newEvaluator(cfg).Evaluate(schedule)

		assert.Equal(t, 2, metrics.TeacherConflicts)
	})

	t.Run("Test V: interior gaps carry the safety weight", func(t *testing.T) {
		cfg := model.Config{
			Days: 1, PeriodsPerDay: 3,
			Teachers: []model.Teacher{fullTeacher("Ada", 1, 3)},
			Classes: []model.Class{
				fullClass("9A", 1, 3, model.Lesson{Subject: "Math", Teacher: "Ada", PeriodsPerWeek: 2}),
			},
		}
		schedule := model.NewSchedule(1, 3, 1)
		schedule.SetCell(0, 0, 0, 0)
		schedule.SetCell(0, 0, 2, 0)

		metrics := newEvaluator(cfg).Evaluate(schedule)

		assert.Equal(t, emptySpaceWeight, metrics.EmptySpace)
	})

	t.Run("Test VI: unscheduled and free first periods are counted", func(t *testing.T) {
		cfg := model.Config{
			Days: 2, PeriodsPerDay: 2,
			Teachers: []model.Teacher{fullTeacher("Ada", 2, 2)},
			Classes: []model.Class{
				fullClass("9A", 2, 2, model.Lesson{Subject: "Math", Teacher: "Ada", PeriodsPerWeek: 3}),
			},
		}
		schedule := model.NewSchedule(2, 2, 1)
		schedule.SetCell(0, 0, 0, 0)

		metrics := newEvaluator(cfg).Evaluate(schedule)

		assert.Equal(t, 2, metrics.Unscheduled)
		assert.Equal(t, 1, metrics.FreeFirstPeriods)
		assert.Equal(t, float64(2*2+5*1), metrics.Fitness())
	})

	t.Run("Test VII: spreading a subject scores below clustering it", func(t *testing.T) {
		cfg := model.Config{
			Days: 1, PeriodsPerDay: 3,
			Teachers: []model.Teacher{fullTeacher("T1", 1, 3)},
			Classes: []model.Class{
				fullClass("C1", 1, 3,
					model.Lesson{Subject: "Math", Teacher: "T1", PeriodsPerWeek: 2},
					model.Lesson{Subject: "Eng", Teacher: "T1", PeriodsPerWeek: 1}),
			},
		}
		eval := newEvaluator(cfg)

		spread := model.NewSchedule(1, 3, 1)
		spread.SetCell(0, 0, 0, 0)
		spread.SetCell(0, 0, 1, 1)
		spread.SetCell(0, 0, 2, 0)

		clustered := model.NewSchedule(1, 3, 1)
		clustered.SetCell(0, 0, 0, 0)
		clustered.SetCell(0, 0, 1, 0)
		clustered.SetCell(0, 0, 2, 1)

		assert.Less(t, eval.Evaluate(spread).Fitness(), eval.Evaluate(clustered).Fitness())
	})
}

func TestConflictCells(t *testing.T) {
	t.Run("Test I: lists each conflicted cell once", func(t *testing.T) {
		cfg := model.Config{
			Days: 1, PeriodsPerDay: 1,
			Teachers: []model.Teacher{fullTeacher("Ada", 1, 1)},
			Classes: []model.Class{
				fullClass("9A", 1, 1, model.Lesson{Subject: "X", Teacher: "Ada", PeriodsPerWeek: 1}),
				fullClass("9B", 1, 1, model.Lesson{Subject: "X", Teacher: "Ada", PeriodsPerWeek: 1}),
			},
		}
		schedule := model.NewSchedule(1, 1, 2)
		schedule.SetCell(0, 0, 0, 0)
		schedule.SetCell(1, 0, 0, 0)

		cells := newEvaluator(cfg).ConflictCells(schedule)

		assert.ElementsMatch(t, []conflictCell{
			{Class: 0, Day: 0, Period: 0},
			{Class: 1, Day: 0, Period: 0},
		}, cells)
	})

	t.Run("Test II: conflict-free schedule yields no cells", func(t *testing.T) {
		cfg := model.Config{
			Days: 1, PeriodsPerDay: 2,
			Teachers: []model.Teacher{fullTeacher("Ada", 1, 2)},
			Classes: []model.Class{
				fullClass("9A", 1, 2, model.Lesson{Subject: "X", Teacher: "Ada", PeriodsPerWeek: 1}),
			},
		}
		schedule := model.NewSchedule(1, 2, 1)
		schedule.SetCell(0, 0, 0, 0)

		assert.Empty(t, newEvaluator(cfg).ConflictCells(schedule))
	})
}
