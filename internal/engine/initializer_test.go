package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetableweaver/pkg/model"
)

func TestInitializerSeed(t *testing.T) {
	t.Run("Test I: seeded schedules are gap-free with full occupancy", func(t *testing.T) {
		// Arrange
		cfg := model.Config{
			Days: 5, PeriodsPerDay: 6,
			Teachers: []model.Teacher{fullTeacher("Alice", 5, 6), fullTeacher("Bob", 5, 6)},
			Classes: []model.Class{
				fullClass("C1", 5, 6,
					model.Lesson{Subject: "Math", Teacher: "Alice", PeriodsPerWeek: 4},
					model.Lesson{Subject: "Eng", Teacher: "Bob", PeriodsPerWeek: 3}),
				fullClass("C2", 5, 6,
					model.Lesson{Subject: "Math", Teacher: "Alice", PeriodsPerWeek: 2}),
			},
		}
		eval := newEvaluator(cfg)
		init := newInitializer(cfg, eval)

		// Act
		schedule := init.Seed(rand.New(rand.NewSource(7)))

		// Assert
		require.NoError(t, schedule.ValidateNoGaps())
		assert.Equal(t, 7, schedule.OccupiedCount(0))
		assert.Equal(t, 2, schedule.OccupiedCount(1))
	})

	t.Run("Test II: most-constrained teacher is placed first", func(t *testing.T) {
		// Alice teaches only slot (0, 0); placement must reserve it for her.
		alice := model.Teacher{Name: "Alice", Availability: model.NewAvailability(5, 6)}
		alice.Availability.Set(0, 0, true)
		cfg := model.Config{
			Days: 5, PeriodsPerDay: 6,
			Teachers: []model.Teacher{alice, fullTeacher("Bob", 5, 6)},
			Classes: []model.Class{
				fullClass("C1", 5, 6,
					model.Lesson{Subject: "Math", Teacher: "Alice", PeriodsPerWeek: 1},
					model.Lesson{Subject: "Eng", Teacher: "Bob", PeriodsPerWeek: 1}),
			},
		}
		eval := newEvaluator(cfg)
		init := newInitializer(cfg, eval)

		for seed := int64(1); seed <= 5; seed++ {
			schedule := init.Seed(rand.New(rand.NewSource(seed)))

			assert.Equal(t, 0, schedule.At(0, 0, 0), "seed %v", seed)
			assert.Equal(t, 0, eval.Evaluate(schedule).TeacherConflicts, "seed %v", seed)
		}
	})

	t.Run("Test III: deferred requests land in empty cells", func(t *testing.T) {
		// One teacher, one slot, two classes: one placement must conflict
		// but both lessons end up on the grid.
		cfg := model.Config{
			Days: 1, PeriodsPerDay: 1,
			Teachers: []model.Teacher{fullTeacher("T1", 1, 1)},
			Classes: []model.Class{
				fullClass("C1", 1, 1, model.Lesson{Subject: "X", Teacher: "T1", PeriodsPerWeek: 1}),
				fullClass("C2", 1, 1, model.Lesson{Subject: "X", Teacher: "T1", PeriodsPerWeek: 1}),
			},
		}
		eval := newEvaluator(cfg)
		init := newInitializer(cfg, eval)

		schedule := init.Seed(rand.New(rand.NewSource(3)))
		metrics := eval.Evaluate(schedule)

		assert.Equal(t, 0, metrics.Unscheduled)
		assert.Equal(t, 1, metrics.TeacherConflicts)
	})

	t.Run("Test IV: class availability is honoured", func(t *testing.T) {
		class := fullClass("C1", 2, 2, model.Lesson{Subject: "Math", Teacher: "T1", PeriodsPerWeek: 2})
		class.Availability.SetDay(1, false)
		cfg := model.Config{
			Days: 2, PeriodsPerDay: 2,
			Teachers: []model.Teacher{fullTeacher("T1", 2, 2)},
			Classes:  []model.Class{class},
		}
		eval := newEvaluator(cfg)
		init := newInitializer(cfg, eval)

		schedule := init.Seed(rand.New(rand.NewSource(11)))

		assert.Equal(t, 0, eval.Evaluate(schedule).TeacherConflicts)
		assert.Equal(t, model.EmptyCell, schedule.At(0, 1, 0))
		assert.Equal(t, model.EmptyCell, schedule.At(0, 1, 1))
	})
}
