package model

import "github.com/samber/lo"

// Class groups the lessons taught to one student group. Availability marks
// the slots in which the class may be scheduled at all.
type Class struct {
	Name         string
	Availability Availability
	Lessons      []Lesson
}

// TotalPeriods is the weekly period demand of the class, the sum of its
// lessons' PeriodsPerWeek.
func (c Class) TotalPeriods() int {
	return lo.SumBy(c.Lessons, func(lesson Lesson) int {
		return lesson.PeriodsPerWeek
	})
}
