package model

import "github.com/samber/lo"

// Config is a complete generation problem: the weekly grid dimensions plus
// the teachers and classes scheduled on it.
type Config struct {
	Name          string
	Days          int
	PeriodsPerDay int
	Teachers      []Teacher
	Classes       []Class
}

// TeacherByName returns the teacher with the given name, or false when no
// such teacher exists.
func (c Config) TeacherByName(name string) (Teacher, bool) {
	return lo.Find(c.Teachers, func(teacher Teacher) bool {
		return teacher.Name == name
	})
}

// TeacherIndex maps teacher names to their position in Teachers.
func (c Config) TeacherIndex() map[string]int {
	index := make(map[string]int, len(c.Teachers))
	for i, teacher := range c.Teachers {
		index[teacher.Name] = i
	}
	return index
}
