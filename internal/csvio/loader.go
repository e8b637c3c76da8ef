// Package csvio loads timetable configurations from CSV files and exports
// generated schedules back to CSV.
package csvio

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"timetableweaver/pkg/model"
)

// TeacherRecord is one row of the teachers file. Availability encodes the
// weekly mask as '|'-separated day strings of 0/1 flags, one flag per
// period; an empty field means fully available.
type TeacherRecord struct {
	Name         string `csv:"name"`
	Availability string `csv:"availability"`
}

// LessonRecord is one row of the lessons file. Classes are created in
// order of first appearance.
type LessonRecord struct {
	Class          string `csv:"class"`
	Subject        string `csv:"subject"`
	Teacher        string `csv:"teacher"`
	PeriodsPerWeek int    `csv:"periods_per_week"`
}

// LoadConfig reads the teachers and lessons files into a configuration
// with the given grid dimensions.
func LoadConfig(name, teachersPath, lessonsPath string, days, periodsPerDay int) (model.Config, error) {
	teachersFile, err := os.Open(teachersPath)
	if err != nil {
		return model.Config{}, fmt.Errorf("open teachers file: %w", err)
	}
	defer teachersFile.Close()

	var teacherRecords []*TeacherRecord
	if err := gocsv.UnmarshalFile(teachersFile, &teacherRecords); err != nil {
		return model.Config{}, fmt.Errorf("parse teachers file: %w", err)
	}

	lessonsFile, err := os.Open(lessonsPath)
	if err != nil {
		return model.Config{}, fmt.Errorf("open lessons file: %w", err)
	}
	defer lessonsFile.Close()

	var lessonRecords []*LessonRecord
	if err := gocsv.UnmarshalFile(lessonsFile, &lessonRecords); err != nil {
		return model.Config{}, fmt.Errorf("parse lessons file: %w", err)
	}

	cfg := model.Config{Name: name, Days: days, PeriodsPerDay: periodsPerDay}
	for _, record := range teacherRecords {
		availability, err := parseAvailability(record.Availability, days, periodsPerDay)
		if err != nil {
			return model.Config{}, fmt.Errorf("teacher %q: %w", record.Name, err)
		}
		cfg.Teachers = append(cfg.Teachers, model.Teacher{Name: record.Name, Availability: availability})
	}

	classIndex := make(map[string]int)
	for _, record := range lessonRecords {
		idx, known := classIndex[record.Class]
		if !known {
			idx = len(cfg.Classes)
			classIndex[record.Class] = idx
			cfg.Classes = append(cfg.Classes, model.Class{
				Name:         record.Class,
				Availability: model.NewFullAvailability(days, periodsPerDay),
			})
		}
		cfg.Classes[idx].Lessons = append(cfg.Classes[idx].Lessons, model.Lesson{
			Subject:        record.Subject,
			Teacher:        record.Teacher,
			PeriodsPerWeek: record.PeriodsPerWeek,
		})
	}
	return cfg, nil
}

func parseAvailability(encoded string, days, periodsPerDay int) (model.Availability, error) {
	if encoded == "" {
		return model.NewFullAvailability(days, periodsPerDay), nil
	}

	dayStrings := strings.Split(encoded, "|")
	if len(dayStrings) != days {
		return model.Availability{}, fmt.Errorf("availability has %v day groups, want %v", len(dayStrings), days)
	}

	availability := model.NewAvailability(days, periodsPerDay)
	for day, flags := range dayStrings {
		if len(flags) != periodsPerDay {
			return model.Availability{}, fmt.Errorf("availability day %v has %v flags, want %v", day, len(flags), periodsPerDay)
		}
		for period, flag := range flags {
			switch flag {
			case '1':
				availability.Set(day, period, true)
			case '0':
			default:
				return model.Availability{}, fmt.Errorf("availability day %v has invalid flag %q", day, flag)
			}
		}
	}
	return availability, nil
}
