package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

//** Persisted-state document types

type AvailabilityInput struct {
	Days          int      `mapstructure:"days" validate:"min=1,max=7"`
	PeriodsPerDay int      `mapstructure:"periods_per_day" validate:"min=1,max=32"`
	Buffer        []uint32 `mapstructure:"buffer" validate:"required"`
}

type TeacherInput struct {
	Name         string            `mapstructure:"name" validate:"required"`
	Availability AvailabilityInput `mapstructure:"availability"`
}

type LessonInput struct {
	Name           string `mapstructure:"name" validate:"required"`
	TeacherName    string `mapstructure:"teacher_name" validate:"required"`
	PeriodsPerWeek int    `mapstructure:"periods_per_week" validate:"min=1"`
}

type ClassInput struct {
	Name         string             `mapstructure:"name" validate:"required"`
	Availability *AvailabilityInput `mapstructure:"availability"`
	Lessons      []LessonInput      `mapstructure:"lessons" validate:"dive"`
}

// ConfigInput is the JSON document a configuration is persisted as.
type ConfigInput struct {
	Name          string         `mapstructure:"name"`
	Days          int            `mapstructure:"days" validate:"min=1,max=7"`
	PeriodsPerDay int            `mapstructure:"periods_per_day" validate:"min=1,max=32"`
	Teachers      []TeacherInput `mapstructure:"teachers" validate:"dive"`
	Classes       []ClassInput   `mapstructure:"classes" validate:"dive"`
}

var inputValidator = validator.New()

// ConfigFromJSON reads and decodes a persisted configuration file.
func ConfigFromJSON(file string) (Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("read configuration: %w", err)
	}
	return ConfigFromJSONBytes(bytes)
}

// ConfigFromJSONBytes decodes a persisted configuration document.
func ConfigFromJSONBytes(bytes []byte) (Config, error) {
	var document map[string]any
	if err := json.Unmarshal(bytes, &document); err != nil {
		return Config{}, fmt.Errorf("parse configuration: %w", err)
	}

	var input ConfigInput
	if err := mapstructure.Decode(document, &input); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	return input.ToConfig()
}

// ToConfig validates the document and builds the in-memory configuration.
// Class availability defaults to fully available when omitted.
func (input ConfigInput) ToConfig() (Config, error) {
	if err := inputValidator.Struct(input); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := Config{
		Name:          input.Name,
		Days:          input.Days,
		PeriodsPerDay: input.PeriodsPerDay,
	}
	for _, teacher := range input.Teachers {
		availability, err := teacher.Availability.toAvailability()
		if err != nil {
			return Config{}, fmt.Errorf("teacher %q: %w", teacher.Name, err)
		}
		cfg.Teachers = append(cfg.Teachers, Teacher{
			Name:         teacher.Name,
			Availability: availability,
		})
	}
	for _, class := range input.Classes {
		availability := NewFullAvailability(input.Days, input.PeriodsPerDay)
		if class.Availability != nil {
			decoded, err := class.Availability.toAvailability()
			if err != nil {
				return Config{}, fmt.Errorf("class %q: %w", class.Name, err)
			}
			availability = decoded
		}
		lessons := make([]Lesson, 0, len(class.Lessons))
		for _, lesson := range class.Lessons {
			lessons = append(lessons, Lesson{
				Subject:        lesson.Name,
				Teacher:        lesson.TeacherName,
				PeriodsPerWeek: lesson.PeriodsPerWeek,
			})
		}
		cfg.Classes = append(cfg.Classes, Class{
			Name:         class.Name,
			Availability: availability,
			Lessons:      lessons,
		})
	}
	return cfg, nil
}

func (input AvailabilityInput) toAvailability() (Availability, error) {
	if len(input.Buffer) != input.Days {
		return Availability{}, fmt.Errorf("availability buffer holds %v words for %v days", len(input.Buffer), input.Days)
	}
	availability := NewAvailability(input.Days, input.PeriodsPerDay)
	limit := availability.dayMask()
	for day, word := range input.Buffer {
		if word&^limit != 0 {
			return Availability{}, fmt.Errorf("availability day %v sets bits beyond period %v", day, input.PeriodsPerDay)
		}
		availability.words[day] = word
	}
	return availability, nil
}

// AvailabilityDocument is the persisted form of an availability mask.
func AvailabilityDocument(a Availability) AvailabilityInput {
	buffer := make([]uint32, a.Days())
	for day := range buffer {
		buffer[day] = a.Word(day)
	}
	return AvailabilityInput{
		Days:          a.Days(),
		PeriodsPerDay: a.Periods(),
		Buffer:        buffer,
	}
}
