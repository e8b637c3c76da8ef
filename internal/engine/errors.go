package engine

import "errors"

// Configuration errors raised before the search begins.
var (
	ErrCapacityExceeded         = errors.New("class demand exceeds weekly capacity")
	ErrUnknownTeacher           = errors.New("lesson references unknown teacher")
	ErrInfeasibleByConstruction = errors.New("required teacher has no available slots")
	ErrOutOfRangeDimension      = errors.New("grid dimension out of range")
)

// ErrEmptyInput is advisory: generation still returns a valid empty
// schedule alongside it.
var ErrEmptyInput = errors.New("configuration has no schedulable lessons")

// ErrNoFeasibleSolution is returned together with the best schedule found
// when teacher conflicts remain after the search budget is spent.
var ErrNoFeasibleSolution = errors.New("no conflict-free schedule found within budget")
