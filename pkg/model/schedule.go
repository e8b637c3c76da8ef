package model

import (
	"fmt"
	"strings"
)

// EmptyCell marks an unoccupied grid cell.
const EmptyCell = -1

// Schedule is a per-class weekly grid. Each class owns Days*Periods cells
// laid out row-major by day; a cell holds the index of a lesson within that
// class's Lessons slice, or EmptyCell.
type Schedule struct {
	Days    int
	Periods int
	Cells   [][]int
}

// NewSchedule returns an all-empty grid for the given number of classes.
func NewSchedule(days, periods, classes int) *Schedule {
	cells := make([][]int, classes)
	for class := 0; class < classes; class++ {
		row := make([]int, days*periods)
		for i := range row {
			row[i] = EmptyCell
		}
		cells[class] = row
	}
	return &Schedule{Days: days, Periods: periods, Cells: cells}
}

// Classes returns the number of class rows in the grid.
func (s *Schedule) Classes() int {
	return len(s.Cells)
}

// At returns the lesson index stored at the cell, or EmptyCell.
func (s *Schedule) At(class, day, period int) int {
	return s.Cells[class][day*s.Periods+period]
}

// SetCell stores a lesson index (or EmptyCell) at the cell.
func (s *Schedule) SetCell(class, day, period, lesson int) {
	s.Cells[class][day*s.Periods+period] = lesson
}

// Clone copies the grid cells. Dimensions are shared by value.
func (s *Schedule) Clone() *Schedule {
	cells := make([][]int, len(s.Cells))
	for class, row := range s.Cells {
		cells[class] = make([]int, len(row))
		copy(cells[class], row)
	}
	return &Schedule{Days: s.Days, Periods: s.Periods, Cells: cells}
}

// Compact rewrites every (class, day) row so occupied cells form a prefix,
// preserving their relative order within the day.
func (s *Schedule) Compact() {
	for class := range s.Cells {
		s.CompactClass(class)
	}
}

// CompactClass compacts the rows of a single class.
func (s *Schedule) CompactClass(class int) {
	row := s.Cells[class]
	for day := 0; day < s.Days; day++ {
		start := day * s.Periods
		write := start
		for period := 0; period < s.Periods; period++ {
			if lesson := row[start+period]; lesson != EmptyCell {
				row[write] = lesson
				write++
			}
		}
		for ; write < start+s.Periods; write++ {
			row[write] = EmptyCell
		}
	}
}

// ValidateNoGaps reports an error naming the first (class, day) row whose
// occupied cells do not form a prefix.
func (s *Schedule) ValidateNoGaps() error {
	for class, row := range s.Cells {
		for day := 0; day < s.Days; day++ {
			start := day * s.Periods
			seenEmpty := false
			for period := 0; period < s.Periods; period++ {
				if row[start+period] == EmptyCell {
					seenEmpty = true
				} else if seenEmpty {
					return fmt.Errorf("schedule: gap in class %v day %v", class, day)
				}
			}
		}
	}
	return nil
}

// OccupiedCount returns the number of occupied cells of one class.
func (s *Schedule) OccupiedCount(class int) int {
	count := 0
	for _, lesson := range s.Cells[class] {
		if lesson != EmptyCell {
			count++
		}
	}
	return count
}

// Render formats the grid with class and lesson names resolved against the
// configuration.
func (s *Schedule) Render(cfg Config) string {
	var builder strings.Builder
	for classIdx, class := range cfg.Classes {
		if classIdx >= len(s.Cells) {
			break
		}
		fmt.Fprintf(&builder, "%v:\n", class.Name)
		for day := 0; day < s.Days; day++ {
			fmt.Fprintf(&builder, "  Day %v:", day)
			for period := 0; period < s.Periods; period++ {
				lesson := s.At(classIdx, day, period)
				if lesson == EmptyCell {
					builder.WriteString(" -")
				} else {
					fmt.Fprintf(&builder, " %v(%v)", class.Lessons[lesson].Subject, class.Lessons[lesson].Teacher)
				}
			}
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}
