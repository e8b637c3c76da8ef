package csvio

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"timetableweaver/pkg/model"
)

// ScheduleCSVRow is one occupied cell of an exported schedule.
type ScheduleCSVRow struct {
	Class   string `csv:"class"`
	Day     int    `csv:"day"`
	Period  int    `csv:"period"`
	Subject string `csv:"subject"`
	Teacher string `csv:"teacher"`
}

// ScheduleRows flattens the occupied cells in (class, day, period) order.
func ScheduleRows(cfg model.Config, schedule *model.Schedule) []ScheduleCSVRow {
	var rows []ScheduleCSVRow
	for classIdx, class := range cfg.Classes {
		if classIdx >= schedule.Classes() {
			break
		}
		for day := 0; day < schedule.Days; day++ {
			for period := 0; period < schedule.Periods; period++ {
				lessonIdx := schedule.At(classIdx, day, period)
				if lessonIdx == model.EmptyCell {
					continue
				}
				lesson := class.Lessons[lessonIdx]
				rows = append(rows, ScheduleCSVRow{
					Class:   class.Name,
					Day:     day,
					Period:  period,
					Subject: lesson.Subject,
					Teacher: lesson.Teacher,
				})
			}
		}
	}
	return rows
}

// ExportSchedule writes the occupied cells to a CSV file at path.
func ExportSchedule(cfg model.Config, schedule *model.Schedule, path string) error {
	rows := ScheduleRows(cfg, schedule)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create schedule file: %w", err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("write schedule file: %w", err)
	}
	return nil
}
