package attendance

import (
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// recordFilter is a validated AnalysisFilter with its dates parsed.
type recordFilter struct {
	employeeID *string
	date       *attendance.Date
	month      string
	year       *int
	start      *attendance.Date
	end        *attendance.Date
}

func compileFilter(f attendance.AnalysisFilter) (recordFilter, error) {
	rf := recordFilter{employeeID: f.EmployeeID, year: f.Year}

	parse := func(s *string) (*attendance.Date, error) {
		if s == nil || *s == "" {
			return nil, nil
		}
		d, err := attendance.ParseDate(*s)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}

	var err error
	if rf.date, err = parse(f.Date); err != nil {
		return rf, err
	}
	if rf.start, err = parse(f.StartDate); err != nil {
		return rf, err
	}
	if rf.end, err = parse(f.EndDate); err != nil {
		return rf, err
	}
	if f.Month != nil {
		rf.month = *f.Month
	}
	return rf, nil
}

func (rf recordFilter) match(r attendance.AttendanceRecord) bool {
	if rf.employeeID != nil && r.EmployeeID != *rf.employeeID {
		return false
	}
	if rf.date != nil && r.Date != *rf.date {
		return false
	}
	if rf.month != "" && r.Date.MonthKey() != rf.month {
		return false
	}
	if rf.year != nil && r.Date.Year != *rf.year {
		return false
	}
	if rf.start != nil && r.Date.Before(*rf.start) {
		return false
	}
	if rf.end != nil && r.Date.After(*rf.end) {
		return false
	}
	return true
}

// ApplyFilter keeps the records matching every criterion set in f, preserving
// order. An empty filter returns records unchanged.
func ApplyFilter(records []attendance.AttendanceRecord, f attendance.AnalysisFilter) ([]attendance.AttendanceRecord, error) {
	if f.IsEmpty() {
		return records, nil
	}
	rf, err := compileFilter(f)
	if err != nil {
		return nil, err
	}

	filtered := make([]attendance.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if rf.match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
