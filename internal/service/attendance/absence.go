package attendance

import (
	"sort"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// ComputeAbsences walks one employee's calendar from their first to their last
// attended date and emits an entry for every day that was neither attended nor
// the rest day. With no attended dates there is no window and no absences.
func (e Engine) ComputeAbsences(employeeID string, attended []attendance.Date) []attendance.AbsenceEntry {
	if len(attended) == 0 {
		return nil
	}

	seen := make(map[attendance.Date]struct{}, len(attended))
	minDate, maxDate := attended[0], attended[0]
	for _, d := range attended {
		seen[d] = struct{}{}
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	var absences []attendance.AbsenceEntry
	for d := minDate; !d.After(maxDate); d = d.Next() {
		if _, ok := seen[d]; ok {
			continue
		}
		wd := d.Weekday()
		if wd == e.restDay {
			continue
		}
		absences = append(absences, attendance.AbsenceEntry{
			EmployeeID:        employeeID,
			Date:              d,
			DayName:           e.locale.DayName(wd),
			IsExcludedWeekday: false,
		})
	}

	return absences
}

// ComputeAllAbsences runs the calculator independently for each employee found
// in records. Entries are ordered by employee ID, then date ascending.
func (e Engine) ComputeAllAbsences(records []attendance.AttendanceRecord) []attendance.AbsenceEntry {
	byEmployee := GroupByEmployee(records)

	ids := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		ids = append(ids, id)
	}
	SortEmployeeIDs(ids)

	var all []attendance.AbsenceEntry
	for _, id := range ids {
		all = append(all, e.ComputeAbsences(id, AttendedDates(byEmployee[id]))...)
	}
	return all
}

// AttendedDates returns the distinct dates of records, ascending.
func AttendedDates(records []attendance.AttendanceRecord) []attendance.Date {
	set := make(map[attendance.Date]struct{}, len(records))
	dates := make([]attendance.Date, 0, len(records))
	for _, r := range records {
		if _, ok := set[r.Date]; ok {
			continue
		}
		set[r.Date] = struct{}{}
		dates = append(dates, r.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
