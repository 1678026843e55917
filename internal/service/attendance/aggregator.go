package attendance

import (
	"sort"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

type dayKey struct {
	employeeID string
	date       attendance.Date
}

// Aggregate groups events by employee and calendar day and reduces each group
// to one record. The calendar day comes from the timestamp's own date fields.
// Output is ordered by date descending; ties keep first-appearance order.
func (e Engine) Aggregate(events []attendance.PunchEvent, dir attendance.EmployeeDirectory) []attendance.AttendanceRecord {
	groups := make(map[dayKey][]attendance.PunchEvent)
	var order []dayKey

	for _, ev := range events {
		key := dayKey{employeeID: ev.EmployeeID, date: attendance.DateOf(ev.Timestamp)}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], ev)
	}

	records := make([]attendance.AttendanceRecord, 0, len(order))
	for _, key := range order {
		records = append(records, e.reduceDay(key, groups[key], dir))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	return records
}

func (e Engine) reduceDay(key dayKey, punches []attendance.PunchEvent, dir attendance.EmployeeDirectory) attendance.AttendanceRecord {
	sort.SliceStable(punches, func(i, j int) bool {
		return punches[i].Timestamp.Before(punches[j].Timestamp)
	})

	first := punches[0]
	record := attendance.AttendanceRecord{
		EmployeeID:  key.employeeID,
		DisplayName: e.DisplayName(dir, key.employeeID),
		Date:        key.date,
		CheckIn:     first.Timestamp,
		DayName:     e.locale.DayName(key.date.Weekday()),
		PunchCount:  len(punches),
	}

	if len(punches) >= 2 {
		last := punches[len(punches)-1].Timestamp
		record.CheckOut = &last
		record.HoursWorked = max(last.Sub(first.Timestamp).Hours(), 0)
		record.DeviationHours = record.HoursWorked - e.targetHours
	}

	return record
}

// GroupByEmployee splits records per employee, preserving the input order
// within each group.
func GroupByEmployee(records []attendance.AttendanceRecord) map[string][]attendance.AttendanceRecord {
	byEmployee := make(map[string][]attendance.AttendanceRecord)
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}
	return byEmployee
}
