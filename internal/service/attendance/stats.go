package attendance

import (
	"math/big"
	"sort"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/validator"
)

// ComputeStats folds records and absences into one entry per employee that has
// at least one record. Absences for employees without records are ignored.
func (e Engine) ComputeStats(records []attendance.AttendanceRecord, absences []attendance.AbsenceEntry, dir attendance.EmployeeDirectory) []attendance.EmployeeStats {
	byEmployee := make(map[string]*attendance.EmployeeStats)
	var ids []string

	for _, r := range records {
		s, ok := byEmployee[r.EmployeeID]
		if !ok {
			s = &attendance.EmployeeStats{
				EmployeeID:  r.EmployeeID,
				DisplayName: e.DisplayName(dir, r.EmployeeID),
			}
			byEmployee[r.EmployeeID] = s
			ids = append(ids, r.EmployeeID)
		}
		s.WorkDays++
		s.TotalHours += r.HoursWorked
	}

	for _, a := range absences {
		if s, ok := byEmployee[a.EmployeeID]; ok {
			s.AbsentDays++
		}
	}

	SortEmployeeIDs(ids)
	stats := make([]attendance.EmployeeStats, 0, len(ids))
	for _, id := range ids {
		s := byEmployee[id]
		s.AvgHoursPerWorkday = AverageHours(s.TotalHours, s.WorkDays)
		stats = append(stats, *s)
	}
	return stats
}

// AverageHours returns total/days, or 0 when there are no days.
func AverageHours(total float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return total / float64(days)
}

// ComputeOverview totals the records in view.
func (e Engine) ComputeOverview(records []attendance.AttendanceRecord) attendance.Overview {
	var ov attendance.Overview
	if len(records) == 0 {
		return ov
	}

	employees := make(map[string]struct{})
	var totalHours float64
	start, end := records[0].Date, records[0].Date
	for _, r := range records {
		employees[r.EmployeeID] = struct{}{}
		totalHours += r.HoursWorked
		if r.IsSingleSwipe() {
			ov.SingleSwipeDays++
		}
		if r.Date.Weekday() == e.restDay {
			ov.RestDayWorkDays++
		}
		if r.Date.Before(start) {
			start = r.Date
		}
		if r.Date.After(end) {
			end = r.Date
		}
	}

	ov.Employees = len(employees)
	ov.Records = len(records)
	ov.AvgHoursPerDay = AverageHours(totalHours, len(records))
	ov.RangeStart = &start
	ov.RangeEnd = &end
	return ov
}

// Periods lists the distinct YYYY-MM months present in records, most recent first.
func Periods(records []attendance.AttendanceRecord) []string {
	set := make(map[string]struct{})
	var periods []string
	for _, r := range records {
		key := r.Date.MonthKey()
		if _, ok := set[key]; ok {
			continue
		}
		set[key] = struct{}{}
		periods = append(periods, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))
	return periods
}

// SortEmployeeIDs orders IDs naturally: numeric IDs by value (leading zeros
// break ties), numeric before non-numeric, everything else lexically.
func SortEmployeeIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return lessEmployeeID(ids[i], ids[j])
	})
}

func lessEmployeeID(a, b string) bool {
	aNum, bNum := validator.IsNumeric(a), validator.IsNumeric(b)
	switch {
	case aNum && bNum:
		x, _ := new(big.Int).SetString(a, 10)
		y, _ := new(big.Int).SetString(b, 10)
		if c := x.Cmp(y); c != 0 {
			return c < 0
		}
		return a < b
	case aNum != bNum:
		return aNum
	default:
		return a < b
	}
}
