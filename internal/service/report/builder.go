package report

import (
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/report"
	attendancesvc "github.com/elmallah-hr/attendance-backend-go/internal/service/attendance"
)

// Builder merges one employee's records and absences into a report document.
// It performs no I/O.
type Builder struct {
	engine attendancesvc.Engine
}

func NewBuilder(engine attendancesvc.Engine) Builder {
	return Builder{engine: engine}
}

// BuildEmployeeReport keeps only employeeID's entries from records and
// absences, then lays them out chronologically between the employee's first
// and last attended day. Unattended rest days inside that range are included
// as rest day rows without a record.
func (b Builder) BuildEmployeeReport(employeeID string, records []attendance.AttendanceRecord, absences []attendance.AbsenceEntry) report.EmployeeReport {
	rep := report.EmployeeReport{
		EmployeeID:  employeeID,
		DisplayName: b.engine.Locale().Placeholder(employeeID),
		Rows:        []report.TimelineRow{},
	}

	byDate := make(map[attendance.Date]attendance.AttendanceRecord)
	for _, r := range records {
		if r.EmployeeID != employeeID {
			continue
		}
		byDate[r.Date] = r
		rep.DisplayName = r.DisplayName
	}
	absentOn := make(map[attendance.Date]struct{})
	for _, a := range absences {
		if a.EmployeeID == employeeID {
			absentOn[a.Date] = struct{}{}
		}
	}

	if len(byDate) == 0 {
		return rep
	}

	var first, last attendance.Date
	for d := range byDate {
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	rep.RangeStart, rep.RangeEnd = &first, &last
	rep.PeriodLabel = PeriodLabel(rep.RangeStart, rep.RangeEnd, b.engine.Locale())

	var totalHours float64
	for d := first; !d.After(last); d = d.Next() {
		row := report.TimelineRow{Date: d, DayName: b.engine.Locale().DayName(d.Weekday())}

		if r, ok := byDate[d]; ok {
			rec := r
			row.Record = &rec
			row.Kind = b.classify(rec)

			rep.Summary.WorkDays++
			totalHours += rec.HoursWorked
			if rec.IsSingleSwipe() {
				rep.Summary.SingleSwipeDays++
			}
			if d.Weekday() == b.engine.RestDay() {
				rep.Summary.RestDayWorkDays++
			}
		} else if _, absent := absentOn[d]; absent {
			row.Kind = report.RowAbsent
			rep.Summary.AbsentDays++
		} else if d.Weekday() == b.engine.RestDay() {
			row.Kind = report.RowRestDay
		} else {
			// Not attended and not derived as absent by the caller.
			continue
		}

		rep.Rows = append(rep.Rows, row)
	}

	rep.Summary.TotalHours = totalHours
	rep.Summary.AvgHoursPerWorkday = attendancesvc.AverageHours(totalHours, rep.Summary.WorkDays)
	return rep
}

func (b Builder) classify(r attendance.AttendanceRecord) report.RowKind {
	switch {
	case r.IsSingleSwipe():
		return report.RowSingleSwipe
	case r.Date.Weekday() == b.engine.RestDay():
		return report.RowRestDay
	default:
		return report.RowNormal
	}
}

// Response converts a report to its presentation form using the builder's locale.
func (b Builder) Response(rep report.EmployeeReport) report.EmployeeReportResponse {
	locale := b.engine.Locale()

	resp := report.EmployeeReportResponse{
		EmployeeID:   rep.EmployeeID,
		EmployeeName: rep.DisplayName,
		PeriodLabel:  rep.PeriodLabel,
		Summary: report.ReportSummaryResponse{
			WorkDays:           rep.Summary.WorkDays,
			AbsentDays:         rep.Summary.AbsentDays,
			TotalHours:         attendance.RoundHours(rep.Summary.TotalHours),
			TotalHoursText:     FormatHoursMinutes(rep.Summary.TotalHours, locale),
			AvgHoursPerWorkday: attendance.RoundHours(rep.Summary.AvgHoursPerWorkday),
			AvgHoursText:       FormatHoursMinutes(rep.Summary.AvgHoursPerWorkday, locale),
			SingleSwipeDays:    rep.Summary.SingleSwipeDays,
			RestDayWorkDays:    rep.Summary.RestDayWorkDays,
		},
		Rows: make([]report.TimelineRowResponse, 0, len(rep.Rows)),
	}
	if !rep.GeneratedAt.IsZero() {
		resp.GeneratedAt = rep.GeneratedAt.Format(time.RFC3339)
	}
	if rep.RangeStart != nil {
		start := rep.RangeStart.String()
		resp.RangeStart = &start
	}
	if rep.RangeEnd != nil {
		end := rep.RangeEnd.String()
		resp.RangeEnd = &end
	}

	for _, row := range rep.Rows {
		out := report.TimelineRowResponse{
			Date:    row.Date.String(),
			DayName: row.DayName,
			Kind:    row.Kind,
		}
		if r := row.Record; r != nil {
			checkIn := Format12Hour(r.CheckIn, locale)
			hours := attendance.RoundHours(r.HoursWorked)
			duration := FormatHoursMinutes(r.HoursWorked, locale)
			out.CheckIn = &checkIn
			out.HoursWorked = &hours
			out.DurationText = &duration
			if r.CheckOut != nil {
				checkOut := Format12Hour(*r.CheckOut, locale)
				deviation := attendance.RoundHours(r.DeviationHours)
				deviationText := FormatDeviation(r.DeviationHours, locale)
				out.CheckOut = &checkOut
				out.DeviationHours = &deviation
				out.DeviationText = &deviationText
			}
		}
		resp.Rows = append(resp.Rows, out)
	}

	return resp
}
