package report

import (
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// RowKind classifies a timeline row for presentation emphasis.
type RowKind string

const (
	RowAbsent      RowKind = "absent"
	RowSingleSwipe RowKind = "single_swipe"
	RowRestDay     RowKind = "rest_day"
	RowNormal      RowKind = "normal"
)

// TimelineRow is one calendar day of an employee report. Record is nil for
// absent days and for rest days without punches.
type TimelineRow struct {
	Date    attendance.Date
	DayName string
	Kind    RowKind
	Record  *attendance.AttendanceRecord
}

// ReportSummary is computed over the employee's full history, independent of
// any filter active in the caller.
type ReportSummary struct {
	WorkDays           int
	AbsentDays         int
	TotalHours         float64
	AvgHoursPerWorkday float64
	SingleSwipeDays    int
	RestDayWorkDays    int
}

// EmployeeReport is a self-contained, render-ready document for one employee.
// RangeStart and RangeEnd are nil when the employee has no records.
type EmployeeReport struct {
	EmployeeID  string
	DisplayName string
	RangeStart  *attendance.Date
	RangeEnd    *attendance.Date
	PeriodLabel string
	Summary     ReportSummary
	Rows        []TimelineRow
	GeneratedAt time.Time
}
