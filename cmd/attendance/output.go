package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/report"
	attendancesvc "github.com/elmallah-hr/attendance-backend-go/internal/service/attendance"
	reportsvc "github.com/elmallah-hr/attendance-backend-go/internal/service/report"
)

var (
	accent = lipgloss.Color("#4472C4")
	muted  = lipgloss.Color("#666666")
	green  = lipgloss.Color("#00CC66")
	red    = lipgloss.Color("#FF5555")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(muted).Width(20)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(muted)).
		Headers(headers...)
}

func field(w io.Writer, label, value string) {
	fmt.Fprintln(w, labelStyle.Render(label)+value)
}

func hours(h float64) string {
	return strconv.FormatFloat(attendance.RoundHours(h), 'f', 2, 64)
}

func renderAnalysis(w io.Writer, path string, result attendance.AnalysisResult, locale attendance.Locale) {
	fmt.Fprintln(w, titleStyle.Render(path))

	ov := result.Overview
	field(w, "Employees", strconv.Itoa(ov.Employees))
	field(w, "Records", strconv.Itoa(ov.Records))
	field(w, "Avg hours / record", reportsvc.FormatHoursMinutes(ov.AvgHoursPerDay, locale))
	field(w, "Single swipes", strconv.Itoa(ov.SingleSwipeDays))
	field(w, "Rest-day work", strconv.Itoa(ov.RestDayWorkDays))
	if ov.RangeStart != nil && ov.RangeEnd != nil {
		field(w, "Range", ov.RangeStart.String()+" .. "+ov.RangeEnd.String())
	}
	if n := len(result.Skipped); n > 0 {
		field(w, "Skipped lines", errorStyle.Render(strconv.Itoa(n)))
	}

	t := newTable("ID", "Name", "Work days", "Absent", "Total h", "Avg h")
	for _, s := range result.Stats {
		t.Row(s.EmployeeID, s.DisplayName, strconv.Itoa(s.WorkDays), strconv.Itoa(s.AbsentDays), hours(s.TotalHours), hours(s.AvgHoursPerWorkday))
	}
	fmt.Fprintln(w, t.String())
}

func renderReport(w io.Writer, rep report.EmployeeReportResponse) {
	fmt.Fprintln(w, titleStyle.Render(rep.EmployeeName+" ("+rep.EmployeeID+")"))
	if rep.PeriodLabel != "" {
		fmt.Fprintln(w, mutedStyle.Render(rep.PeriodLabel))
	}

	s := rep.Summary
	field(w, "Work days", strconv.Itoa(s.WorkDays))
	field(w, "Absent days", strconv.Itoa(s.AbsentDays))
	field(w, "Total hours", s.TotalHoursText)
	field(w, "Avg per work day", s.AvgHoursText)
	field(w, "Single swipes", strconv.Itoa(s.SingleSwipeDays))
	field(w, "Rest-day work", strconv.Itoa(s.RestDayWorkDays))

	t := newTable("Date", "Day", "Status", "In", "Out", "Worked", "Deviation")
	for _, row := range rep.Rows {
		t.Row(row.Date, row.DayName, string(row.Kind), orDash(row.CheckIn), orDash(row.CheckOut), orDash(row.DurationText), orDash(row.DeviationText))
	}
	fmt.Fprintln(w, t.String())
}

func renderDirectory(w io.Writer, dir attendance.EmployeeDirectory) {
	ids := make([]string, 0, len(dir))
	for id := range dir {
		ids = append(ids, id)
	}
	attendancesvc.SortEmployeeIDs(ids)

	t := newTable("ID", "Name")
	for _, id := range ids {
		t.Row(id, dir[id])
	}
	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, mutedStyle.Render(strconv.Itoa(len(ids))+" employees"))
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
