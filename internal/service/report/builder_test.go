package report

import (
	"testing"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/report"
	attendancesvc "github.com/elmallah-hr/attendance-backend-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) attendance.Date {
	return attendance.Date{Year: 2024, Month: time.March, Day: d}
}

func record(id string, d int, inHour, outHour int) attendance.AttendanceRecord {
	r := attendance.AttendanceRecord{
		EmployeeID:  id,
		DisplayName: "Mona Hassan",
		Date:        day(d),
		CheckIn:     time.Date(2024, time.March, d, inHour, 0, 0, 0, time.UTC),
		PunchCount:  1,
	}
	if outHour > inHour {
		out := time.Date(2024, time.March, d, outHour, 0, 0, 0, time.UTC)
		r.CheckOut = &out
		r.HoursWorked = float64(outHour - inHour)
		r.DeviationHours = r.HoursWorked - 8
		r.PunchCount = 2
	}
	return r
}

// 2024-03-07 is a Thursday and 2024-03-08 a Friday
func fixtureRecords() []attendance.AttendanceRecord {
	return []attendance.AttendanceRecord{
		record("E1", 12, 8, 17),
		record("E1", 10, 9, 0),
		record("E1", 8, 10, 14),
		record("E1", 7, 8, 16),
		record("E2", 16, 8, 16),
		record("E2", 14, 8, 16),
	}
}

func rowKinds(rows []report.TimelineRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Date.String()+":"+string(r.Kind))
	}
	return out
}

func TestBuilder_BuildEmployeeReport(t *testing.T) {
	engine := attendancesvc.NewEngine()
	builder := NewBuilder(engine)
	records := fixtureRecords()
	absences := engine.ComputeAllAbsences(records)

	rep := builder.BuildEmployeeReport("E1", records, absences)

	assert.Equal(t, "E1", rep.EmployeeID)
	assert.Equal(t, "Mona Hassan", rep.DisplayName)
	require.NotNil(t, rep.RangeStart)
	assert.Equal(t, "2024-03-07", rep.RangeStart.String())
	assert.Equal(t, "2024-03-12", rep.RangeEnd.String())
	assert.Equal(t, "March 2024", rep.PeriodLabel)

	assert.Equal(t, []string{
		"2024-03-07:normal",
		"2024-03-08:rest_day",
		"2024-03-09:absent",
		"2024-03-10:single_swipe",
		"2024-03-11:absent",
		"2024-03-12:normal",
	}, rowKinds(rep.Rows))
	assert.Nil(t, rep.Rows[2].Record)
	require.NotNil(t, rep.Rows[1].Record)
	assert.Equal(t, "Friday", rep.Rows[1].DayName)

	assert.Equal(t, report.ReportSummary{
		WorkDays:           4,
		AbsentDays:         2,
		TotalHours:         21,
		AvgHoursPerWorkday: 5.25,
		SingleSwipeDays:    1,
		RestDayWorkDays:    1,
	}, rep.Summary)
}

// Test that the summary matches the statistics engine for the same employee
func TestBuilder_SummaryMatchesStats(t *testing.T) {
	engine := attendancesvc.NewEngine()
	records := fixtureRecords()
	absences := engine.ComputeAllAbsences(records)

	rep := NewBuilder(engine).BuildEmployeeReport("E1", records, absences)
	stats := engine.ComputeStats(records, absences, nil)

	require.Len(t, stats, 2)
	assert.Equal(t, stats[0].WorkDays, rep.Summary.WorkDays)
	assert.Equal(t, stats[0].AbsentDays, rep.Summary.AbsentDays)
	assert.InDelta(t, stats[0].TotalHours, rep.Summary.TotalHours, 1e-9)
	assert.InDelta(t, stats[0].AvgHoursPerWorkday, rep.Summary.AvgHoursPerWorkday, 1e-9)
}

// Test that an unattended rest day is shown without counting as absence
func TestBuilder_UnattendedRestDay(t *testing.T) {
	engine := attendancesvc.NewEngine()
	records := fixtureRecords()

	rep := NewBuilder(engine).BuildEmployeeReport("E2", records, engine.ComputeAllAbsences(records))

	assert.Equal(t, []string{
		"2024-03-14:normal",
		"2024-03-15:rest_day",
		"2024-03-16:normal",
	}, rowKinds(rep.Rows))
	assert.Nil(t, rep.Rows[1].Record)
	assert.Zero(t, rep.Summary.AbsentDays)
	assert.Zero(t, rep.Summary.RestDayWorkDays)
}

func TestBuilder_UnknownEmployee(t *testing.T) {
	rep := NewBuilder(attendancesvc.NewEngine()).BuildEmployeeReport("E9", fixtureRecords(), nil)

	assert.Equal(t, "Employee E9", rep.DisplayName)
	assert.Nil(t, rep.RangeStart)
	assert.Nil(t, rep.RangeEnd)
	assert.Empty(t, rep.Rows)
	assert.Equal(t, report.ReportSummary{}, rep.Summary)
}

func TestBuilder_Response(t *testing.T) {
	engine := attendancesvc.NewEngine()
	builder := NewBuilder(engine)
	records := fixtureRecords()
	rep := builder.BuildEmployeeReport("E1", records, engine.ComputeAllAbsences(records))
	rep.GeneratedAt = time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC)

	resp := builder.Response(rep)

	assert.Equal(t, "2024-04-01T10:00:00Z", resp.GeneratedAt)
	require.NotNil(t, resp.RangeStart)
	assert.Equal(t, "2024-03-07", *resp.RangeStart)
	assert.Equal(t, "21h", resp.Summary.TotalHoursText)
	assert.Equal(t, "5h 15m", resp.Summary.AvgHoursText)
	require.Len(t, resp.Rows, 6)

	normal := resp.Rows[0]
	require.NotNil(t, normal.CheckIn)
	require.NotNil(t, normal.CheckOut)
	assert.Equal(t, "8:00 AM", *normal.CheckIn)
	assert.Equal(t, "4:00 PM", *normal.CheckOut)
	assert.Equal(t, "8h", *normal.DurationText)
	require.NotNil(t, normal.DeviationText)
	assert.Equal(t, "0m", *normal.DeviationText)

	short := resp.Rows[1]
	require.NotNil(t, short.DeviationHours)
	assert.Equal(t, -4.0, *short.DeviationHours)
	assert.Equal(t, "-4h", *short.DeviationText)

	absent := resp.Rows[2]
	assert.Equal(t, report.RowAbsent, absent.Kind)
	assert.Nil(t, absent.CheckIn)
	assert.Nil(t, absent.HoursWorked)

	single := resp.Rows[3]
	require.NotNil(t, single.CheckIn)
	assert.Nil(t, single.CheckOut)
	assert.Equal(t, "0m", *single.DurationText)
	assert.Nil(t, single.DeviationHours)
	assert.Nil(t, single.DeviationText)
}
