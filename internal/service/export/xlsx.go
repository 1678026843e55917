package export

import (
	"fmt"
	"io"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const (
	AttendanceSheet = "Attendance"
	SummarySheet    = "Summary"
)

// AttendanceHeader is the column order of the Attendance sheet: the CSV columns
// plus the deviation from the target workday.
var AttendanceHeader = append(append([]string{}, CSVHeader...), "Deviation")

// SummaryHeader is the column order of the Summary sheet.
var SummaryHeader = []string{"ID", "Name", "WorkDays", "AbsentDays", "TotalHours", "AvgHoursPerWorkday"}

// WriteXLSX writes a workbook with the records in view on the Attendance sheet
// and per-employee statistics on the Summary sheet.
func WriteXLSX(w io.Writer, records []attendance.AttendanceRecord, stats []attendance.EmployeeStats) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), AttendanceSheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to prepare workbook: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	hoursStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	if err := writeHeader(f, AttendanceSheet, AttendanceHeader, headerStyle); err != nil {
		return err
	}
	for i, r := range records {
		row := recordRow(r)
		values := []any{row[0], row[1], row[2], row[3], row[4], row[5], attendance.RoundHours(r.HoursWorked)}
		if !r.IsSingleSwipe() {
			values = append(values, attendance.RoundHours(r.DeviationHours))
		}
		if err := setRow(f, AttendanceSheet, i+2, values); err != nil {
			return err
		}
	}
	if len(records) > 0 {
		if err := f.SetCellStyle(AttendanceSheet, "G2", fmt.Sprintf("H%d", len(records)+1), hoursStyle); err != nil {
			return fmt.Errorf("failed to style hours columns: %w", err)
		}
	}

	if err := writeHeader(f, SummarySheet, SummaryHeader, headerStyle); err != nil {
		return err
	}
	for i, s := range stats {
		values := []any{
			s.EmployeeID,
			s.DisplayName,
			s.WorkDays,
			s.AbsentDays,
			attendance.RoundHours(s.TotalHours),
			attendance.RoundHours(s.AvgHoursPerWorkday),
		}
		if err := setRow(f, SummarySheet, i+2, values); err != nil {
			return err
		}
	}
	if len(stats) > 0 {
		if err := f.SetCellStyle(SummarySheet, "E2", fmt.Sprintf("F%d", len(stats)+1), hoursStyle); err != nil {
			return fmt.Errorf("failed to style hours columns: %w", err)
		}
	}

	// Auto-fit columns
	_ = f.SetColWidth(AttendanceSheet, "A", "A", 12)
	_ = f.SetColWidth(AttendanceSheet, "B", "B", 28)
	_ = f.SetColWidth(AttendanceSheet, "C", "H", 13)
	_ = f.SetColWidth(SummarySheet, "A", "A", 12)
	_ = f.SetColWidth(SummarySheet, "B", "B", 28)
	_ = f.SetColWidth(SummarySheet, "C", "F", 18)
	_ = f.SetPanes(AttendanceSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	values := make([]any, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := setRow(f, sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
