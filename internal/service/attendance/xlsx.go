package attendance

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

// Excel serials outside this window are treated as text, so a plain number in
// the timestamp column is not mistaken for a date.
const (
	minExcelSerial = 20000.0 // 1954-10-03
	maxExcelSerial = 80000.0 // 2119-01-10
)

// ParseXLSX reads punches from the first worksheet of a workbook: column A is
// the employee ID and the remaining cells of the row form the timestamp. Cells
// holding Excel date serials are converted before timestamp parsing.
func (e Engine) ParseXLSX(ctx context.Context, r io.Reader) (attendance.ParseResult, error) {
	lines, err := TokenizeXLSX(ctx, r)
	if err != nil {
		return attendance.ParseResult{}, err
	}
	return e.ParseLines(lines), nil
}

// TokenizeXLSX turns worksheet rows into typed lines. Row numbers are 1-based
// worksheet row positions.
func TokenizeXLSX(ctx context.Context, r io.Reader) ([]attendance.ParsedLine, error) {
	xlFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrXLSXUnreadable, err)
	}
	defer func() { _ = xlFile.Close() }()

	sheetName := xlFile.GetSheetName(0)
	if sheetName == "" {
		sheetList := xlFile.GetSheetList()
		if len(sheetList) == 0 {
			return nil, fmt.Errorf("%w: no worksheet found", attendance.ErrXLSXUnreadable)
		}
		sheetName = sheetList[0]
	}

	rows, err := xlFile.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrXLSXUnreadable, err)
	}
	defer func() { _ = rows.Close() }()

	var lines []attendance.ParsedLine
	rowNum := 0
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rowNum++

		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", attendance.ErrXLSXUnreadable, rowNum, err)
		}

		cells := make([]string, 0, len(cols))
		for i, col := range cols {
			col = strings.TrimSpace(col)
			if i > 0 {
				col = excelSerialToText(col)
			}
			cells = append(cells, col)
		}
		if strings.TrimSpace(strings.Join(cells, "")) == "" {
			continue
		}
		lines = append(lines, rowToLine(rowNum, cells))
	}

	return lines, nil
}

func rowToLine(rowNum int, cells []string) attendance.ParsedLine {
	raw := strings.Join(cells, ",")

	var rest []string
	for _, c := range cells[1:] {
		if c != "" {
			rest = append(rest, c)
		}
	}
	if len(rest) == 0 {
		return attendance.MalformedLine{LineNumber: rowNum, Raw: raw, Reason: attendance.SkipTooFewTokens}
	}
	if cells[0] == "" {
		return attendance.MalformedLine{LineNumber: rowNum, Raw: raw, Reason: attendance.SkipEmptyEmployeeID}
	}

	return attendance.OkLine{
		LineNumber:      rowNum,
		EmployeeID:      cells[0],
		TimestampFields: strings.Join(rest, " "),
	}
}

// excelSerialToText renders an Excel date serial as a wall-clock timestamp
// string; anything else is returned unchanged.
func excelSerialToText(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < minExcelSerial || serial > maxExcelSerial {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Round(time.Second).Format("2006-01-02 15:04:05")
}
