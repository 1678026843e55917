package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

const (
	utf8BOM       = "\ufeff"
	timeLayout    = "15:04:05"
	missingPunch  = "N/A"
	CSVMediaType  = "text/csv; charset=utf-8"
	XLSXMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CSVHeader is the column order of the records export.
var CSVHeader = []string{"ID", "Name", "Date", "DayName", "CheckIn", "CheckOut", "Hours"}

// WriteCSV writes records as UTF-8 CSV with a byte-order mark so spreadsheet
// tools detect the encoding of non-Latin names. Rows end in "\n".
func WriteCSV(w io.Writer, records []attendance.AttendanceRecord) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(recordRow(r)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func recordRow(r attendance.AttendanceRecord) []string {
	checkOut := missingPunch
	if r.CheckOut != nil {
		checkOut = r.CheckOut.Format(timeLayout)
	}
	return []string{
		r.EmployeeID,
		r.DisplayName,
		r.Date.String(),
		r.DayName,
		r.CheckIn.Format(timeLayout),
		checkOut,
		fmt.Sprintf("%.2f", r.HoursWorked),
	}
}

// FileName derives a download name from the uploaded file name, e.g.
// "attlog.dat" becomes "attlog-attendance.csv".
func FileName(source, ext string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "punch-log"
	}
	return base + "-attendance" + ext
}
