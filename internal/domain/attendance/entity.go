package attendance

import (
	"time"
)

// PunchEvent is one accepted swipe from a punch-clock export.
type PunchEvent struct {
	EmployeeID string
	Timestamp  time.Time
	LineNumber int
}

// ParsedLine is the tokenizer output for one raw line: either OkLine or MalformedLine.
type ParsedLine interface {
	parsedLine()
}

// OkLine has an employee ID and the rejoined timestamp text, not yet converted.
type OkLine struct {
	LineNumber      int
	EmployeeID      string
	TimestampFields string
}

// MalformedLine is a line that was dropped before timestamp conversion, or whose
// timestamp failed every parse strategy.
type MalformedLine struct {
	LineNumber int
	Raw        string
	Reason     SkipReason
}

func (OkLine) parsedLine()        {}
func (MalformedLine) parsedLine() {}

type SkipReason string

const (
	SkipTooFewTokens     SkipReason = "too_few_tokens"
	SkipEmptyEmployeeID  SkipReason = "empty_employee_id"
	SkipInvalidTimestamp SkipReason = "invalid_timestamp"
)

// LineIssue records why an input line produced no event.
type LineIssue struct {
	LineNumber int        `json:"line_number"`
	Reason     SkipReason `json:"reason"`
	Raw        string     `json:"raw"`
}

// ParseResult is the parser output: events in file order plus the skipped lines.
type ParseResult struct {
	Events  []PunchEvent
	Skipped []LineIssue
}

// AttendanceRecord is one employee's reduced punches for one calendar day.
// CheckOut is nil for a single-swipe day, in which case HoursWorked and
// DeviationHours are 0. DeviationHours is HoursWorked minus the target workday.
type AttendanceRecord struct {
	EmployeeID     string
	DisplayName    string
	Date           Date
	CheckIn        time.Time
	CheckOut       *time.Time
	HoursWorked    float64
	DeviationHours float64
	DayName        string
	PunchCount     int
}

func (r AttendanceRecord) IsSingleSwipe() bool {
	return r.CheckOut == nil
}

// AbsenceEntry is a derived non-attended working day inside an employee's own
// observed range.
type AbsenceEntry struct {
	EmployeeID        string
	Date              Date
	DayName           string
	IsExcludedWeekday bool
}

type EmployeeStats struct {
	EmployeeID         string
	DisplayName        string
	TotalHours         float64
	WorkDays           int
	AbsentDays         int
	AvgHoursPerWorkday float64
}

// Overview carries dataset-wide totals for the records in view.
type Overview struct {
	Employees       int
	Records         int
	AvgHoursPerDay  float64
	SingleSwipeDays int
	RestDayWorkDays int
	RangeStart      *Date
	RangeEnd        *Date
}

// EmployeeDirectory maps punch-clock IDs to display names. It is owned by the
// caller and read-only for the duration of an analysis.
type EmployeeDirectory map[string]string

// Lookup returns the configured name and whether one was found.
func (d EmployeeDirectory) Lookup(employeeID string) (string, bool) {
	name, ok := d[employeeID]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
