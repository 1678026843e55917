package attendance

import (
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ANALYSIS REQUEST DTOs
// ========================================

type AnalyzeRequest struct {
	FileName string         `json:"file_name"`
	Size     int64          `json:"-"`
	File     io.Reader      `json:"-"`
	Filter   AnalysisFilter `json:"filter"`
}

func (r *AnalyzeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "punch log file is required",
		})
	}

	if validator.IsEmpty(r.FileName) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "punch log file name is required",
		})
	}

	if err := r.Filter.Validate(); err != nil {
		if filterErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, filterErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Extension returns the lower-cased upload extension, including the dot.
func (r *AnalyzeRequest) Extension() string {
	return strings.ToLower(filepath.Ext(r.FileName))
}

// AnalysisFilter narrows the records in view. Statistics and absences are
// computed over the filtered window.
type AnalysisFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	Month      *string `json:"month,omitempty"`      // YYYY-MM
	Year       *int    `json:"year,omitempty"`       // YYYY
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *AnalysisFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && validator.IsEmpty(*f.EmployeeID) {
		f.EmployeeID = nil
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Month != nil && *f.Month != "" {
		if !validator.IsValidMonth(*f.Month) {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if f.Year != nil && (*f.Year < 1900 || *f.Year > 9999) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a four digit year",
		})
	}

	var startOK, endOK bool
	var start, end validator.Date
	if f.StartDate != nil && *f.StartDate != "" {
		var err error
		start, err = validator.ParseDate(*f.StartDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			startOK = true
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		var err error
		end, err = validator.ParseDate(*f.EndDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			endOK = true
		}
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsEmpty reports whether no filter criteria are set.
func (f AnalysisFilter) IsEmpty() bool {
	return f.EmployeeID == nil &&
		(f.Date == nil || *f.Date == "") &&
		(f.Month == nil || *f.Month == "") &&
		f.Year == nil &&
		(f.StartDate == nil || *f.StartDate == "") &&
		(f.EndDate == nil || *f.EndDate == "")
}

// ========================================
// ANALYSIS RESPONSE DTOs
// ========================================

type AttendanceRecordResponse struct {
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name"`
	Date           string   `json:"date"`
	DayName        string   `json:"day_name"`
	CheckIn        string   `json:"check_in"`
	CheckOut       *string  `json:"check_out,omitempty"`
	HoursWorked    float64  `json:"hours_worked"`
	DeviationHours *float64 `json:"deviation_hours,omitempty"`
	PunchCount     int      `json:"punch_count"`
	IsSingleSwipe  bool     `json:"is_single_swipe"`
}

type EmployeeStatsResponse struct {
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       string  `json:"employee_name"`
	TotalHours         float64 `json:"total_hours"`
	WorkDays           int     `json:"work_days"`
	AbsentDays         int     `json:"absent_days"`
	AvgHoursPerWorkday float64 `json:"avg_hours_per_workday"`
}

type AbsenceResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	DayName    string `json:"day_name"`
}

type OverviewResponse struct {
	TotalEmployees  int     `json:"total_employees"`
	TotalRecords    int     `json:"total_records"`
	AvgHoursPerDay  float64 `json:"avg_hours_per_day"`
	SingleSwipeDays int     `json:"single_swipe_days"`
	RestDayWorkDays int     `json:"rest_day_work_days"`
	RangeStart      *string `json:"range_start,omitempty"`
	RangeEnd        *string `json:"range_end,omitempty"`
}

type WarningsResponse struct {
	SkippedCount int         `json:"skipped_count"`
	SkippedLines []LineIssue `json:"skipped_lines"`
}

type AnalysisResponse struct {
	RunID      string                     `json:"run_id"`
	FileName   string                     `json:"file_name"`
	ArchiveURL string                     `json:"archive_url,omitempty"`
	Overview   OverviewResponse           `json:"overview"`
	Records    []AttendanceRecordResponse `json:"records"`
	Stats      []EmployeeStatsResponse    `json:"stats"`
	Absences   []AbsenceResponse          `json:"absences"`
	Warnings   WarningsResponse           `json:"warnings"`
	Periods    []string                   `json:"periods"`
}

const timeOfDayLayout = "15:04:05"

func NewAttendanceRecordResponse(r AttendanceRecord) AttendanceRecordResponse {
	resp := AttendanceRecordResponse{
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.DisplayName,
		Date:          r.Date.String(),
		DayName:       r.DayName,
		CheckIn:       r.CheckIn.Format(timeOfDayLayout),
		HoursWorked:   RoundHours(r.HoursWorked),
		PunchCount:    r.PunchCount,
		IsSingleSwipe: r.IsSingleSwipe(),
	}
	if r.CheckOut != nil {
		checkOut := r.CheckOut.Format(timeOfDayLayout)
		deviation := RoundHours(r.DeviationHours)
		resp.CheckOut = &checkOut
		resp.DeviationHours = &deviation
	}
	return resp
}

func NewEmployeeStatsResponse(s EmployeeStats) EmployeeStatsResponse {
	return EmployeeStatsResponse{
		EmployeeID:         s.EmployeeID,
		EmployeeName:       s.DisplayName,
		TotalHours:         RoundHours(s.TotalHours),
		WorkDays:           s.WorkDays,
		AbsentDays:         s.AbsentDays,
		AvgHoursPerWorkday: RoundHours(s.AvgHoursPerWorkday),
	}
}

func NewAnalysisResponse(result AnalysisResult) AnalysisResponse {
	resp := AnalysisResponse{
		RunID:      result.RunID,
		FileName:   result.FileName,
		ArchiveURL: result.ArchiveURL,
		Overview: OverviewResponse{
			TotalEmployees:  result.Overview.Employees,
			TotalRecords:    result.Overview.Records,
			AvgHoursPerDay:  RoundHours(result.Overview.AvgHoursPerDay),
			SingleSwipeDays: result.Overview.SingleSwipeDays,
			RestDayWorkDays: result.Overview.RestDayWorkDays,
		},
		Records:  make([]AttendanceRecordResponse, 0, len(result.Records)),
		Stats:    make([]EmployeeStatsResponse, 0, len(result.Stats)),
		Absences: make([]AbsenceResponse, 0, len(result.Absences)),
		Warnings: WarningsResponse{
			SkippedCount: len(result.Skipped),
			SkippedLines: result.Skipped,
		},
		Periods: result.Periods,
	}
	if resp.Warnings.SkippedLines == nil {
		resp.Warnings.SkippedLines = []LineIssue{}
	}
	if resp.Periods == nil {
		resp.Periods = []string{}
	}
	if result.Overview.RangeStart != nil {
		start := result.Overview.RangeStart.String()
		resp.Overview.RangeStart = &start
	}
	if result.Overview.RangeEnd != nil {
		end := result.Overview.RangeEnd.String()
		resp.Overview.RangeEnd = &end
	}

	for _, r := range result.Records {
		resp.Records = append(resp.Records, NewAttendanceRecordResponse(r))
	}
	for _, s := range result.Stats {
		resp.Stats = append(resp.Stats, NewEmployeeStatsResponse(s))
	}
	for _, a := range result.Absences {
		resp.Absences = append(resp.Absences, AbsenceResponse{
			EmployeeID: a.EmployeeID,
			Date:       a.Date.String(),
			DayName:    a.DayName,
		})
	}

	return resp
}

// RoundHours rounds to two decimal places for presentation.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// ========================================
// DIRECTORY DTOs
// ========================================

type DirectoryEntryResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}
