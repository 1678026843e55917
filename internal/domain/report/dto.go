package report

import (
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE REPORT
// ========================================

type EmployeeReportRequest struct {
	EmployeeID string                    `json:"employee_id"`
	Upload     attendance.AnalyzeRequest `json:"-"`
}

func (r *EmployeeReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee id is required",
		})
	}

	// The report always covers the full history, so upload filters are not validated
	if r.Upload.File == nil || validator.IsEmpty(r.Upload.FileName) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "punch log file is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeReportResponse struct {
	EmployeeID   string                `json:"employee_id"`
	EmployeeName string                `json:"employee_name"`
	RangeStart   *string               `json:"range_start"`
	RangeEnd     *string               `json:"range_end"`
	PeriodLabel  string                `json:"period_label"`
	GeneratedAt  string                `json:"generated_at"`
	Summary      ReportSummaryResponse `json:"summary"`
	Rows         []TimelineRowResponse `json:"rows"`
}

type ReportSummaryResponse struct {
	WorkDays           int     `json:"work_days"`
	AbsentDays         int     `json:"absent_days"`
	TotalHours         float64 `json:"total_hours"`
	TotalHoursText     string  `json:"total_hours_text"`
	AvgHoursPerWorkday float64 `json:"avg_hours_per_workday"`
	AvgHoursText       string  `json:"avg_hours_text"`
	SingleSwipeDays    int     `json:"single_swipe_days"`
	RestDayWorkDays    int     `json:"rest_day_work_days"`
}

type TimelineRowResponse struct {
	Date           string   `json:"date"`
	DayName        string   `json:"day_name"`
	Kind           RowKind  `json:"kind"`
	CheckIn        *string  `json:"check_in"`
	CheckOut       *string  `json:"check_out"`
	HoursWorked    *float64 `json:"hours_worked"`
	DurationText   *string  `json:"duration_text"`
	DeviationHours *float64 `json:"deviation_hours"`
	DeviationText  *string  `json:"deviation_text"`
}
