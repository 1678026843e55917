package report

import (
	"context"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
)

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateEmployeeReport analyzes an upload and builds one employee's report over their full history
	GenerateEmployeeReport(ctx context.Context, req EmployeeReportRequest) (EmployeeReport, error)

	// BuildFromRecords builds one employee's report from records that are already aggregated
	BuildFromRecords(employeeID string, records []attendance.AttendanceRecord) EmployeeReport

	// ToResponse renders a report with the configured locale
	ToResponse(rep EmployeeReport) EmployeeReportResponse
}
