package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/report"
	attendancesvc "github.com/elmallah-hr/attendance-backend-go/internal/service/attendance"
)

type ReportServiceImpl struct {
	analysisService attendance.AnalysisService
	engine          attendancesvc.Engine
	builder         Builder
	now             func() time.Time
}

func NewReportService(analysisService attendance.AnalysisService, engine attendancesvc.Engine) report.ReportService {
	return &ReportServiceImpl{
		analysisService: analysisService,
		engine:          engine,
		builder:         NewBuilder(engine),
		now:             time.Now,
	}
}

// GenerateEmployeeReport implements report.ReportService. Filters on the upload
// are ignored so the summary always covers the employee's full history.
func (s *ReportServiceImpl) GenerateEmployeeReport(ctx context.Context, req report.EmployeeReportRequest) (report.EmployeeReport, error) {
	if err := req.Validate(); err != nil {
		return report.EmployeeReport{}, err
	}

	upload := req.Upload
	upload.Filter = attendance.AnalysisFilter{}

	result, err := s.analysisService.Analyze(ctx, upload)
	if err != nil {
		return report.EmployeeReport{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	rep := s.BuildFromRecords(req.EmployeeID, result.AllRecords)

	slog.Info("Employee report generated",
		"run_id", result.RunID,
		"employee_id", req.EmployeeID,
		"rows", len(rep.Rows),
	)

	return rep, nil
}

// BuildFromRecords derives the employee's absences over their whole history and
// builds the report. An employee with no records gets an empty report.
func (s *ReportServiceImpl) BuildFromRecords(employeeID string, records []attendance.AttendanceRecord) report.EmployeeReport {
	var own []attendance.AttendanceRecord
	for _, r := range records {
		if r.EmployeeID == employeeID {
			own = append(own, r)
		}
	}
	absences := s.engine.ComputeAbsences(employeeID, attendancesvc.AttendedDates(own))

	rep := s.builder.BuildEmployeeReport(employeeID, own, absences)
	rep.GeneratedAt = s.now().UTC()
	return rep
}

// ToResponse implements report.ReportService.
func (s *ReportServiceImpl) ToResponse(rep report.EmployeeReport) report.EmployeeReportResponse {
	return s.builder.Response(rep)
}
