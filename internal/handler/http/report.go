package http

import (
	"net/http"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/report"
	"github.com/elmallah-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	EmployeeReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService  report.ReportService
	maxUploadBytes int64
}

func NewReportHandler(reportService report.ReportService, maxUploadBytes int64) ReportHandler {
	return &reportHandlerImpl{
		reportService:  reportService,
		maxUploadBytes: maxUploadBytes,
	}
}

// EmployeeReport implements ReportHandler. Filter query parameters are ignored:
// a report always spans the employee's full history in the upload.
func (h *reportHandlerImpl) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer cleanup()

	req := report.EmployeeReportRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Upload:     upload,
	}

	// Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rep, err := h.reportService.GenerateEmployeeReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.reportService.ToResponse(rep))
}
