package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/validator"
	attendancesvc "github.com/elmallah-hr/attendance-backend-go/internal/service/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/service/export"
)

// multipartMemory is how much of a multipart body is buffered in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

type AttendanceHandler interface {
	Analyze(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
	Directory(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	analysisService attendance.AnalysisService
	maxUploadBytes  int64
}

func NewAttendanceHandler(analysisService attendance.AnalysisService, maxUploadBytes int64) AttendanceHandler {
	return &attendanceHandlerImpl{
		analysisService: analysisService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// Analyze implements AttendanceHandler.
func (h *attendanceHandlerImpl) Analyze(w http.ResponseWriter, r *http.Request) {
	result, ok := h.analyze(w, r)
	if !ok {
		return
	}
	response.Success(w, attendance.NewAnalysisResponse(result))
}

// ExportCSV implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	result, ok := h.analyze(w, r)
	if !ok {
		return
	}

	setAttachment(w, export.CSVMediaType, export.FileName(result.FileName, ".csv"))
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, result.Records); err != nil {
		// Headers are already sent; all that is left is to log
		slog.Error("Failed to stream csv export", "run_id", result.RunID, "error", err)
	}
}

// ExportXLSX implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	result, ok := h.analyze(w, r)
	if !ok {
		return
	}

	setAttachment(w, export.XLSXMediaType, export.FileName(result.FileName, ".xlsx"))
	w.WriteHeader(http.StatusOK)
	if err := export.WriteXLSX(w, result.Records, result.Stats); err != nil {
		slog.Error("Failed to stream xlsx export", "run_id", result.RunID, "error", err)
	}
}

// Directory implements AttendanceHandler.
func (h *attendanceHandlerImpl) Directory(w http.ResponseWriter, r *http.Request) {
	dir, err := h.analysisService.Directory(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	ids := make([]string, 0, len(dir))
	for id := range dir {
		ids = append(ids, id)
	}
	attendancesvc.SortEmployeeIDs(ids)

	entries := make([]attendance.DirectoryEntryResponse, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, attendance.DirectoryEntryResponse{EmployeeID: id, EmployeeName: dir[id]})
	}
	response.Success(w, entries)
}

func (h *attendanceHandlerImpl) analyze(w http.ResponseWriter, r *http.Request) (attendance.AnalysisResult, bool) {
	req, cleanup, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		response.HandleError(w, err)
		return attendance.AnalysisResult{}, false
	}
	defer cleanup()

	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return attendance.AnalysisResult{}, false
	}
	req.Filter = filter

	// Validate request
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return attendance.AnalysisResult{}, false
	}

	// Call service
	result, err := h.analysisService.Analyze(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return attendance.AnalysisResult{}, false
	}
	return result, true
}

// readUpload extracts the "file" part of a multipart request. The body is
// capped slightly above the upload limit so form overhead does not count.
func readUpload(w http.ResponseWriter, r *http.Request, maxUploadBytes int64) (attendance.AnalyzeRequest, func(), error) {
	noop := func() {}
	if maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<20))
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return attendance.AnalyzeRequest{}, noop, attendance.ErrUploadTooLarge
		}
		slog.Debug("Failed to parse multipart form", "error", err)
		return attendance.AnalyzeRequest{}, noop, validator.ValidationErrors{{
			Field:   "file",
			Message: "request must be multipart/form-data with a punch log in field 'file'",
		}}
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		cleanup := func() { _ = r.MultipartForm.RemoveAll() }
		if errors.Is(err, http.ErrMissingFile) {
			return attendance.AnalyzeRequest{}, cleanup, validator.ValidationErrors{{
				Field:   "file",
				Message: "punch log file is required",
			}}
		}
		return attendance.AnalyzeRequest{}, cleanup, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	cleanup := func() {
		file.Close()
		_ = r.MultipartForm.RemoveAll()
	}
	return attendance.AnalyzeRequest{
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		File:     file,
	}, cleanup, nil
}

// filterFromQuery reads filter criteria from query parameters. Format checks
// are left to AnalysisFilter.Validate, except year which must parse as an int.
func filterFromQuery(q url.Values) (attendance.AnalysisFilter, error) {
	var filter attendance.AnalysisFilter

	if employeeID := q.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if date := q.Get("date"); date != "" {
		filter.Date = &date
	}
	if month := q.Get("month"); month != "" {
		filter.Month = &month
	}
	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return filter, validator.ValidationErrors{{
				Field:   "year",
				Message: "year must be a four digit year",
			}}
		}
		filter.Year = &year
	}
	if startDate := q.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	return filter, nil
}

func setAttachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
