package attendance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/validator"
	"github.com/elmallah-hr/attendance-backend-go/internal/service/file"
	"github.com/google/uuid"
)

// archiveLinkExpiry bounds presigned archive links on stores that expire them.
const archiveLinkExpiry = 24 * time.Hour

// SupportedExtensions are the punch log formats Analyze accepts.
var SupportedExtensions = []string{".dat", ".txt", ".csv", ".xlsx"}

type AnalysisServiceImpl struct {
	engine         Engine
	directory      attendance.DirectoryProvider
	fileService    file.FileService
	maxUploadBytes int64
}

// Analyze implements attendance.AnalysisService.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, req attendance.AnalyzeRequest) (attendance.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return attendance.AnalysisResult{}, err
	}
	if !validator.HasExtension(req.FileName, SupportedExtensions) {
		return attendance.AnalysisResult{}, attendance.ErrUnsupportedFileType
	}
	if s.maxUploadBytes > 0 && req.Size > s.maxUploadBytes {
		return attendance.AnalysisResult{}, attendance.ErrUploadTooLarge
	}

	data, err := s.readUpload(req.File)
	if err != nil {
		return attendance.AnalysisResult{}, err
	}

	dir, err := s.Directory(ctx)
	if err != nil {
		return attendance.AnalysisResult{}, err
	}

	runID := uuid.New().String()
	archiveURL := s.archive(ctx, runID, req.FileName, data)

	parsed, err := s.parse(ctx, req.Extension(), data)
	if err != nil {
		return attendance.AnalysisResult{}, err
	}

	result, err := s.engine.Run(parsed, dir, req.Filter)
	if err != nil {
		return attendance.AnalysisResult{}, err
	}
	result.RunID = runID
	result.FileName = req.FileName
	result.ArchiveURL = archiveURL

	slog.Info("Punch log analyzed",
		"run_id", runID,
		"file", req.FileName,
		"events", len(parsed.Events),
		"records", len(result.AllRecords),
		"records_in_view", len(result.Records),
		"skipped", len(result.Skipped),
	)

	return result, nil
}

// archive stores the raw upload when archival is configured and returns a link
// to it. Archival is best-effort; the analysis itself does not depend on it.
func (s *AnalysisServiceImpl) archive(ctx context.Context, runID, fileName string, data []byte) string {
	if s.fileService == nil {
		return ""
	}
	path, err := s.fileService.ArchivePunchLog(ctx, fileName, time.Now().UTC(), bytes.NewReader(data))
	if err != nil {
		slog.Warn("Failed to archive punch log", "run_id", runID, "file", fileName, "error", err)
		return ""
	}
	url, err := s.fileService.GetFileURL(ctx, path, archiveLinkExpiry)
	if err != nil {
		slog.Warn("Failed to resolve archive URL", "run_id", runID, "path", path, "error", err)
		return ""
	}
	slog.Info("Punch log archived", "run_id", runID, "path", path)
	return url
}

// Directory implements attendance.AnalysisService.
func (s *AnalysisServiceImpl) Directory(ctx context.Context) (attendance.EmployeeDirectory, error) {
	if s.directory == nil {
		return attendance.EmployeeDirectory{}, nil
	}
	dir, err := s.directory.Directory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrDirectoryUnavailable, err)
	}
	return dir, nil
}

func (s *AnalysisServiceImpl) readUpload(r io.Reader) ([]byte, error) {
	if s.maxUploadBytes > 0 {
		r = io.LimitReader(r, s.maxUploadBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read punch log: %w", err)
	}
	if s.maxUploadBytes > 0 && int64(len(data)) > s.maxUploadBytes {
		return nil, attendance.ErrUploadTooLarge
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, attendance.ErrEmptyUpload
	}
	return data, nil
}

func (s *AnalysisServiceImpl) parse(ctx context.Context, ext string, data []byte) (attendance.ParseResult, error) {
	switch ext {
	case ".xlsx":
		return s.engine.ParseXLSX(ctx, bytes.NewReader(data))
	case ".csv":
		return s.engine.ParseCSV(decodeText(data)), nil
	default:
		return s.engine.Parse(decodeText(data)), nil
	}
}

// decodeText returns data as a string, replacing invalid UTF-8 sequences so a
// stray byte in a device export cannot corrupt neighbouring lines.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return string(bytes.ToValidUTF8(data, []byte("\uFFFD")))
}

// Run executes aggregation, filtering, absence inference and statistics over
// already parsed events. Absences are recomputed per employee on the filtered
// records so statistics describe the window in view.
func (e Engine) Run(parsed attendance.ParseResult, dir attendance.EmployeeDirectory, filter attendance.AnalysisFilter) (attendance.AnalysisResult, error) {
	all := e.Aggregate(parsed.Events, dir)

	inView, err := ApplyFilter(all, filter)
	if err != nil {
		return attendance.AnalysisResult{}, errors.Join(attendance.ErrInvalidFilter, err)
	}

	absences := e.ComputeAllAbsences(inView)

	return attendance.AnalysisResult{
		Records:    inView,
		Stats:      e.ComputeStats(inView, absences, dir),
		Absences:   absences,
		Overview:   e.ComputeOverview(inView),
		AllRecords: all,
		Skipped:    parsed.Skipped,
		Periods:    Periods(all),
	}, nil
}

func NewAnalysisService(
	engine Engine,
	directory attendance.DirectoryProvider,
	fileService file.FileService,
	maxUploadBytes int64,
) attendance.AnalysisService {
	return &AnalysisServiceImpl{
		engine:         engine,
		directory:      directory,
		fileService:    fileService,
		maxUploadBytes: maxUploadBytes,
	}
}
