package report

import "errors"

// ErrReportGenerationFailed wraps the underlying analysis error, so callers can
// still match upload errors with errors.Is.
var ErrReportGenerationFailed = errors.New("failed to generate report")
