package attendance

import (
	"context"
)

// AnalysisResult is everything one analysis run produces.
type AnalysisResult struct {
	RunID    string
	FileName string

	// ArchiveURL links to the stored raw upload; empty when archival is off or failed
	ArchiveURL string

	// Records in view after filters, most recent first
	Records  []AttendanceRecord
	Stats    []EmployeeStats
	Absences []AbsenceEntry
	Overview Overview

	// AllRecords is the unfiltered record set, used for per-employee reports
	AllRecords []AttendanceRecord
	Skipped    []LineIssue
	Periods    []string
}

// AnalysisService defines the punch-log analysis pipeline
type AnalysisService interface {
	// Analyze parses an uploaded punch log and returns records, absences and statistics
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalysisResult, error)

	// Directory returns the directory snapshot analyses currently use
	Directory(ctx context.Context) (EmployeeDirectory, error)
}
