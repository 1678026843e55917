package attendance

import "errors"

// Attendance analysis errors
var (
	// Upload errors
	ErrEmptyUpload         = errors.New("uploaded punch log is empty")
	ErrUnsupportedFileType = errors.New("unsupported file type: only dat, txt, csv, xlsx allowed")
	ErrUploadTooLarge      = errors.New("uploaded punch log exceeds the size limit")
	ErrXLSXUnreadable      = errors.New("xlsx punch log could not be read")

	// General errors
	ErrInvalidFilter        = errors.New("invalid analysis filter")
	ErrDirectoryUnavailable = errors.New("employee directory is unavailable")
)
