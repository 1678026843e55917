package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Upload errors
	case errors.Is(err, attendance.ErrEmptyUpload):
		BadRequest(w, "Uploaded punch log is empty", nil)
	case errors.Is(err, attendance.ErrUnsupportedFileType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrXLSXUnreadable):
		BadRequest(w, "Spreadsheet could not be read", nil)
	case errors.Is(err, attendance.ErrUploadTooLarge):
		PayloadTooLarge(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidFilter):
		BadRequest(w, err.Error(), nil)

	// Directory errors
	case errors.Is(err, attendance.ErrDirectoryUnavailable):
		slog.Error("Employee directory unavailable", "error", err)
		ServiceUnavailable(w, "Employee directory is temporarily unavailable")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
