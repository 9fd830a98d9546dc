package response

import (
	"errors"
	"net/http"

	"github.com/starkedge/timelogger-backend-go/internal/domain/report"
	"github.com/starkedge/timelogger-backend-go/internal/domain/timeentry"
	"github.com/starkedge/timelogger-backend-go/internal/pkg/validator"
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
	// Report domain errors
	case errors.Is(err, report.ErrInvalidRange):
		BadRequest(w, "from date must not be after to date", nil)
	case errors.Is(err, report.ErrUnknownPreset):
		BadRequest(w, "unknown date range preset", nil)
	case errors.Is(err, report.ErrUnknownFormat):
		BadRequest(w, "unknown export format", nil)
	case errors.Is(err, report.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, report.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, report.ErrExportRender):
		InternalServerError(w, "Failed to render export")

	// Upstream errors
	case errors.Is(err, timeentry.ErrMalformedResponse):
		BadGateway(w, "Upstream tracker returned a malformed response")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
