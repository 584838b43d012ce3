package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"voxroom/internal/pkg/logx"
)

// CustomError is the error type used across the application.
// It carries a catalogue code, a user-friendly message and an HTTP status.
type CustomError struct {
	// Code is the catalogue code (see error_codes.go).
	Code int

	// Message is the user-friendly description.
	Message string

	// Status is the HTTP status used when the error reaches the HTTP surface.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError for a catalogue code. Details are printf arguments for
// messages that contain verbs; for ErrUnknown the first detail may be the underlying error,
// which is logged. Unknown codes fall back to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	template, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("unknown error code %d", code),
			"Unknown error code requested",
			"requested_code", code,
		)
		template = errorMap[ErrUnknown]
	}

	customErr := template
	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	switch {
	case len(details) == 0:
	case customErr.Code == ErrUnknown:
		if cause, ok := details[0].(error); ok {
			logx.Error(cause, "Handling ErrUnknown with underlying error")
		}
	case strings.Contains(customErr.Message, "%"):
		customErr.Message = fmt.Sprintf(customErr.Message, details...)
	default:
		logx.Warn("Details provided for an error without formatting verbs, details ignored", "code", code)
	}

	return &customErr
}

// HasCode reports whether err is, or wraps, a CustomError with the given code.
func HasCode(err error, code int) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Code == code
	}
	return false
}
