package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError carrying the same code, so the
// sentinels below match any error of their kind through errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context, keeping the code of an
// underlying AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is, or wraps, an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeInvalidConfig      = "INVALID_CONFIG"
	CodeInvalidSplit       = "INVALID_SPLIT"
	CodeDegenerateVariance = "DEGENERATE_VARIANCE"
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Sentinels for errors.Is checks against the domain taxonomy.
var (
	ErrInvalidConfig      = New(CodeInvalidConfig, "invalid generation config")
	ErrInvalidSplit       = New(CodeInvalidSplit, "invalid train/test split")
	ErrDegenerateVariance = New(CodeDegenerateVariance, "degenerate variance")
)

// InvalidConfig reports bad data generation parameters
func InvalidConfig(format string, args ...interface{}) *AppError {
	return Newf(CodeInvalidConfig, format, args...)
}

// InvalidSplit reports bad partition parameters for a fit
func InvalidSplit(format string, args ...interface{}) *AppError {
	return Newf(CodeInvalidSplit, format, args...)
}

// DegenerateVariance reports a quantity that is undefined because a sample
// has zero variance
func DegenerateVariance(format string, args ...interface{}) *AppError {
	return Newf(CodeDegenerateVariance, format, args...)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

// IsUserError reports whether err stems from caller-supplied values rather
// than a server fault.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case CodeInvalidConfig, CodeInvalidSplit, CodeInvalidInput, CodeDegenerateVariance:
		return true
	}
	return false
}
