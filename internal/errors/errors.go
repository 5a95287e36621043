package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type ErrorCode string

const (
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeRateLimit  ErrorCode = "RATE_LIMIT_EXCEEDED"
)

var statusByCode = map[ErrorCode]int{
	CodeValidation: http.StatusBadRequest,
	CodeBadRequest: http.StatusBadRequest,
	CodeNotFound:   http.StatusNotFound,
	CodeRateLimit:  http.StatusTooManyRequests,
}

// Status maps a code to its HTTP status. Unknown codes are server errors.
func (c ErrorCode) Status() int {
	if status, ok := statusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AppError is the error type handlers hand to WriteError. Message and Field
// are shown to clients; Cause is logged only.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	Field      string    `json:"field,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
}

func (e *AppError) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithField names the request parameter the error refers to.
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

func (e *AppError) WithDetails(format string, args ...any) *AppError {
	e.Details = fmt.Sprintf(format, args...)
	return e
}

func newAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: code.Status(),
		Cause:      cause,
		Timestamp:  time.Now().UTC(),
	}
}

func Internal(message string) *AppError { return newAppError(CodeInternal, message, nil) }

func InternalWrap(err error, message string) *AppError {
	return newAppError(CodeInternal, message, err)
}

func Validation(message string) *AppError { return newAppError(CodeValidation, message, nil) }

func ValidationWrap(err error, message string) *AppError {
	return newAppError(CodeValidation, message, err)
}

// NotFound reports a path with no route or a resource that does not exist.
func NotFound(message string) *AppError { return newAppError(CodeNotFound, message, nil) }

func BadRequest(message string) *AppError { return newAppError(CodeBadRequest, message, nil) }

func RateLimit(message string) *AppError { return newAppError(CodeRateLimit, message, nil) }

type ErrorResponse struct {
	Error   *AppError `json:"error"`
	Success bool      `json:"success"`
}

type SuccessResponse struct {
	Data    any  `json:"data"`
	Success bool `json:"success"`
}

// WriteError renders err as a JSON error envelope. Errors that are not an
// *AppError anywhere in their chain become a generic 500 so their text
// never reaches the client.
func WriteError(ctx context.Context, w http.ResponseWriter, logger *slog.Logger, err error, requestID string) {
	appErr := asAppError(err)
	appErr.RequestID = requestID

	if encodeErr := writeJSON(w, appErr.StatusCode, ErrorResponse{Error: appErr}); encodeErr != nil {
		logger.ErrorContext(ctx, "failed to encode error response",
			"encode_error", encodeErr,
			"original_error", err,
			"request_id", requestID,
		)
		return
	}

	level := slog.LevelWarn
	if appErr.StatusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(ctx, level, "request failed",
		"error_code", appErr.Code,
		"error_message", appErr.Message,
		"status_code", appErr.StatusCode,
		"request_id", requestID,
		"cause", appErr.Cause,
	)
}

func asAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return InternalWrap(err, "An unexpected error occurred")
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return writeJSON(w, http.StatusOK, SuccessResponse{Data: data, Success: true})
}

// WriteSuccessWithHeaders sets extra headers, typically Cache-Control,
// before the 200 is written.
func WriteSuccessWithHeaders(w http.ResponseWriter, data any, headers map[string]string) error {
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	return WriteSuccess(w, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
