package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrorCodeNoCaptions         ErrorCode = "NO_CAPTIONS"
	ErrorCodeCaptionFetchFailed ErrorCode = "CAPTION_FETCH_FAILED"
	ErrorCodeEmptyTranscript    ErrorCode = "EMPTY_TRANSCRIPT"
	ErrorCodeInferenceFailed    ErrorCode = "INFERENCE_FAILED"
	ErrorCodeRateLimitExceeded  ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// AppError is the single error type that crosses the pipeline boundary.
// Message is safe to show to the requester; Detail carries the underlying
// failure for 5xx responses and server-side logs.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	StatusCode int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common error constructors
func NewInvalidInputError(message string) *AppError {
	return NewError(ErrorCodeInvalidInput, message, http.StatusBadRequest)
}

func NewNoCaptionsError() *AppError {
	return NewError(
		ErrorCodeNoCaptions,
		"This video does not have captions enabled, so it cannot be analyzed",
		http.StatusBadRequest,
	)
}

func NewCaptionFetchError(err error) *AppError {
	appErr := NewError(
		ErrorCodeCaptionFetchFailed,
		"Failed to retrieve captions for this video",
		http.StatusBadRequest,
	)
	if err != nil {
		appErr.Detail = err.Error()
	}
	return appErr
}

func NewEmptyTranscriptError() *AppError {
	return NewError(
		ErrorCodeEmptyTranscript,
		"The video captions could not be converted into a usable transcript",
		http.StatusBadRequest,
	)
}

func NewInferenceError(err error) *AppError {
	appErr := NewError(
		ErrorCodeInferenceFailed,
		"Failed to analyze video",
		http.StatusInternalServerError,
	)
	if err != nil {
		appErr.Detail = err.Error()
	}
	return appErr
}

func NewRateLimitError() *AppError {
	return NewError(ErrorCodeRateLimitExceeded, "Too many requests", http.StatusTooManyRequests)
}

func NewInternalError(err error) *AppError {
	appErr := NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
	if err != nil {
		appErr.Detail = err.Error()
	}
	return appErr
}
