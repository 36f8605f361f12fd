// Package errors provides the typed failures returned by the portal.
// Store, service and handler code all speak AppError so that a failure can
// cross any package boundary as a value and be rendered consistently
// without leaking internal details to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so wrapped and
// re-messaged copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// CodeOf returns the code of the AppError in err's chain, or "" if there is none.
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
	ErrInvalidAPIKey      = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrOpsDisabled        = &AppError{Code: "OPS_NOT_CONFIGURED", Message: "Ops endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Record store errors.
var (
	ErrRecordNotFound      = &AppError{Code: "RECORD_NOT_FOUND", Message: "Record not found", StatusCode: http.StatusNotFound}
	ErrInvalidAmount       = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must not be negative", StatusCode: http.StatusBadRequest}
	ErrDuplicateIdentifier = &AppError{Code: "DUPLICATE_IDENTIFIER", Message: "A record with this identifier already exists", StatusCode: http.StatusConflict}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Investor errors.
var (
	ErrInvestorNotFound = &AppError{Code: "INVESTOR_NOT_FOUND", Message: "Investor not found", StatusCode: http.StatusNotFound}
	ErrNoLinkedInvestor = &AppError{Code: "NO_LINKED_INVESTOR", Message: "No investor profile is linked to this login", StatusCode: http.StatusForbidden}
)

// Drawdown notice errors.
var (
	ErrNoticeNotFound          = &AppError{Code: "NOTICE_NOT_FOUND", Message: "Drawdown notice not found", StatusCode: http.StatusNotFound}
	ErrInvalidNoticeTransition = &AppError{Code: "INVALID_NOTICE_TRANSITION", Message: "Drawdown notice cannot move to the requested status", StatusCode: http.StatusConflict}
)

// Document and file errors.
var (
	ErrDocumentNotFound        = &AppError{Code: "DOCUMENT_NOT_FOUND", Message: "Document not found", StatusCode: http.StatusNotFound}
	ErrDocumentNotDownloadable = &AppError{Code: "DOCUMENT_NOT_DOWNLOADABLE", Message: "This document can only be viewed", StatusCode: http.StatusForbidden}
	ErrUnsupportedFileType     = &AppError{Code: "UNSUPPORTED_FILE_TYPE", Message: "Unsupported file type", StatusCode: http.StatusUnsupportedMediaType}
	ErrFileTooLarge            = &AppError{Code: "FILE_TOO_LARGE", Message: "File exceeds the maximum upload size", StatusCode: http.StatusRequestEntityTooLarge}
)

// Fund investment errors.
var (
	ErrFundInvestmentNotFound = &AppError{Code: "FUND_INVESTMENT_NOT_FOUND", Message: "Fund investment not found", StatusCode: http.StatusNotFound}
)
