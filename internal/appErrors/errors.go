package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// AppError is the error type every service returns to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so copies made by WithDetails/WithError still compare
// equal to the predefined error they came from.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy; predefined errors are shared.
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

var (
	// Auth
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
	ErrSessionExpired     = New(CodeSessionExpired, "Session has ended, sign in again", http.StatusUnauthorized)
	ErrTooManyRequests    = New(CodeTooManyRequests, "Too many requests", http.StatusTooManyRequests)

	// Users and profiles
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrProfileNotFound    = New(CodeProfileNotFound, "Profile not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)
	ErrInvalidUserType    = New(CodeInvalidUserType, "User type must be client or staff", http.StatusBadRequest)
	ErrClientOnly         = New(CodeWrongUserType, "Only clients can do this", http.StatusForbidden)
	ErrStaffOnly          = New(CodeWrongUserType, "Only staff can do this", http.StatusForbidden)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Events and applications
	ErrEventNotFound  = New(CodeEventNotFound, "Event not found", http.StatusNotFound)
	ErrEventNotActive = New(CodeEventNotActive, "Event is not accepting applications", http.StatusConflict)
	ErrUnknownRole    = New(CodeUnknownRole, "Role is not offered on this event", http.StatusBadRequest)
	ErrAlreadyApplied = New(CodeAlreadyApplied, "You have already applied to this event", http.StatusConflict)

	// Attendance
	ErrAlreadyCheckedIn  = New(CodeAlreadyCheckedIn, "Already checked in for this event", http.StatusConflict)
	ErrNotCheckedIn      = New(CodeNotCheckedIn, "Check in before checking out", http.StatusConflict)
	ErrAlreadyCheckedOut = New(CodeAlreadyCheckedOut, "Shift already checked out", http.StatusConflict)

	// Subscriptions
	ErrSubscriptionNotFound = New(CodeSubscriptionNotFound, "Subscription not found", http.StatusNotFound)
	ErrUpgradeRequired      = New(CodeUpgradeRequired, "Free plan allows 2 events per month, upgrade to post more", http.StatusPaymentRequired)
)

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "Something went wrong, please try again", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func ServiceUnavailable(err error, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, message, http.StatusServiceUnavailable)
}
