package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of account or authentication failure
type ErrorCode string

const (
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

	// Password signup and login
	ErrCodeMissingFields      ErrorCode = "MISSING_FIELDS"
	ErrCodeDuplicateAccount   ErrorCode = "DUPLICATE_ACCOUNT"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// Provider callback
	ErrCodeMissingCode       ErrorCode = "MISSING_CODE"
	ErrCodeProviderExchange  ErrorCode = "PROVIDER_EXCHANGE"
	ErrCodeProviderProfile   ErrorCode = "PROVIDER_PROFILE"
	ErrCodeAccountResolution ErrorCode = "ACCOUNT_RESOLUTION"

	// Session tokens
	ErrCodeTokenInvalid ErrorCode = "TOKEN_INVALID"

	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Error is a structured error carrying a code and the client facing message.
// Message is rendered verbatim as the "error" field of JSON responses.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// HTTPStatusCode returns the HTTP status for this error's code
func (e *Error) HTTPStatusCode() int {
	return MapErrorCodeToHTTPStatus(e.Code)
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps an existing error with code and message
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
// Returns ErrCodeInternal if the error is not a structured Error.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// As returns the structured Error in err's chain, if any
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// MapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func MapErrorCodeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeMissingFields, ErrCodeDuplicateAccount, ErrCodeMissingCode,
		ErrCodeProviderExchange, ErrCodeProviderProfile:
		return http.StatusBadRequest

	case ErrCodeInvalidCredentials, ErrCodeTokenInvalid:
		return http.StatusUnauthorized

	case ErrCodeRateLimited:
		return http.StatusTooManyRequests

	case ErrCodeAccountResolution, ErrCodeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// InternalMessage is the body sent for any unexpected failure
const InternalMessage = "Internal server error"

func MissingFields(message string) *Error {
	return New(ErrCodeMissingFields, message)
}

func DuplicateAccount(message string) *Error {
	return New(ErrCodeDuplicateAccount, message)
}

func InvalidCredentials() *Error {
	return New(ErrCodeInvalidCredentials, "Invalid email or password")
}

func MissingCode() *Error {
	return New(ErrCodeMissingCode, "Authorization code not found")
}

func ProviderExchange(err error) *Error {
	return &Error{Code: ErrCodeProviderExchange, Message: "Failed to exchange code for token", Err: err}
}

func ProviderProfile(err error) *Error {
	return &Error{Code: ErrCodeProviderProfile, Message: "Failed to get user info", Err: err}
}

func AccountResolution() *Error {
	return New(ErrCodeAccountResolution, "Failed to create/retrieve user")
}

func TokenInvalid(err error) *Error {
	return &Error{Code: ErrCodeTokenInvalid, Message: "Invalid or expired token", Err: err}
}

func RateLimited() *Error {
	return New(ErrCodeRateLimited, "Too many requests, please try again later")
}

// InternalWrap wraps an unexpected error behind the generic internal message
func InternalWrap(err error) *Error {
	return Wrap(err, ErrCodeInternal, InternalMessage)
}
