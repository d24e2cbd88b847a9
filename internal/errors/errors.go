package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for any authentication failure that
	// must not reveal whether the account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive is returned when a deactivated account attempts login.
	ErrAccountInactive = errors.New("account is inactive, contact administrator")
	// ErrUserNotFound is returned when a user record is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a blog post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProblemNotFound is returned when a community problem is not found.
	ErrProblemNotFound = errors.New("problem not found")
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrContactNotFound is returned when a contact message is not found.
	ErrContactNotFound = errors.New("contact message not found")
	// ErrDiscussionNotFound is returned when a forum discussion is not found.
	ErrDiscussionNotFound = errors.New("discussion not found")
	// ErrEmailTaken is returned when creating a user with an existing email.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCategory is returned for project categories outside the valid set.
	ErrInvalidCategory = errors.New("invalid category, use: solutions, progress or impact")
	// ErrNotAuthor is returned when a user acts on content they do not own.
	ErrNotAuthor = errors.New("only the author can perform this action")
)

// ValidationError carries a user-facing message for malformed input.
// It is surfaced to the caller and never logged as a system error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidation builds a ValidationError.
func NewValidation(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// RateLimitedError is returned when an address is blocked from logging in.
// The message already contains the human-readable retry delay.
type RateLimitedError struct {
	Msg string
}

func (e *RateLimitedError) Error() string { return e.Msg }

// NewRateLimited builds a RateLimitedError.
func NewRateLimited(msg string) *RateLimitedError {
	return &RateLimitedError{Msg: msg}
}

// PermissionError carries the role-policy reason for a denied action.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string { return e.Reason }

// NewPermission builds a PermissionError.
func NewPermission(reason string) *PermissionError {
	return &PermissionError{Reason: reason}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string { return e.Message }

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Success: false, Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors
// collapse to a generic 500 so internals never leak to callers.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Msg)
	}
	var pe *PermissionError
	if errors.As(err, &pe) {
		return NewHTTPError(http.StatusForbidden, pe.Reason)
	}
	var re *RateLimitedError
	if errors.As(err, &re) {
		return NewHTTPError(http.StatusTooManyRequests, re.Msg)
	}

	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrProblemNotFound),
		errors.Is(err, ErrApplicationNotFound),
		errors.Is(err, ErrContactNotFound),
		errors.Is(err, ErrDiscussionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotAuthor):
		return NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
