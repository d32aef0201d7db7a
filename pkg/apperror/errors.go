package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Provider Configuration (CFG) ----

// ErrProviderNotConfigured reports missing credentials for a catalog or
// assistant provider. Raised before any network call is attempted.
func ErrProviderNotConfigured(provider string) *AppError {
	return New("CFG_001", fmt.Sprintf("%s API credentials not configured", provider), http.StatusServiceUnavailable)
}

// ---- Provider Transport & Vendor (PRV) ----

// ErrProviderUnavailable reports a transport-level failure that survived the
// bounded retry schedule.
func ErrProviderUnavailable(err error) *AppError {
	return Wrap("PRV_001", "HTTP request failed after retries", http.StatusServiceUnavailable, err)
}

// ErrVendor reports a non-2xx response from a provider. Carries the vendor
// status code and response body; never retried.
func ErrVendor(provider string, status int, body string) *AppError {
	return New("PRV_002", fmt.Sprintf("%s API request failed with status code %d: %s", provider, status, body), http.StatusBadGateway)
}

// ErrProductNotFound reports a successful vendor response that does not
// contain the requested item. Distinct from transport and vendor errors.
func ErrProductNotFound() *AppError {
	return New("PRV_003", "The requested product could not be found", http.StatusNotFound)
}

// ErrProviderResponse reports a vendor payload that could not be decoded at
// the top level. Missing nested fields are defaulted, not errored.
func ErrProviderResponse(provider string, err error) *AppError {
	return Wrap("PRV_004", fmt.Sprintf("%s API returned a malformed response", provider), http.StatusBadGateway, err)
}

// ---- Content Filter (FLT) ----

func ErrContentFiltered() *AppError {
	return New("FLT_001", "Content was flagged by the safety filter", http.StatusForbidden)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Weather (WTH) ----

func ErrLocationUnknown(location string) *AppError {
	return New("WTH_001", fmt.Sprintf("No forecast data for location %q", location), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded, please retry later", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a 400 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
