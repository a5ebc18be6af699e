package ledgersdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes returned in the "error" field of error bodies.
const (
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeInvalidAmount    = "invalid_amount"
	ErrorCodeAlreadyExists    = "already_exists"
	ErrorCodeDuplicateID      = "duplicate_id"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeForbidden        = "forbidden"
	ErrorCodeRateLimited      = "rate_limited"
	ErrorCodeStoreUnavailable = "store_unavailable"
	ErrorCodeInternal         = "internal_error"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	// RetryAfter is the Retry-After header in seconds, when present
	RetryAfter string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is matches APIErrors by code, so errors.Is(err, ErrRateLimited) works
// whatever the message says.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Retriable reports whether the same request may succeed after a backoff.
func (e *APIError) Retriable() bool {
	return e.Code == ErrorCodeRateLimited || e.Code == ErrorCodeStoreUnavailable
}

var (
	ErrInvalidRequest = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeInvalidRequest}
	ErrInvalidAmount  = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeInvalidAmount}
	// ErrAlreadyExists is returned when registering a tenant id that is taken.
	ErrAlreadyExists = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeAlreadyExists}
	// ErrDuplicateID is returned when a transfer id has already been recorded.
	ErrDuplicateID    = &APIError{StatusCode: http.StatusConflict, Code: ErrorCodeDuplicateID}
	ErrNotFound       = &APIError{StatusCode: http.StatusNotFound, Code: ErrorCodeNotFound}
	ErrUnauthorized   = &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeUnauthorized}
	ErrForbidden      = &APIError{StatusCode: http.StatusForbidden, Code: ErrorCodeForbidden}
	ErrRateLimited    = &APIError{StatusCode: http.StatusTooManyRequests, Code: ErrorCodeRateLimited}
	ErrUnavailable    = &APIError{StatusCode: http.StatusServiceUnavailable, Code: ErrorCodeStoreUnavailable}
	ErrInternal       = &APIError{StatusCode: http.StatusInternalServerError, Code: ErrorCodeInternal}
)

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies
// that are not ErrorResponse JSON still produce one, keyed by status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RetryAfter: resp.Header.Get("Retry-After"),
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Error
		apiErr.Message = errResp.Message
		return apiErr
	}

	apiErr.Code = codeForStatus(resp.StatusCode)
	apiErr.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	return apiErr
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrorCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrorCodeUnauthorized
	case http.StatusForbidden:
		return ErrorCodeForbidden
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusTooManyRequests:
		return ErrorCodeRateLimited
	case http.StatusServiceUnavailable:
		return ErrorCodeStoreUnavailable
	default:
		return ErrorCodeInternal
	}
}
