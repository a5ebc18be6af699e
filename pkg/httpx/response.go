package httpx

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in the "error" field of error bodies.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeInvalidAmount    = "invalid_amount"
	CodeAlreadyExists    = "already_exists"
	CodeDuplicateID      = "duplicate_id"
	CodeNotFound         = "not_found"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeRateLimited      = "rate_limited"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternal         = "internal_error"
)

// MessageForbidden is the body message for every admin gate rejection.
const MessageForbidden = "Forbidden resource"

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error" example:"already_exists"`
	Message string `json:"message" example:"Client already exist"`
	Code    int    `json:"code" example:"400"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorResponse.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Error: code, Message: message, Code: status})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Registration responses carry a one-time secret, so this matters.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
