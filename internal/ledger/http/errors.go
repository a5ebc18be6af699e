package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/tabledger/internal/ledger/service"
	"github.com/aussiebroadwan/tabledger/pkg/httpx"
	"github.com/aussiebroadwan/tabledger/pkg/ledgersdk"
	"github.com/aussiebroadwan/tabledger/pkg/slogx"
)

// Body size caps.
const (
	maxBodyBytes      = 1 << 20
	maxBatchBodyBytes = 8 << 20
)

// errTenantMismatch is a transfer naming a tenant other than the caller.
var errTenantMismatch = errors.New("transfer belongs to another client")

// errorFor maps a service error onto its wire form. Every sentinel gets
// its own status and code; only unknown errors become a 500.
func errorFor(err error) ledgersdk.ErrorResponse {
	var status int
	var code, msg string

	switch {
	case errors.Is(err, service.ErrAlreadyExists):
		status, code, msg = http.StatusBadRequest, httpx.CodeAlreadyExists, "Client already exist"
	case errors.Is(err, service.ErrDuplicateID):
		status, code, msg = http.StatusConflict, httpx.CodeDuplicateID, "Transfer already recorded"
	case errors.Is(err, service.ErrInvalidAmount):
		status, code, msg = http.StatusBadRequest, httpx.CodeInvalidAmount, "amount must be a base-10 integer"
	case errors.Is(err, service.ErrInvalidRequest):
		status, code, msg = http.StatusBadRequest, httpx.CodeInvalidRequest, err.Error()
	case errors.Is(err, service.ErrClientNotFound):
		status, code, msg = http.StatusNotFound, httpx.CodeNotFound, "Client not found"
	case errors.Is(err, errTenantMismatch):
		status, code, msg = http.StatusForbidden, httpx.CodeForbidden, httpx.MessageForbidden
	case errors.Is(err, service.ErrStoreUnavailable):
		status, code, msg = http.StatusServiceUnavailable, httpx.CodeStoreUnavailable, "Service temporarily unavailable"
	default:
		status, code, msg = http.StatusInternalServerError, httpx.CodeInternal, "Internal server error"
	}

	return ledgersdk.ErrorResponse{Error: code, Message: msg, Code: status}
}

// writeServiceError writes err and logs anything that is not the caller's
// fault.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorFor(err)
	if resp.Code >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "error", err, "status", resp.Code)
	}
	httpx.WriteError(w, resp.Code, resp.Error, resp.Message)
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, httpx.CodeInvalidRequest, "Invalid JSON in request body")
}
