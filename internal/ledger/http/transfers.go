package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/aussiebroadwan/tabledger/internal/ledger/service"
	"github.com/aussiebroadwan/tabledger/pkg/httpx"
	"github.com/aussiebroadwan/tabledger/pkg/ledgersdk"
	"github.com/shopspring/decimal"
)

// TransfersHandler handles the transfer ledger endpoints.
type TransfersHandler struct {
	TransferService *service.TransferService
}

// trackTransferBody is the server side of ledgersdk.TrackTransferRequest.
// Amount stays raw so it never passes through a float: it may be a JSON
// string or an integer literal of any length.
type trackTransferBody struct {
	ID        string                      `json:"id"`
	ClientID  string                      `json:"clientId"`
	ChainID   string                      `json:"chainId"`
	Amount    json.RawMessage             `json:"amount"`
	Rates     map[string]*decimal.Decimal `json:"rates"`
	CreatedAt *time.Time                  `json:"createdAt"`
}

type trackBatchBody struct {
	Transfers []trackTransferBody `json:"transfers"`
}

// input converts the body for the authenticated tenant.
func (b trackTransferBody) input(clientID string) (service.TrackTransferInput, error) {
	if b.ClientID != "" && b.ClientID != clientID {
		return service.TrackTransferInput{}, errTenantMismatch
	}

	var amount domain.Amount
	if len(b.Amount) > 0 {
		if err := amount.UnmarshalJSON(b.Amount); err != nil {
			return service.TrackTransferInput{}, service.ErrInvalidAmount
		}
	}

	return service.TrackTransferInput{
		ID:        b.ID,
		ClientID:  clientID,
		ChainID:   b.ChainID,
		Amount:    amount,
		Rates:     domain.Rates(b.Rates),
		CreatedAt: b.CreatedAt,
	}, nil
}

// HandleTrack handles POST /v1/transfers
//
//	@Summary		Track Transfer
//	@Description	Appends one approved transfer to the caller's ledger. Amount is a base-10 integer
//	@Description	(string or JSON integer) of any size; rates are decimal strings and may be null.
//	@Tags			Transfers
//	@Accept			json
//	@Produce		json
//	@Security		ClientID
//	@Security		ClientSecret
//	@Param			request	body		ledgersdk.TrackTransferRequest	true	"Transfer"
//	@Success		201		{object}	ledgersdk.TransferResponse		"stored transfer"
//	@Failure		400		{object}	ledgersdk.ErrorResponse			"invalid_request or invalid_amount"
//	@Failure		401		{object}	ledgersdk.ErrorResponse			"Invalid client credentials"
//	@Failure		403		{object}	ledgersdk.ErrorResponse			"transfer names another client"
//	@Failure		409		{object}	ledgersdk.ErrorResponse			"duplicate_id"
//	@Failure		429		{object}	ledgersdk.ErrorResponse			"rate_limited"
//	@Failure		503		{object}	ledgersdk.ErrorResponse			"store_unavailable"
//	@Router			/v1/transfers [post].
func (h *TransfersHandler) HandleTrack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body trackTransferBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeBadJSON(w)
		return
	}

	in, err := body.input(httpx.ClientIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	t, err := h.TransferService.Track(ctx, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, transferResponse(t))
}

// HandleTrackBatch handles POST /v1/transfers/batch
//
//	@Summary		Track Transfer Batch
//	@Description	Tracks up to 500 transfers. Each item is recorded on its own and reports its own outcome;
//	@Description	results are in request order.
//	@Tags			Transfers
//	@Accept			json
//	@Produce		json
//	@Security		ClientID
//	@Security		ClientSecret
//	@Param			request	body		ledgersdk.TrackBatchRequest		true	"Transfers"
//	@Success		200		{object}	ledgersdk.TrackBatchResponse	"per item results"
//	@Failure		400		{object}	ledgersdk.ErrorResponse			"invalid_request"
//	@Failure		401		{object}	ledgersdk.ErrorResponse			"Invalid client credentials"
//	@Failure		429		{object}	ledgersdk.ErrorResponse			"rate_limited"
//	@Router			/v1/transfers/batch [post].
func (h *TransfersHandler) HandleTrackBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := httpx.ClientIDFromContext(ctx)

	var body trackBatchBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBodyBytes)).Decode(&body); err != nil {
		writeBadJSON(w)
		return
	}
	if len(body.Transfers) == 0 || len(body.Transfers) > service.MaxBatchSize {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeInvalidRequest, fmt.Sprintf("transfers must hold between 1 and %d items", service.MaxBatchSize))
		return
	}

	results := make([]ledgersdk.BatchItemResult, len(body.Transfers))

	// Items that fail conversion never reach the service
	var inputs []service.TrackTransferInput
	var positions []int
	for i, item := range body.Transfers {
		results[i].Index = i
		in, err := item.input(clientID)
		if err != nil {
			e := errorFor(err)
			results[i].Error = &e
			continue
		}
		inputs = append(inputs, in)
		positions = append(positions, i)
	}

	if len(inputs) > 0 {
		tracked, err := h.TransferService.TrackBatch(ctx, inputs)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		for j, res := range tracked {
			i := positions[j]
			if res.Err != nil {
				e := errorFor(res.Err)
				results[i].Error = &e
				continue
			}
			tr := transferResponse(res.Transfer)
			results[i].Transfer = &tr
		}
	}

	httpx.WriteJSON(w, http.StatusOK, ledgersdk.TrackBatchResponse{Results: results})
}

// HandleList handles GET /v1/transfers
//
//	@Summary		List Transfers
//	@Description	Returns the caller's transfers ordered by creation instant, oldest first.
//	@Tags			Transfers
//	@Produce		json
//	@Security		ClientID
//	@Security		ClientSecret
//	@Success		200	{object}	ledgersdk.TransfersResponse	"transfers"
//	@Failure		401	{object}	ledgersdk.ErrorResponse		"Invalid client credentials"
//	@Failure		503	{object}	ledgersdk.ErrorResponse		"store_unavailable"
//	@Router			/v1/transfers [get].
func (h *TransfersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, httpx.ClientIDFromContext(r.Context()))
}

// HandleListForClient handles GET /v1/clients/{id}/transfers
//
//	@Summary		List Client Transfers
//	@Description	Operator view of any tenant's transfers, oldest first. Unknown tenants have none.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with transfers:read scope"
//	@Param			id				path		string						true	"Client ID"
//	@Success		200				{object}	ledgersdk.TransfersResponse	"transfers"
//	@Failure		403				{object}	ledgersdk.ErrorResponse		"Forbidden resource"
//	@Failure		503				{object}	ledgersdk.ErrorResponse		"store_unavailable"
//	@Router			/v1/clients/{id}/transfers [get].
func (h *TransfersHandler) HandleListForClient(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.PathValue("id"))
}

func (h *TransfersHandler) list(w http.ResponseWriter, r *http.Request, clientID string) {
	transfers, err := h.TransferService.FindByClientID(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]ledgersdk.TransferResponse, len(transfers))
	for i, t := range transfers {
		out[i] = transferResponse(t)
	}
	httpx.WriteJSON(w, http.StatusOK, ledgersdk.TransfersResponse{Transfers: out})
}

func transferResponse(t domain.Transfer) ledgersdk.TransferResponse {
	rates := map[string]*decimal.Decimal(t.Rates)
	if rates == nil {
		rates = map[string]*decimal.Decimal{}
	}
	return ledgersdk.TransferResponse{
		ID:        t.ID,
		ClientID:  t.ClientID,
		ChainID:   t.ChainID,
		Amount:    t.Amount.String(),
		Rates:     rates,
		CreatedAt: t.CreatedAt,
	}
}
