package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tabledger/internal/ledger/domain"
	"github.com/aussiebroadwan/tabledger/internal/ledger/service"
	"github.com/aussiebroadwan/tabledger/pkg/httpx"
	"github.com/aussiebroadwan/tabledger/pkg/ledgersdk"
)

// ClientsHandler handles tenant registration and lookup.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleRegister handles POST /v1/clients
//
//	@Summary		Register Client
//	@Description	Registers a tenant exactly once. The plaintext secret is in this response and nowhere else.
//	@Description	Concurrent registrations of one id produce exactly one 201.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with clients:write scope"
//	@Param			request			body		ledgersdk.RegisterClientRequest	true	"Client registration request"
//	@Success		201				{object}	ledgersdk.ClientResponse		"client with one-time secret"
//	@Failure		400				{object}	ledgersdk.ErrorResponse			"invalid_request or already_exists"
//	@Failure		403				{object}	ledgersdk.ErrorResponse			"Forbidden resource"
//	@Failure		429				{object}	ledgersdk.ErrorResponse			"rate_limited"
//	@Failure		503				{object}	ledgersdk.ErrorResponse			"store_unavailable"
//	@Router			/v1/clients [post].
func (h *ClientsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ledgersdk.RegisterClientRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	created, err := h.ClientService.Register(ctx, service.RegisterClientInput{
		ID:                  req.ID,
		Secret:              req.Secret,
		DataStore:           dataStoreFromWire(req.DataStore),
		AllowSelfSignedData: req.AllowSelfSignedData,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := clientResponse(created.ClientView)
	resp.Secret = created.Secret
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /v1/clients/{id}
//
//	@Summary		Get Client
//	@Description	Returns a tenant without its secret or private signer key.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with clients:read scope"
//	@Param			id				path		string						true	"Client ID"
//	@Success		200				{object}	ledgersdk.ClientResponse	"client"
//	@Failure		403				{object}	ledgersdk.ErrorResponse		"Forbidden resource"
//	@Failure		404				{object}	ledgersdk.ErrorResponse		"not_found"
//	@Failure		503				{object}	ledgersdk.ErrorResponse		"store_unavailable"
//	@Router			/v1/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.ClientService.GetClient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clientResponse(c))
}

func clientResponse(c service.ClientView) ledgersdk.ClientResponse {
	return ledgersdk.ClientResponse{
		ID: c.ID,
		Signer: ledgersdk.SignerResponse{
			Algorithm: c.Signer.Algorithm,
			KeyID:     c.Signer.KeyID,
			PublicKey: c.Signer.PublicKey,
		},
		DataStore: dataStoreToWire(c.DataStore),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func dataStoreFromWire(d ledgersdk.DataStore) domain.DataStore {
	return domain.DataStore{
		Entity: domain.DataSource(d.Entity),
		Policy: domain.DataSource(d.Policy),
	}
}

func dataStoreToWire(d domain.DataStore) ledgersdk.DataStore {
	return ledgersdk.DataStore{
		Entity: ledgersdk.DataSource(d.Entity),
		Policy: ledgersdk.DataSource(d.Policy),
	}
}
