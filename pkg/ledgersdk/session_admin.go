package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RegisterClient registers a tenant. The returned Secret is the only copy
// the service will ever hand out.
// Requires: clients:write scope
func (s *AdminSession) RegisterClient(ctx context.Context, req RegisterClientRequest) (*ClientResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, "/v1/clients", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var created ClientResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}

	return &created, nil
}

// GetClient fetches a tenant without its secret.
// Requires: clients:read scope
func (s *AdminSession) GetClient(ctx context.Context, clientID string) (*ClientResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/clients/"+url.PathEscape(clientID), nil)
	if err != nil {
		return nil, err
	}

	var client ClientResponse
	if err := decodeJSON(resp, &client, http.StatusOK); err != nil {
		return nil, err
	}

	return &client, nil
}

// ListClientTransfers lists any tenant's transfers, oldest first.
// Requires: transfers:read scope
func (s *AdminSession) ListClientTransfers(ctx context.Context, clientID string) (*TransfersResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/clients/"+url.PathEscape(clientID)+"/transfers", nil)
	if err != nil {
		return nil, err
	}

	var list TransfersResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}
