package ledgersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Track records one transfer for the session's tenant.
func (s *TenantSession) Track(ctx context.Context, req TrackTransferRequest) (*TransferResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, "/v1/transfers", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var t TransferResponse
	if err := decodeJSON(resp, &t, http.StatusCreated); err != nil {
		return nil, err
	}

	return &t, nil
}

// TrackBatch records several transfers. The call succeeds as a whole while
// individual items may fail; check each result's Error.
func (s *TenantSession) TrackBatch(ctx context.Context, transfers []TrackTransferRequest) (*TrackBatchResponse, error) {
	body, err := json.Marshal(TrackBatchRequest{Transfers: transfers})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPost, "/v1/transfers/batch", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var out TrackBatchResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListTransfers lists the session tenant's transfers, oldest first.
func (s *TenantSession) ListTransfers(ctx context.Context) (*TransfersResponse, error) {
	resp, err := s.do(ctx, http.MethodGet, "/v1/transfers", nil)
	if err != nil {
		return nil, err
	}

	var list TransfersResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}

	return &list, nil
}
